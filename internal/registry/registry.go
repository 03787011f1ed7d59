// Package registry maps interchange format names to their task codecs.
package registry

import (
	"fmt"
	"io"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

type Parser interface {
	Parse(io.Reader, string) ([]*model.Task, error)
	ParseFile(string) ([]*model.Task, error)
}

type Writer interface {
	Write([]*model.Task, io.Writer) error
	WriteFile([]*model.Task, string) error
}

type ParserFactory func() Parser

type WriterFactory func() Writer

type FormatEntry struct {
	Name       string
	Extensions []string
	NewParser  ParserFactory
	NewWriter  WriterFactory
}

var formats = map[string]*FormatEntry{}

func Register(entry *FormatEntry) {
	formats[entry.Name] = entry
}

func GetParser(name string) (Parser, error) {
	entry, ok := formats[name]
	if !ok || entry.NewParser == nil {
		return nil, fmt.Errorf("unsupported input format: %s", name)
	}
	return entry.NewParser(), nil
}

func GetWriter(name string) (Writer, error) {
	entry, ok := formats[name]
	if !ok || entry.NewWriter == nil {
		return nil, fmt.Errorf("unsupported output format: %s", name)
	}
	return entry.NewWriter(), nil
}

// DetectByExtension returns the format registered for ext (with leading
// dot), or empty when none matches.
func DetectByExtension(ext string) string {
	for name, entry := range formats {
		for _, e := range entry.Extensions {
			if e == ext {
				return name
			}
		}
	}
	return ""
}

func AllFormats() map[string]*FormatEntry {
	return formats
}
