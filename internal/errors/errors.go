package errors

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type ParseError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

type ErrorCollector struct {
	Errors   []error
	Warnings []string
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

func (c *ErrorCollector) AddError(err error) {
	c.Errors = append(c.Errors, err)
}

func (c *ErrorCollector) AddWarning(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.Errors) > 0
}

func (c *ErrorCollector) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings", len(c.Errors), len(c.Warnings))
}

type SignalHandler struct {
	cleanup func()
}

func NewSignalHandler(cleanup func()) *SignalHandler {
	return &SignalHandler{cleanup: cleanup}
}

func (h *SignalHandler) Start() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintln(os.Stderr, "\nInterrupted. Cleaning up...")
		if h.cleanup != nil {
			h.cleanup()
		}
		os.Exit(1)
	}()
}
