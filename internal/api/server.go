// Package api exposes the vault over a small authenticated REST surface so
// external tools can read tasks and query the suggestion engine.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
	"github.com/thisisthedave/tasknotes-sub010/internal/suggest"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

const dateLayout = "2006-01-02"

// NewRouter builds the API router. token guards every route; an empty token
// disables auth (tests, trusted local use behind a unix-only listener).
// suggestLimit caps suggestion responses; non-positive means the default.
func NewRouter(store *vault.Store, token string, suggestLimit int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if token != "" {
		r.Use(bearerAuth(token))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handleListTasks(store))
			r.Post("/", handleCreateTask(store))
			r.Route("/{uid}", func(r chi.Router) {
				r.Get("/", handleGetTask(store))
				r.Delete("/", handleDeleteTask(store))
				r.Patch("/{property}", handleUpdateProperty(store))
			})
		})
		r.Get("/suggest/contexts", handleSuggest(store, (*vault.Store).Contexts, suggestLimit))
		r.Get("/suggest/tags", handleSuggest(store, (*vault.Store).Tags, suggestLimit))
	})

	return r
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// taskJSON is the wire shape of a task.
type taskJSON struct {
	UID             string   `json:"uid"`
	Title           string   `json:"title"`
	Status          string   `json:"status,omitempty"`
	Priority        string   `json:"priority,omitempty"`
	Due             string   `json:"due,omitempty"`
	Scheduled       string   `json:"scheduled,omitempty"`
	Contexts        []string `json:"contexts,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Projects        []string `json:"projects,omitempty"`
	Recurrence      string   `json:"recurrence,omitempty"`
	RecurrenceLabel string   `json:"recurrence_label,omitempty"`
	TimeEstimate    int      `json:"time_estimate,omitempty"`
	CompletedAt     string   `json:"completed_at,omitempty"`
}

func toJSON(t *model.Task) taskJSON {
	out := taskJSON{
		UID:             t.UID,
		Title:           t.Title,
		Status:          t.Status,
		Priority:        t.Priority,
		Contexts:        t.Contexts,
		Tags:            t.Tags,
		Projects:        t.Projects,
		Recurrence:      t.Recurrence,
		RecurrenceLabel: recurrence.Summarize(t.Recurrence),
		TimeEstimate:    t.TimeEstimate,
	}
	if t.Due != nil {
		out.Due = t.Due.Format(dateLayout)
	}
	if t.Scheduled != nil {
		out.Scheduled = t.Scheduled.Format(dateLayout)
	}
	if t.CompletedAt != nil {
		out.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func fromJSON(in taskJSON) (*model.Task, error) {
	t := &model.Task{
		UID:          in.UID,
		Title:        in.Title,
		Status:       in.Status,
		Priority:     in.Priority,
		Contexts:     in.Contexts,
		Tags:         in.Tags,
		Projects:     in.Projects,
		Recurrence:   in.Recurrence,
		TimeEstimate: in.TimeEstimate,
	}
	if in.Due != "" {
		d, err := time.Parse(dateLayout, in.Due)
		if err != nil {
			return nil, &taskerr.ValidationError{Field: "due", Message: "expected YYYY-MM-DD", Err: err}
		}
		t.Due = &d
	}
	if in.Scheduled != "" {
		d, err := time.Parse(dateLayout, in.Scheduled)
		if err != nil {
			return nil, &taskerr.ValidationError{Field: "scheduled", Message: "expected YYYY-MM-DD", Err: err}
		}
		t.Scheduled = &d
	}
	return t, nil
}

func handleListTasks(store *vault.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]taskJSON, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toJSON(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleCreateTask(store *vault.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in taskJSON
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		t, err := fromJSON(in)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := store.Create(t); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toJSON(t))
	}
}

func handleGetTask(store *vault.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.Get(chi.URLParam(r, "uid"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSON(t))
	}
}

func handleDeleteTask(store *vault.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(chi.URLParam(r, "uid")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleUpdateProperty(store *vault.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		uid := chi.URLParam(r, "uid")
		property := chi.URLParam(r, "property")
		if err := store.UpdateProperty(uid, property, body.Value); err != nil {
			writeStoreError(w, err)
			return
		}
		t, err := store.Get(uid)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSON(t))
	}
}

// handleSuggest serves autocomplete for a comma-separated buffer passed as
// ?q=. Corpus lookup failures yield an empty list, not an error: suggestions
// are a non-critical enhancement.
func handleSuggest(store *vault.Store, corpus func(*vault.Store, context.Context) ([]string, error), limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buffer := r.URL.Query().Get("q")
		known, err := corpus(store, r.Context())
		if err != nil {
			known = nil
		}
		matches := suggest.SuggestN(buffer, known, limit)
		if matches == nil {
			matches = []string{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	var nf *taskerr.NotFoundError
	var ve *taskerr.ValidationError
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
