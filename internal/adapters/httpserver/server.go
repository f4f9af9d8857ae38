// Package httpserver exposes a RemoteTaskStore over HTTP so the engine can
// run against a store hosted on another machine. Clients without a push
// channel poll the list endpoint (see adapters/httpstore).
package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/example/twodo/internal/core/fault"
	"github.com/example/twodo/internal/ports/secondary"
)

// taskPayload is the JSON wire form of a task document.
type taskPayload struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	DueAt     time.Time `json:"dueAt"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// patchPayload carries a partial-field update; absent fields stay untouched.
type patchPayload struct {
	Name      *string    `json:"name,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Server serves a task store over HTTP.
type Server struct {
	store secondary.RemoteTaskStore
}

// NewServer creates a server backed by the given store.
func NewServer(store secondary.RemoteTaskStore) *Server {
	return &Server{store: store}
}

// Handler returns the fully wired HTTP handler: mux routes with request
// logging and panic recovery.
func (s *Server) Handler(logOutput io.Writer) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/tasks", s.insertTask).Methods("POST")
	r.HandleFunc("/tasks", s.listTasks).Methods("GET")
	r.HandleFunc("/tasks/{id}", s.getTask).Methods("GET")
	r.HandleFunc("/tasks/{id}", s.patchTask).Methods("PATCH")
	r.HandleFunc("/tasks/{id}", s.deleteTask).Methods("DELETE")

	return handlers.RecoveryHandler()(handlers.LoggingHandler(logOutput, r))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) insertTask(w http.ResponseWriter, r *http.Request) {
	var payload taskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "malformed task body"})
		return
	}
	if payload.UserID == "" || payload.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "userId and name are required"})
		return
	}

	id, err := s.store.Insert(r.Context(), secondary.TaskRecord{
		UserID:    payload.UserID,
		Name:      payload.Name,
		DueAt:     payload.DueAt,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Completed: payload.Completed,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "user query parameter is required"})
		return
	}

	recs, err := s.store.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: err.Error()})
		return
	}

	payloads := make([]taskPayload, len(recs))
	for i, rec := range recs {
		payloads[i] = toPayload(rec)
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(*rec))
}

func (s *Server) patchTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload patchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "malformed patch body"})
		return
	}

	err := s.store.Patch(r.Context(), id, secondary.TaskPatch{
		Name:      payload.Name,
		DueAt:     payload.DueAt,
		Completed: payload.Completed,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPayload(rec secondary.TaskRecord) taskPayload {
	return taskPayload{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Name:      rec.Name,
		DueAt:     rec.DueAt,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Completed: rec.Completed,
		CreatedAt: rec.CreatedAt,
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if fault.IsNotFound(err) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorPayload{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
