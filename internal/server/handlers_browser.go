package server

import (
	"fmt"
	"net/http"

	"todolist/internal/domain"
	"todolist/internal/errors"
	"todolist/internal/logging"
)

// handleHome renders the listing, soonest due first.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.api.ListTasks(r.Context(), domain.OrderByDoBy)
	if err != nil {
		writeBrowserError(w, err)
		return
	}

	s.renderTemplate(w, "index.html", map[string]interface{}{"Tasks": tasks})
}

// handleAddForm renders the empty add form.
func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "add.html", nil)
}

// handleAddSubmit creates a task from the form fields and redirects home.
func (s *Server) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.api.CreateTask(r.Context(), r.FormValue("name"), r.FormValue("done_by")); err != nil {
		writeBrowserError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEditForm renders the edit form pre-filled with the current record.
// Unknown names get the standard 404, same as every other surface.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	task, err := s.api.GetTask(r.Context(), r.PathValue("name"))
	if err != nil {
		writeBrowserError(w, err)
		return
	}

	s.renderTemplate(w, "edit.html", map[string]interface{}{"Task": task})
}

// handleEditSubmit replaces the task's name and due date in one atomic
// operation and redirects home.
func (s *Server) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if _, err := s.api.UpdateTask(r.Context(), name, r.FormValue("name"), r.FormValue("done_by")); err != nil {
		writeBrowserError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDelete removes the task named by the task_name query parameter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("task_name")
	if name == "" {
		writeBrowserError(w, errors.NewMissingFieldError("task_name"))
		return
	}

	if err := s.api.DeleteTask(r.Context(), name); err != nil {
		writeBrowserError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDeleteAll destroys every task atomically. A store failure comes
// back as a plain 500 message, never a crash.
func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := s.api.DeleteAllTasks(r.Context())
	if err != nil {
		writeBrowserError(w, err)
		return
	}

	logging.Debugf("deleted all tasks: %d removed\n", count)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleMarkComplete toggles completion and redirects home. An unknown
// name is a 404, not a silent no-op.
func (s *Server) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	if _, err := s.api.ToggleCompletion(r.Context(), r.PathValue("name")); err != nil {
		writeBrowserError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logging.Debugf("failed to render %s: %v\n", name, err)
		http.Error(w, fmt.Sprintf("failed to render page: %v", err), http.StatusInternalServerError)
	}
}
