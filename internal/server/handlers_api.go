package server

import (
	"fmt"
	"net/http"

	"todolist/internal/domain"
	"todolist/internal/errors"
)

// handleListAll returns every task sorted by name.
func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.api.ListTasks(r.Context(), domain.OrderByName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTasksEnvelope(tasks))
}

// handleSearch returns tasks matching the name exactly. An empty result
// is a 404, matching the unknown-name contract.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, errors.NewMissingFieldError("name"))
		return
	}

	tasks, err := s.api.SearchTasksByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(tasks) == 0 {
		writeError(w, errors.NewNotFoundError("task", name))
		return
	}

	writeJSON(w, http.StatusOK, newTasksEnvelope(tasks))
}

// handleCreate creates a task from form or query parameters. Duplicate
// names and malformed dates are rejected, not passed through to the
// storage engine.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	doBy := r.FormValue("do_by")
	if doBy == "" {
		doBy = r.FormValue("done_by")
	}

	task, err := s.api.CreateTask(r.Context(), r.FormValue("name"), doBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("Successfully added the task %q.", task.Name))
}

// handleEditName renames a task; renaming onto an existing name is a
// conflict.
func (s *Server) handleEditName(w http.ResponseWriter, r *http.Request) {
	task, err := s.api.RenameTask(r.Context(), r.PathValue("name"), r.URL.Query().Get("new_name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("Successfully renamed the task to %q.", task.Name))
}

// handleEditDoBy updates a task's due date.
func (s *Server) handleEditDoBy(w http.ResponseWriter, r *http.Request) {
	task, err := s.api.UpdateDoBy(r.Context(), r.PathValue("name"), r.URL.Query().Get("new_do_by"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("Successfully updated the due date of %q.", task.Name))
}

// handleEditCompletion sets the completion flag from a mandatory
// "true"/"false" query parameter.
func (s *Server) handleEditCompletion(w http.ResponseWriter, r *http.Request) {
	complete, err := s.taskValidator.ParseCompletionFlag("new_completion", r.URL.Query().Get("new_completion"))
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := s.api.SetCompletion(r.Context(), r.PathValue("name"), complete)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("Successfully updated the completion status of %q.", task.Name))
}

// handleDeleteTask removes one task by name.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := s.api.DeleteTask(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("Successfully deleted the task %q.", name))
}

// handleClear removes every task atomically and reports the count in the
// endpoint's dedicated envelope.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	count, err := s.api.DeleteAllTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, clearEnvelope{
			Message: errors.GetUserMessage(err),
			Status:  "error",
		})
		return
	}

	writeJSON(w, http.StatusOK, clearEnvelope{
		Message: fmt.Sprintf("Successfully cleared %d tasks.", count),
		Status:  "success",
	})
}
