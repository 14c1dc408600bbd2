package server

import (
	"encoding/json"
	"net/http"
	"time"

	"todolist/internal/domain"
	"todolist/internal/errors"
	"todolist/internal/logging"
)

// taskResponse is the JSON schema for a task, declared independently of
// the storage record's field layout. Due dates serialize as RFC3339.
type taskResponse struct {
	Name     string `json:"name"`
	DoBy     string `json:"do_by"`
	Complete bool   `json:"complete"`
}

// tasksEnvelope wraps a list of tasks: {"tasks": [...]}
type tasksEnvelope struct {
	Tasks []taskResponse `json:"tasks"`
}

// successEnvelope wraps a success message: {"response": {"success": msg}}
type successEnvelope struct {
	Response successBody `json:"response"`
}

type successBody struct {
	Success string `json:"success"`
}

// clearEnvelope is the dedicated shape for the bulk-delete endpoint.
type clearEnvelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func newTaskResponse(task *domain.Task) taskResponse {
	return taskResponse{
		Name:     task.Name,
		DoBy:     task.DoBy.Format(time.RFC3339),
		Complete: task.Complete,
	}
}

func newTasksEnvelope(tasks []*domain.Task) tasksEnvelope {
	envelope := tasksEnvelope{Tasks: make([]taskResponse, len(tasks))}
	for i, task := range tasks {
		envelope.Tasks[i] = newTaskResponse(task)
	}
	return envelope
}

// writeJSON writes a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Debugf("failed to encode response: %v\n", err)
	}
}

// writeSuccess writes the shared success envelope.
func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, successEnvelope{Response: successBody{Success: message}})
}

// writeError maps a store error onto the JSON error envelope
// {"error": {"<Kind>": msg}} with the uniform status mapping.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	kind := "StoreFailure"
	if appErr, ok := errors.AsAppError(err); ok {
		kind = appErr.Type.Kind()
	}

	if errors.ShouldLogError(err) {
		logging.Debugf("request failed: %v\n", err)
	}

	writeJSON(w, status, map[string]map[string]string{
		"error": {kind: errors.GetUserMessage(err)},
	})
}

// statusForError is the uniform cross-cutting status mapping: unknown
// name is always 404, bad input always 400, collisions 409, store
// failures 500.
func statusForError(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeDuplicateKey:
		return http.StatusConflict
	case errors.ErrorTypeInvalidDate, errors.ErrorTypeMissingField,
		errors.ErrorTypeInvalidValue, errors.ErrorTypeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeBrowserError is the browser-flow counterpart of writeError: plain
// text with the same status mapping, since failed flows have no dedicated
// error page.
func writeBrowserError(w http.ResponseWriter, err error) {
	if errors.ShouldLogError(err) {
		logging.Debugf("request failed: %v\n", err)
	}
	http.Error(w, errors.GetUserMessage(err), statusForError(err))
}
