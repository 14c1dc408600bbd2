package server

import (
	"embed"
	"html/template"
	"net/http"

	"todolist/internal/api"
	"todolist/internal/validation"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server adapts the task store to the two HTTP surfaces: the
// browser-oriented form/redirect surface and the JSON surface. It holds
// no task state of its own.
type Server struct {
	api           api.API
	templates     *template.Template
	taskValidator *validation.TaskValidator
}

// New creates a new Server over the given task store.
func New(apiInstance api.API) (*Server, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		api:           apiInstance,
		templates:     templates,
		taskValidator: validation.NewTaskValidator(),
	}, nil
}

// Handler returns the routed HTTP handler for both surfaces.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Browser surface
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /add", s.handleAddForm)
	mux.HandleFunc("POST /add", s.handleAddSubmit)
	mux.HandleFunc("GET /edit/{name}", s.handleEditForm)
	mux.HandleFunc("POST /edit/{name}", s.handleEditSubmit)
	mux.HandleFunc("GET /delete", s.handleDelete)
	mux.HandleFunc("POST /delete_all", s.handleDeleteAll)
	mux.HandleFunc("POST /mark_complete/{name}", s.handleMarkComplete)

	// JSON surface
	mux.HandleFunc("GET /all", s.handleListAll)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST /create", s.handleCreate)
	mux.HandleFunc("PATCH /edit-name/{name}", s.handleEditName)
	mux.HandleFunc("PATCH /edit-do-by/{name}", s.handleEditDoBy)
	mux.HandleFunc("PATCH /edit-completion/{name}", s.handleEditCompletion)
	mux.HandleFunc("DELETE /delete-task/{name}", s.handleDeleteTask)
	mux.HandleFunc("POST /clear", s.handleClear)

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return withRequestLogging(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
