// Package handlers wires the HTTP surface: session-gated page handlers for
// the form flows and JSON handlers for in-page note edits.
package handlers

import (
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/derrick868/notes-app/internal/config"
	"github.com/derrick868/notes-app/internal/notes"
	"github.com/derrick868/notes-app/internal/session"
)

// App carries everything the handlers need. It is constructed once in main
// and passed around explicitly; there are no package-level singletons.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *sql.DB
	sessions  *session.Store
	notes     *notes.Service
	templates map[string]*template.Template
}

// NewApp builds the application handler set, parsing all templates under
// cfg.TemplateDir up front so a broken template fails at startup, not on
// first request.
func NewApp(cfg *config.Config, logger *slog.Logger, db *sql.DB, sessions *session.Store, noteService *notes.Service) (*App, error) {
	templates, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		sessions:  sessions,
		notes:     noteService,
		templates: templates,
	}, nil
}

// Routes returns the full route table.
func (a *App) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(a.cfg.StaticDir))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.cfg.UploadDir))))

	mux.HandleFunc("GET /register", a.RegisterPage)
	mux.HandleFunc("POST /register", a.Register)
	mux.HandleFunc("GET /login", a.LoginPage)
	mux.HandleFunc("POST /login", a.Login)
	mux.HandleFunc("GET /logout", a.Logout)

	mux.HandleFunc("GET /{$}", a.requireUser(a.Home))
	mux.HandleFunc("POST /{$}", a.requireUser(a.CreateNote))
	mux.HandleFunc("POST /update-note", a.requireUserJSON(a.UpdateNote))
	mux.HandleFunc("POST /delete-note", a.requireUserJSON(a.DeleteNote))
	mux.HandleFunc("POST /edit-image/{id}", a.requireUser(a.EditImage))

	// Everything else is a 404 page.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		a.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	})

	return mux
}
