package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/derrick868/notes-app/internal/models"
)

// Template helper functions
var funcMap = template.FuncMap{
	"FormatDateTime": FormatDateTime,
	"Nl2br":          Nl2br,
}

// FormatDateTime formats a timestamp for display.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}

// Nl2br escapes s and then turns newlines into <br> tags, so multi-line
// note bodies render as written without opening an injection hole.
func Nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// loadTemplates parses every page template under dir against the shared
// layout.html. Keys are paths relative to dir, e.g. "auth/login.html".
func loadTemplates(dir string) (map[string]*template.Template, error) {
	layoutFile := filepath.Join(dir, "layout.html")

	var pageFiles []string
	for _, pattern := range []string{
		filepath.Join(dir, "*.html"),
		filepath.Join(dir, "*", "*.html"),
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		pageFiles = append(pageFiles, matches...)
	}

	templates := make(map[string]*template.Template)
	for _, pageFile := range pageFiles {
		if pageFile == layoutFile {
			continue
		}

		name, err := filepath.Rel(dir, pageFile)
		if err != nil {
			return nil, err
		}
		name = filepath.ToSlash(name)

		tmpl, err := template.New(name).Funcs(funcMap).ParseFiles(layoutFile, pageFile)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found under %s", dir)
	}
	return templates, nil
}

// render executes a page template inside the layout. user may be nil for
// the anonymous pages; extra keys are merged into the template data next
// to User, Flash, and CurrentYear. The flash cookie is consumed before the
// status line goes out.
func (a *App) render(w http.ResponseWriter, r *http.Request, name string, statusCode int, user *models.User, extra map[string]any) {
	tmpl, ok := a.templates[name]
	if !ok {
		a.logger.Error("template not found", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"User":        user,
		"Flash":       popFlash(w, r),
		"CurrentYear": time.Now().Year(),
	}
	for k, v := range extra {
		data[k] = v
	}

	w.WriteHeader(statusCode)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		a.logger.Error("template execution failed", "name", name, "error", err)
	}
}

// renderError renders the shared error page. The message is what the user
// sees; internal error detail belongs in the log, not here.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	user, _ := a.currentUser(r)

	a.render(w, r, "error.html", statusCode, user, map[string]any{
		"StatusCode": statusCode,
		"StatusText": http.StatusText(statusCode),
		"Message":    message,
	})
}

const flashCookieName = "flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string // "success" or "error"
	Message  string
}

// setFlash queues a flash message in a cookie.
func setFlash(w http.ResponseWriter, category, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}
	return &Flash{Category: category, Message: message}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone already; nothing useful left to do.
		return
	}
}

// jsonError writes the {"error": ...} shape the front-end fetch calls expect.
func jsonError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// jsonMessage writes the {"message": ...} success shape.
func jsonMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
