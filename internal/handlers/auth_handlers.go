package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/derrick868/notes-app/internal/database"
	"github.com/derrick868/notes-app/internal/models"
)

const sessionCookieName = "session_token"

// RegisterPage renders the registration form.
func (a *App) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "auth/register.html", http.StatusOK, nil, nil)
}

// Register handles the registration form submission.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, "Could not read the submitted form.")
		return
	}

	email := r.FormValue("email")
	firstName := r.FormValue("first_name")
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	rerender := func(message string) {
		a.render(w, r, "auth/register.html", http.StatusOK, nil, map[string]any{
			"Error": message,
			"Email": email,
			"Name":  firstName,
		})
	}

	if email == "" || password == "" {
		rerender("Email and password are required.")
		return
	}
	if password != confirmPassword {
		rerender("Passwords do not match.")
		return
	}

	ctx := r.Context()

	_, err := database.GetUserByEmail(ctx, a.db, email)
	if err == nil {
		rerender("Email already registered.")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		a.logger.Error("register: email lookup failed", "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if _, err := database.CreateUser(ctx, a.db, email, firstName, password); err != nil {
		a.logger.Error("register: create user failed", "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Could not create the account. Please try again.")
		return
	}

	setFlash(w, "success", "Account created! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "auth/login.html", http.StatusOK, nil, nil)
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password produce the same message on purpose.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, "Could not read the submitted form.")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	rerender := func(message string) {
		a.render(w, r, "auth/login.html", http.StatusOK, nil, map[string]any{
			"Error": message,
			"Email": email,
		})
	}

	if email == "" || password == "" {
		rerender("Email and password are required.")
		return
	}

	user, err := database.GetUserByEmail(r.Context(), a.db, email)
	if errors.Is(err, sql.ErrNoRows) {
		rerender("Invalid email or password.")
		return
	}
	if err != nil {
		a.logger.Error("login: email lookup failed", "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if err := database.VerifyPassword(user.PasswordHash, password); err != nil {
		rerender("Invalid email or password.")
		return
	}

	value := a.sessions.Create(user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(a.sessions.TTL()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	setFlash(w, "success", "Logged in successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout invalidates the session and expires its cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		a.sessions.Destroy(cookie.Value)

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// currentUser resolves the request's session cookie to a user record.
func (a *App) currentUser(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, err
	}

	userID, ok := a.sessions.Lookup(cookie.Value)
	if !ok {
		return nil, errors.New("invalid or expired session")
	}

	return database.GetUserByID(r.Context(), a.db, userID)
}

// requireUser gates browser flows: without a valid session the request is
// redirected to the login page.
func (a *App) requireUser(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.currentUser(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

// requireUserJSON gates the fetch endpoints: without a valid session the
// request gets a 401 JSON body instead of a redirect.
func (a *App) requireUserJSON(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.currentUser(r)
		if err != nil {
			jsonError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r, user)
	}
}
