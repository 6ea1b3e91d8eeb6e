package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/derrick868/notes-app/internal/models"
	"github.com/derrick868/notes-app/internal/notes"
	"github.com/derrick868/notes-app/internal/uploads"
)

// maxUploadBytes caps how much of a multipart body is held in memory.
const maxUploadBytes = 16 << 20 // 16MB

// Home renders the logged-in user's notes, newest first.
func (a *App) Home(w http.ResponseWriter, r *http.Request, user *models.User) {
	userNotes, err := a.notes.ListForUser(r.Context(), user.ID)
	if err != nil {
		a.logger.Error("home: listing notes failed", "user_id", user.ID, "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Could not load your notes.")
		return
	}

	a.render(w, r, "notes/home.html", http.StatusOK, user, map[string]any{
		"Notes": userNotes,
	})
}

// CreateNote handles the add-note form: a text body plus an optional image.
// A disallowed image type is reported to the user, but the note itself is
// still saved without it.
func (a *App) CreateNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.renderError(w, r, http.StatusBadRequest, "Could not read the submitted form.")
		return
	}

	body := r.FormValue("note")
	if body == "" {
		setFlash(w, "error", "Note is too short!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var image *uploads.File
	imageRejected := false
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if uploads.IsAllowed(header.Filename) {
			image = &uploads.File{Name: header.Filename, Data: file}
		} else {
			imageRejected = true
		}
	}

	if _, err := a.notes.Create(r.Context(), user.ID, body, image); err != nil {
		a.logger.Error("create note failed", "user_id", user.ID, "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Could not save the note.")
		return
	}

	if imageRejected {
		setFlash(w, "error", "That image type is not supported, so the note was saved without it.")
	} else {
		setFlash(w, "success", "Note added successfully!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type updateNoteRequest struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// UpdateNote replaces a note's text. Called by the in-page editor via
// fetch with a JSON body.
func (a *App) UpdateNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if req.ID == 0 || req.Text == "" {
		jsonError(w, http.StatusBadRequest, "Missing note ID or text")
		return
	}

	_, err := a.notes.UpdateBody(r.Context(), user.ID, req.ID, req.Text)
	switch {
	case errors.Is(err, notes.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, notes.ErrNotOwner):
		jsonError(w, http.StatusForbidden, "You don't have permission to edit this note")
	case errors.Is(err, notes.ErrEmptyBody):
		jsonError(w, http.StatusBadRequest, "Missing note ID or text")
	case err != nil:
		a.logger.Error("update note failed", "user_id", user.ID, "note_id", req.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong")
	default:
		jsonMessage(w, "Note updated successfully")
	}
}

type deleteNoteRequest struct {
	NoteID int64 `json:"noteId"`
}

// DeleteNote removes a note permanently. Called via fetch with a JSON body.
func (a *App) DeleteNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req deleteNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if req.NoteID == 0 {
		jsonError(w, http.StatusBadRequest, "Note ID missing")
		return
	}

	err := a.notes.Delete(r.Context(), user.ID, req.NoteID)
	switch {
	case errors.Is(err, notes.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, notes.ErrNotOwner):
		jsonError(w, http.StatusForbidden, "You don't have permission to delete this note")
	case err != nil:
		a.logger.Error("delete note failed", "user_id", user.ID, "note_id", req.NoteID, "error", err)
		jsonError(w, http.StatusInternalServerError, "Something went wrong")
	default:
		jsonMessage(w, "Note deleted successfully")
	}
}

// EditImage attaches or replaces a note's image from a multipart form and
// redirects back to the note list, reporting the outcome as a flash.
func (a *App) EditImage(w http.ResponseWriter, r *http.Request, user *models.User) {
	noteID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.renderError(w, r, http.StatusBadRequest, "Invalid note ID.")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setFlash(w, "error", "Could not read the uploaded file.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		setFlash(w, "error", "No image provided.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	_, err = a.notes.AttachImage(r.Context(), user.ID, noteID,
		&uploads.File{Name: header.Filename, Data: file})
	switch {
	case errors.Is(err, notes.ErrNotFound):
		a.renderError(w, r, http.StatusNotFound, "Note not found.")
		return
	case errors.Is(err, notes.ErrNotOwner):
		setFlash(w, "error", "You don't have permission to edit this image!")
	case errors.Is(err, uploads.ErrDisallowedType):
		setFlash(w, "error", "That image type is not supported.")
	case err != nil:
		a.logger.Error("attach image failed", "user_id", user.ID, "note_id", noteID, "error", err)
		setFlash(w, "error", "Could not save the image.")
	default:
		setFlash(w, "success", "Image updated successfully!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
