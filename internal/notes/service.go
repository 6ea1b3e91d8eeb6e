// Package notes holds the business rules for note CRUD. Every operation
// takes the acting user id explicitly and enforces ownership here, at the
// service boundary, before anything is written.
package notes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/derrick868/notes-app/internal/database"
	"github.com/derrick868/notes-app/internal/models"
	"github.com/derrick868/notes-app/internal/uploads"
)

var (
	// ErrNotFound means the note id does not exist.
	ErrNotFound = errors.New("notes: note not found")
	// ErrNotOwner means the note exists but belongs to another user.
	ErrNotOwner = errors.New("notes: note does not belong to user")
	// ErrEmptyBody means the note body was missing or empty.
	ErrEmptyBody = errors.New("notes: note body must not be empty")
)

// Service exposes note operations over the database and the upload store.
type Service struct {
	db      *sql.DB
	uploads *uploads.Store
}

// NewService wires a Service to its stores.
func NewService(db *sql.DB, uploadStore *uploads.Store) *Service {
	return &Service{db: db, uploads: uploadStore}
}

// ListForUser returns all notes owned by userID, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	return database.GetNotesForUser(ctx, s.db, userID)
}

// Create adds a note for userID. image may be nil. An image with a
// disallowed type returns uploads.ErrDisallowedType and persists nothing;
// callers that want the old "keep the note anyway" behavior check the type
// up front and pass nil.
func (s *Service) Create(ctx context.Context, userID int64, body string, image *uploads.File) (*models.Note, error) {
	if len(body) < 1 {
		return nil, ErrEmptyBody
	}

	var filename sql.NullString
	if image != nil {
		stored, err := s.uploads.Save(image)
		if err != nil {
			return nil, err
		}
		filename = sql.NullString{String: stored, Valid: true}
	}

	return database.CreateNote(ctx, s.db, userID, body, filename)
}

// UpdateBody replaces the text of a note owned by userID, leaving its
// image untouched.
func (s *Service) UpdateBody(ctx context.Context, userID, noteID int64, body string) (*models.Note, error) {
	if len(body) < 1 {
		return nil, ErrEmptyBody
	}

	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := database.UpdateNoteBody(ctx, s.db, note.ID, body); err != nil {
		return nil, err
	}

	return database.GetNoteByID(ctx, s.db, note.ID)
}

// Delete removes a note owned by userID permanently. Deleting an id that
// no longer exists returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, noteID int64) error {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return err
	}

	err = database.DeleteNote(ctx, s.db, note.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// AttachImage stores an image and records it on a note owned by userID,
// replacing any previous attachment. Ownership is checked before any file
// I/O; a disallowed type returns uploads.ErrDisallowedType and leaves both
// disk and record untouched.
func (s *Service) AttachImage(ctx context.Context, userID, noteID int64, image *uploads.File) (*models.Note, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	stored, err := s.uploads.Save(image)
	if err != nil {
		return nil, err
	}

	if err := database.UpdateNoteImage(ctx, s.db, note.ID, stored); err != nil {
		return nil, err
	}

	return database.GetNoteByID(ctx, s.db, note.ID)
}

// getOwned resolves a note and checks it belongs to userID.
func (s *Service) getOwned(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	note, err := database.GetNoteByID(ctx, s.db, noteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, ErrNotOwner
	}
	return note, nil
}
