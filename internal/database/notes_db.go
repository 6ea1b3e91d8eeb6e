package database

import (
	"context"
	"database/sql"

	"github.com/derrick868/notes-app/internal/models"
)

// CreateNote inserts a note for the given owner. image may be invalid for
// notes without an attachment.
func CreateNote(ctx context.Context, db *sql.DB, userID int64, body string, image sql.NullString) (*models.Note, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO notes(user_id, body, image) VALUES(?, ?, ?)",
		userID, body, image)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return GetNoteByID(ctx, db, id)
}

// GetNoteByID retrieves a note by id. Returns sql.ErrNoRows when no such
// note exists.
func GetNoteByID(ctx context.Context, db *sql.DB, id int64) (*models.Note, error) {
	note := &models.Note{}
	row := db.QueryRowContext(ctx,
		"SELECT id, user_id, body, image, created_at FROM notes WHERE id = ?", id)
	if err := row.Scan(&note.ID, &note.UserID, &note.Body, &note.Image, &note.CreatedAt); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNotesForUser retrieves all notes owned by userID, newest first.
func GetNotesForUser(ctx context.Context, db *sql.DB, userID int64) ([]*models.Note, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, user_id, body, image, created_at FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.UserID, &note.Body, &note.Image, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// UpdateNoteBody replaces the body of a note, leaving its image untouched.
func UpdateNoteBody(ctx context.Context, db *sql.DB, id int64, body string) error {
	_, err := db.ExecContext(ctx, "UPDATE notes SET body = ? WHERE id = ?", body, id)
	return err
}

// UpdateNoteImage records the stored filename of a note's attachment.
func UpdateNoteImage(ctx context.Context, db *sql.DB, id int64, image string) error {
	_, err := db.ExecContext(ctx, "UPDATE notes SET image = ? WHERE id = ?", image, id)
	return err
}

// DeleteNote removes a note permanently. Returns sql.ErrNoRows when the id
// did not match a row, so callers can tell a repeat delete from a success.
func DeleteNote(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
