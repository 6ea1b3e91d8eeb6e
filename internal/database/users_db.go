package database

import (
	"context"
	"database/sql"

	"github.com/derrick868/notes-app/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser hashes the password and inserts a new user. The email column
// carries a UNIQUE constraint, so a duplicate email surfaces as an error
// from the insert.
func CreateUser(ctx context.Context, db *sql.DB, email, firstName, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO users(email, password_hash, first_name) VALUES(?, ?, ?)",
		email, string(hashedPassword), firstName)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Re-read so DB defaults such as created_at are populated.
	return GetUserByID(ctx, db, id)
}

// GetUserByEmail retrieves a user by email. Returns sql.ErrNoRows when no
// such user exists.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	row := db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, first_name, created_at FROM users WHERE email = ?", email)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.CreatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id. Returns sql.ErrNoRows when no such
// user exists.
func GetUserByID(ctx context.Context, db *sql.DB, id int64) (*models.User, error) {
	user := &models.User{}
	row := db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, first_name, created_at FROM users WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.CreatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPassword compares a stored bcrypt hash with a plaintext password.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
