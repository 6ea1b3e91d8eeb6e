package notes

import (
	"context"
	"strings"
	"testing"

	"github.com/derrick868/notes-app/internal/database"
	"github.com/derrick868/notes-app/internal/models"
	"github.com/derrick868/notes-app/internal/uploads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService builds a Service over an in-memory database and a temporary
// upload directory, plus two users to exercise ownership checks.
func setupService(t *testing.T) (*Service, *models.User, *models.User) {
	t.Helper()

	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	alice, err := database.CreateUser(ctx, db, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)
	bob, err := database.CreateUser(ctx, db, "bob@example.com", "Bob", "password123")
	require.NoError(t, err)

	return NewService(db, uploads.NewStore(t.TempDir())), alice, bob
}

func TestCreate(t *testing.T) {
	svc, alice, _ := setupService(t)
	ctx := context.Background()

	t.Run("stores the body exactly", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, "hello\nworld", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello\nworld", note.Body)
		assert.Equal(t, alice.ID, note.UserID)
		assert.False(t, note.Image.Valid)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, "", nil)
		require.ErrorIs(t, err, ErrEmptyBody)

		all, err := svc.ListForUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, all, 1, "failed create must not persist a record")
	})

	t.Run("saves an allowed image", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, "with image",
			&uploads.File{Name: "cat.png", Data: strings.NewReader("img")})
		require.NoError(t, err)
		require.True(t, note.Image.Valid)
		assert.True(t, strings.HasSuffix(note.Image.String, ".png"))
	})

	t.Run("rejects a disallowed image type without persisting", func(t *testing.T) {
		before, err := svc.ListForUser(ctx, alice.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, alice.ID, "body",
			&uploads.File{Name: "nasty.exe", Data: strings.NewReader("x")})
		require.ErrorIs(t, err, uploads.ErrDisallowedType)

		after, err := svc.ListForUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestListForUserOrderAndIsolation(t *testing.T) {
	svc, alice, bob := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, alice.ID, "first", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice.ID, "second", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, "bobs note", nil)
	require.NoError(t, err)

	notes, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2, "listing must only include the owner's notes")
	assert.Equal(t, second.ID, notes[0].ID, "newest note first")
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestUpdateBody(t *testing.T) {
	svc, alice, bob := setupService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, alice.ID, "hello",
		&uploads.File{Name: "pic.gif", Data: strings.NewReader("img")})
	require.NoError(t, err)

	t.Run("round trip preserves the image", func(t *testing.T) {
		updated, err := svc.UpdateBody(ctx, alice.ID, note.ID, "X")
		require.NoError(t, err)
		assert.Equal(t, "X", updated.Body)
		assert.Equal(t, note.Image, updated.Image)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := svc.UpdateBody(ctx, alice.ID, note.ID, "")
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateBody(ctx, alice.ID, 99999, "X")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("other user's note", func(t *testing.T) {
		_, err := svc.UpdateBody(ctx, bob.ID, note.ID, "hijacked")
		require.ErrorIs(t, err, ErrNotOwner)

		unchanged, err := svc.UpdateBody(ctx, alice.ID, note.ID, "X")
		require.NoError(t, err)
		assert.Equal(t, "X", unchanged.Body, "rejected update must leave the record alone")
	})
}

func TestDelete(t *testing.T) {
	svc, alice, bob := setupService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, alice.ID, "doomed", nil)
	require.NoError(t, err)

	t.Run("other user cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, bob.ID, note.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("owner deletes permanently", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice.ID, note.ID))

		_, err := svc.UpdateBody(ctx, alice.ID, note.ID, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		err := svc.Delete(ctx, alice.ID, note.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAttachImage(t *testing.T) {
	svc, alice, bob := setupService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, alice.ID, "plain", nil)
	require.NoError(t, err)

	t.Run("attaches and replaces", func(t *testing.T) {
		withImage, err := svc.AttachImage(ctx, alice.ID, note.ID,
			&uploads.File{Name: "one.jpg", Data: strings.NewReader("1")})
		require.NoError(t, err)
		require.True(t, withImage.Image.Valid)

		replaced, err := svc.AttachImage(ctx, alice.ID, note.ID,
			&uploads.File{Name: "two.jpg", Data: strings.NewReader("2")})
		require.NoError(t, err)
		assert.NotEqual(t, withImage.Image.String, replaced.Image.String)
		assert.Equal(t, "plain", replaced.Body)
	})

	t.Run("ownership checked before file I/O", func(t *testing.T) {
		_, err := svc.AttachImage(ctx, bob.ID, note.ID,
			&uploads.File{Name: "sneaky.png", Data: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("disallowed type leaves the record untouched", func(t *testing.T) {
		before, err := svc.UpdateBody(ctx, alice.ID, note.ID, "plain")
		require.NoError(t, err)

		_, err = svc.AttachImage(ctx, alice.ID, note.ID,
			&uploads.File{Name: "script.sh", Data: strings.NewReader("x")})
		require.ErrorIs(t, err, uploads.ErrDisallowedType)

		after, err := svc.UpdateBody(ctx, alice.ID, note.ID, "plain")
		require.NoError(t, err)
		assert.Equal(t, before.Image, after.Image)
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := svc.AttachImage(ctx, alice.ID, 99999,
			&uploads.File{Name: "a.png", Data: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
