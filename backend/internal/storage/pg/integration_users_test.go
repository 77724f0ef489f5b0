package pg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlopecar/react-form/shared/domain"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
)

func newUser(email string) domain.User {
	return domain.User{
		Email:      email,
		PassHash:   "hash",
		FirstName:  "Jean",
		LastName:   "Dupont",
		BirthDate:  domain.NewDate(1990, time.March, 4),
		City:       "Paris",
		PostalCode: "75001",
	}
}

func TestSaveUser(t *testing.T) {
	ctx := context.Background()

	saved, err := storage.SaveUser(ctx, newUser("save@example.com"))
	require.NoError(t, err, "SaveUser should not return an error")
	assert.Greater(t, saved.Id, int64(0))
	assert.False(t, saved.CreatedAt.IsZero())

	_, err = storage.SaveUser(ctx, newUser("save@example.com"))
	require.Error(t, err, "Saving user twice should return an error")
	assert.True(t, internal_errors.IsConflict(err))
	assert.Equal(t, "Email already registered", err.Error())
}

func TestUserByEmail(t *testing.T) {
	ctx := context.Background()
	saved, err := storage.SaveUser(ctx, newUser("byemail@example.com"))
	require.NoError(t, err)

	user, err := storage.UserByEmail(ctx, "byemail@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, user.Id)
	assert.Equal(t, "hash", user.PassHash)
	assert.Equal(t, "1990-03-04", user.BirthDate.String())
	assert.False(t, user.Admin)

	_, err = storage.UserByEmail(ctx, "nonexistent@example.com")
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestUsersAndDelete(t *testing.T) {
	ctx := context.Background()
	a, err := storage.SaveUser(ctx, newUser("list-a@example.com"))
	require.NoError(t, err)
	b, err := storage.SaveUser(ctx, newUser("list-b@example.com"))
	require.NoError(t, err)

	users, err := storage.Users(ctx)
	require.NoError(t, err)
	ids := map[domain.UserId]bool{}
	for _, u := range users {
		ids[u.Id] = true
	}
	assert.True(t, ids[a.Id])
	assert.True(t, ids[b.Id])

	require.NoError(t, storage.DeleteUser(ctx, a.Id))
	_, err = storage.UserById(ctx, a.Id)
	assert.True(t, internal_errors.IsNotFound(err))

	err = storage.DeleteUser(ctx, a.Id)
	assert.True(t, internal_errors.IsNotFound(err))

	// ids are never handed out again
	c, err := storage.SaveUser(ctx, newUser("list-a@example.com"))
	require.NoError(t, err)
	assert.Greater(t, c.Id, b.Id)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	saved, err := storage.SaveUser(ctx, newUser("pw@example.com"))
	require.NoError(t, err)

	require.NoError(t, storage.UpdatePassword(ctx, saved.Id, "new-hash"))
	user, err := storage.UserById(ctx, saved.Id)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PassHash)

	assert.True(t, internal_errors.IsNotFound(storage.UpdatePassword(ctx, 999999, "x")))
}

func TestPing(t *testing.T) {
	assert.NoError(t, storage.Ping(context.Background()))
}
