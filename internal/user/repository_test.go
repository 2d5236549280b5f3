package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "role", "is_active", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)
		now := time.Now()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("John", "john@example.com", "hash", RoleUser).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("u-1", "John", "john@example.com", "user", true, now, now))

		u, err := repo.Create(ctx, "John", "john@example.com", "hash", RoleUser)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, RoleUser, u.Role)
		assert.True(t, u.IsActive)
		assert.Empty(t, u.Password)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(ctx, "John", "john@example.com", "hash", RoleUser)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Error", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, "John", "john@example.com", "hash", RoleUser)
		assert.EqualError(t, err, "db error")
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)
		now := time.Now()

		mock.ExpectQuery("SELECT .* password .* FROM users WHERE email = \\$1").
			WithArgs("john@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "is_active", "created_at", "updated_at"}).
				AddRow("u-1", "John", "john@example.com", "hash", "admin", true, now, now))

		u, err := repo.FindByEmail(ctx, "john@example.com")
		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "hash", u.Password)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("SELECT .* FROM users").WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)
		now := time.Now()

		mock.ExpectQuery("SELECT id, name, email, role, is_active, created_at, updated_at FROM users WHERE id = \\$1").
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("u-1", "John", "john@example.com", "user", false, now, now))

		u, err := repo.FindByID(ctx, "u-1")
		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.False(t, u.IsActive)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("SELECT .* FROM users").WillReturnRows(sqlmock.NewRows(userColumns))

		u, err := repo.FindByID(ctx, "u-x")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	name := "Jane"

	t.Run("Success", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)
		now := time.Now()

		mock.ExpectQuery("UPDATE users SET name = COALESCE\\(\\$2, name\\)").
			WithArgs("u-1", &name, nil, nil).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("u-1", "Jane", "john@example.com", "user", true, now, now))

		u, err := repo.Update(ctx, "u-1", UpdateParams{Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, "Jane", u.Name)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("UPDATE users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Update(ctx, "u-1", UpdateParams{Name: &name})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Missing", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, "u-1", UpdateParams{Name: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	repo, mock, _ := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM users ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-2", "B", "b@example.com", "user", true, now, now).
			AddRow("u-1", "A", "a@example.com", "admin", true, now.Add(-time.Hour), now))

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "u-2", users[0].ID)
}

func TestRepository_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectExec("UPDATE users SET role").
			WithArgs(RoleAdmin, "a@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetRole(ctx, "a@example.com", RoleAdmin))
	})

	t.Run("NoSuchUser", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectExec("UPDATE users SET role").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetRole(ctx, "x@example.com", RoleAdmin), ErrUserNotFound)
	})
}
