package user

import (
	"context"
	"database/sql"
	"errors"

	"ecomcart-be/internal/db"
	"ecomcart-be/internal/logger"

	"go.uber.org/zap"
)

const publicColumns = `id, name, email, role, is_active, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, params UpdateParams) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, email string, role Role) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanPublic(s interface{ Scan(...any) error }, u *User) error {
	return s.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", email),
	)

	var u User
	err := scanPublic(r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+publicColumns,
		name, email, passwordHash, role,
	), &u)
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			log.Info("email already registered")
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, err
	}

	return &u, nil
}

// FindByEmail is the only lookup that loads the password hash.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by email", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := scanPublic(r.db.QueryRowContext(ctx,
		`SELECT `+publicColumns+` FROM users WHERE id = $1`, id,
	), &u)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by id",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &u, nil
}

// Update keeps existing values for nil params.
func (r *repository) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("user_id", id),
	)

	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			password = COALESCE($4, password),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + publicColumns

	var u User
	err := scanPublic(r.db.QueryRowContext(ctx, query,
		id, params.Name, params.Email, params.PasswordHash,
	), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, ErrEmailExists
		}
		log.Error("failed to update user", zap.Error(err))
		return nil, err
	}

	log.Info("user updated successfully")
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+publicColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := scanPublic(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) SetRole(ctx context.Context, email string, role Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE email = $2`,
		role, email,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
