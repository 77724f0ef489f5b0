package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/varlopecar/react-form/shared/domain"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
	sharedpg "github.com/varlopecar/react-form/shared/storage/pg"
)

const userColumns = `id, email, password_hash, first_name, last_name, birth_date, city, postal_code, is_admin, created_at, updated_at`

var (
	errUserNotFound = &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	errDuplicate    = &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
)

// =========================================================================
// Public Methods (satisfy the service.UserStorage interface)
// =========================================================================

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	err := sharedpg.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		user, err = saveUser(ctx, tx, user)
		return err
	})
	return user, err
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return getUser(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	return getUser(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Storage) Users(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return execAffectingOne(ctx, tx,
			`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passHash, id)
	})
}

func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	return execAffectingOne(ctx, s.db, `DELETE FROM users WHERE id = $1`, id)
}

// =========================================================================
// Internal helpers (work on any Querier)
// =========================================================================

func saveUser(ctx context.Context, q sharedpg.Querier, user domain.User) (domain.User, error) {
	err := q.QueryRowxContext(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, birth_date, city, postal_code, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		user.Email, user.PassHash, user.FirstName, user.LastName, user.BirthDate, user.City, user.PostalCode, user.Admin,
	).Scan(&user.Id, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.User{}, errDuplicate
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func getUser(ctx context.Context, q sharedpg.Querier, query string, arg any) (domain.User, error) {
	var user domain.User
	if err := q.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, errUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func execAffectingOne(ctx context.Context, q sharedpg.Querier, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errUserNotFound
	}
	return nil
}
