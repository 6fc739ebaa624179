package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock
// implements it too, which is what the tests run against.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements domain.UserRepository and
// domain.RefreshTokenRepository on PostgreSQL.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, email, name, password_hash, role, enabled, email_verified,
		verification_token, two_factor_enabled, two_factor_secret,
		provider, provider_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Enabled, &u.EmailVerified,
		&u.VerificationToken, &u.TwoFactorEnabled, &u.TwoFactorSecret,
		&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *Repository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	// The empty string marks an unset slot and must never match.
	query := `SELECT ` + userColumns + ` FROM users
		WHERE verification_token = $1 AND verification_token <> '' LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by verification token: %w", err)
	}
	return user, nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, enabled, email_verified,
			verification_token, two_factor_enabled, two_factor_secret,
			provider, provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.Enabled,
		user.EmailVerified, user.VerificationToken, user.TwoFactorEnabled,
		user.TwoFactorSecret, user.Provider, user.ProviderID,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, role = $5, enabled = $6,
			email_verified = $7, verification_token = $8, two_factor_enabled = $9,
			two_factor_secret = $10, provider = $11, provider_id = $12, updated_at = now()
		WHERE id = $1`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.Enabled,
		user.EmailVerified, user.VerificationToken, user.TwoFactorEnabled,
		user.TwoFactorSecret, user.Provider, user.ProviderID)

	return err
}

func (r *Repository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Enabled, &u.EmailVerified,
			&u.VerificationToken, &u.TwoFactorEnabled, &u.TwoFactorSecret,
			&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Replace rotates the user's refresh token: delete-then-insert inside one
// transaction so two concurrent rotations can never leave two live tokens.
func (r *Repository) Replace(ctx context.Context, rt *domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, rt.UserID); err != nil {
		return fmt.Errorf("failed to delete previous refresh token: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens WHERE token = $1 LIMIT 1`

	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	return err
}

func (r *Repository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}
