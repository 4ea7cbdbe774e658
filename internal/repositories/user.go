package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository implements [models.UserLookup] and user provisioning.
type UserRepository struct {
	db   *sql.DB
	cost int
}

// UserOption configures a [UserRepository].
type UserOption func(*UserRepository)

// WithBcryptCost overrides the bcrypt work factor used for new password digests.
func WithBcryptCost(cost int) UserOption {
	return func(r *UserRepository) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			r.cost = cost
		}
	}
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB, opts ...UserOption) *UserRepository {
	r := &UserRepository{db: db, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create hashes password and inserts a new user.
func (r *UserRepository) Create(ctx context.Context, username, password string) (*models.User, error) {
	user := models.NewUser(username)

	if password != "" {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordDigest = string(digest)
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_digest, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordDigest, user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: username %q is taken", shared.ErrDuplicateRecord, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if user.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	return user, nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", err, id)
	}
	return user, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM users
		WHERE username = ?
	`, username)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, username)
	}
	return user, nil
}

// Authenticate returns the user when password matches their digest.
//
// Unknown usernames and wrong passwords both return [shared.ErrInvalidCredentials].
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, password_digest, created_at, updated_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user      models.User
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&user.ID, &user.Username, &user.PasswordDigest, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return &user, nil
}
