package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"autohub/internal/model"
)

type UserRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, password_hash, role, display_name, bio, location, profile_image, created_at`

// Create inserts a new user. Duplicate username/email comes back as
// ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(u.Email)
	u.Username = strings.ToLower(u.Username)
	const query = `
		INSERT INTO users (username, email, password_hash, role, display_name, bio, location, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.DB.QueryRowxContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Role,
		u.DisplayName, u.Bio, u.Location, u.ProfileImage,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("UserRepository.Create: %w", ErrDuplicate)
		}
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("UserRepository.GetByID: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("UserRepository.GetByEmail: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.User) (bool, error) {
	const query = `
		UPDATE users SET display_name = $1, bio = $2, location = $3, profile_image = $4
		WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query,
		u.DisplayName, u.Bio, u.Location, u.ProfileImage, u.ID)
	if err != nil {
		return false, fmt.Errorf("UserRepository.UpdateProfile: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
