package postgresrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yab-g4u/Ablack/internal/domain"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	q := querierFromContext(ctx, r.db)
	err := q.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := querierFromContext(ctx, r.db)
	var u domain.User
	err := q.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := querierFromContext(ctx, r.db)
	var u domain.User
	err := q.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := querierFromContext(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	q := querierFromContext(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO profiles (id, full_name, phone, address, city, region, postal_code, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		profile.ID, profile.FullName, profile.Phone, profile.Address,
		profile.City, profile.Region, profile.PostalCode, profile.AvatarURL,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	q := querierFromContext(ctx, r.db)
	var p domain.Profile
	err := q.QueryRow(ctx, `
		SELECT id, full_name, phone, address, city, region, postal_code, avatar_url, created_at, updated_at
		FROM profiles WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.FullName, &p.Phone, &p.Address, &p.City, &p.Region,
		&p.PostalCode, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	q := querierFromContext(ctx, r.db)
	var p domain.Profile
	err := q.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = $2, phone = $3, address = $4, city = $5,
		    region = $6, postal_code = $7, avatar_url = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, phone, address, city, region, postal_code, avatar_url, created_at, updated_at`,
		profile.ID, profile.FullName, profile.Phone, profile.Address,
		profile.City, profile.Region, profile.PostalCode, profile.AvatarURL,
	).Scan(&p.ID, &p.FullName, &p.Phone, &p.Address, &p.City, &p.Region,
		&p.PostalCode, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	q := querierFromContext(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)`,
		token.Token, token.UserID, token.ExpiresAt,
	)
	return err
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	q := querierFromContext(ctx, r.db)
	var t domain.RefreshToken
	err := q.QueryRow(ctx, `
		SELECT token, user_id, expires_at, created_at, revoked
		FROM refresh_tokens WHERE token = $1`,
		token,
	).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.Revoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *userRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	q := querierFromContext(ctx, r.db)
	_, err := q.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`,
		token,
	)
	return err
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
