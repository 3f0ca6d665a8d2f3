package postgresrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yab-g4u/Ablack/internal/domain"
)

type paymentMethodRepository struct {
	db *pgxpool.Pool
}

func NewPaymentMethodRepository(db *pgxpool.Pool) domain.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) GetByUserID(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	q := querierFromContext(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, user_id, type, details, is_default, created_at, updated_at
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var pm domain.PaymentMethod
		err := rows.Scan(&pm.ID, &pm.UserID, &pm.Type, &pm.Details,
			&pm.IsDefault, &pm.CreatedAt, &pm.UpdatedAt)
		if err != nil {
			return nil, err
		}
		methods = append(methods, pm)
	}
	return methods, rows.Err()
}

func (r *paymentMethodRepository) Create(ctx context.Context, pm *domain.PaymentMethod) error {
	q := querierFromContext(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO payment_methods (user_id, type, details, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		pm.UserID, pm.Type, pm.Details, pm.IsDefault,
	).Scan(&pm.ID, &pm.CreatedAt, &pm.UpdatedAt)
}

func (r *paymentMethodRepository) Update(ctx context.Context, pm *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	q := querierFromContext(ctx, r.db)
	var updated domain.PaymentMethod
	err := q.QueryRow(ctx, `
		UPDATE payment_methods
		SET type = $3, details = $4, is_default = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, details, is_default, created_at, updated_at`,
		pm.ID, pm.UserID, pm.Type, pm.Details, pm.IsDefault,
	).Scan(&updated.ID, &updated.UserID, &updated.Type, &updated.Details,
		&updated.IsDefault, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id, userID string) error {
	q := querierFromContext(ctx, r.db)
	tag, err := q.Exec(ctx, `
		DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *paymentMethodRepository) ClearDefault(ctx context.Context, userID, keep string) error {
	q := querierFromContext(ctx, r.db)
	_, err := q.Exec(ctx, `
		UPDATE payment_methods SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND id <> $2 AND is_default`,
		userID, keep,
	)
	return err
}
