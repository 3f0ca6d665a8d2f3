package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yab-g4u/Ablack/internal/domain"
)

type wishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	q := querierFromContext(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.name, p.description, p.price, p.category, p.image_url, p.stock_quantity
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var (
			it domain.WishlistItem
			p  domain.Product
		)
		err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt,
			&p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.StockQuantity)
		if err != nil {
			return nil, err
		}
		p.ID = it.ProductID
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, error) {
	q := querierFromContext(ctx, r.db)
	it := domain.WishlistItem{UserID: userID, ProductID: productID}
	err := q.QueryRow(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		userID, productID,
	).Scan(&it.ID, &it.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	q := querierFromContext(ctx, r.db)
	tag, err := q.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
