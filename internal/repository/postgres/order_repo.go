package postgresrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yab-g4u/Ablack/internal/domain"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	q := querierFromContext(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_number, status, total_amount, shipping_fee,
		                    shipping_address, payment_method, payment_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		order.UserID, order.OrderNumber, order.Status, order.TotalAmount,
		order.ShippingFee, order.ShippingAddress, order.PaymentMethod, order.PaymentDetails,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) CreateOrderItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	q := querierFromContext(ctx, r.db)
	for i := range items {
		items[i].OrderID = orderID
		err := q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, size)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			orderID, items[i].ProductID, items[i].Quantity, items[i].Price, items[i].Size,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `id, user_id, order_number, status, total_amount, shipping_fee,
	shipping_address, payment_method, payment_details, created_at, updated_at`

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.TotalAmount,
		&o.ShippingFee, &o.ShippingAddress, &o.PaymentMethod, &o.PaymentDetails,
		&o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id, userID string) (*domain.Order, error) {
	q := querierFromContext(ctx, r.db)
	var o domain.Order
	err := scanOrder(q.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1 AND user_id = $2", id, userID), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	q := querierFromContext(ctx, r.db)
	rows, err := q.Query(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) GetOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	q := querierFromContext(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.size,
		       p.name, p.image_url, p.category
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Size,
			&it.Product.Name, &it.Product.ImageURL, &it.Product.Category)
		if err != nil {
			return nil, err
		}
		it.Product.ID = it.ProductID
		it.Product.Price = it.Price
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, userID, status string) error {
	q := querierFromContext(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		id, userID, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
