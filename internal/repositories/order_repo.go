package repositories

import (
	"context"
	"fmt"

	"wfxshop/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByReference(ctx context.Context, reference uuid.UUID) (*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// Create persists the order header and its items in one transaction. On
// any failure the transaction rolls back, so an order row never exists
// without its items. Fills in the generated ids and created_at.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderQuery := `
		INSERT INTO orders (reference, name, address, total, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, orderQuery, order.Reference, order.Name, order.Address, order.Total).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (product_name, product_price, quantity, order_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery, item.ProductName, item.ProductPrice, item.Quantity, item.OrderID).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item %q: %w", item.ProductName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order transaction: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByReference(ctx context.Context, reference uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	orderQuery := `
		SELECT id, reference, name, address, total, created_at
		FROM orders
		WHERE reference = $1
	`
	err := r.db.QueryRow(ctx, orderQuery, reference).Scan(&order.ID, &order.Reference, &order.Name, &order.Address, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	itemsQuery := `
		SELECT id, product_name, product_price, quantity, order_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.ProductName, &item.ProductPrice, &item.Quantity, &item.OrderID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}
