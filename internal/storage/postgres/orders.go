package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// orderRepository stores each order as one JSONB document. A few fields are
// copied into columns for filtering and aggregates.
type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	const query = `INSERT INTO orders (id, user_id, status, is_paid, total_price, created_at, updated_at, document)
                   VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)`
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.UserID, string(order.Status), order.IsPaid, order.TotalPrice.StringFixed(2),
		order.CreatedAt, order.UpdatedAt, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	var doc []byte
	err := r.storage.pool.QueryRow(ctx, `SELECT document FROM orders WHERE id=$1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return decodeOrder(doc)
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	const query = `UPDATE orders SET status=$2, is_paid=$3, total_price=$4::numeric, updated_at=$5, document=$6
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		order.ID, string(order.Status), order.IsPaid, order.TotalPrice.StringFixed(2), order.UpdatedAt, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT document FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	const query = `SELECT document FROM orders
                   WHERE ($1 = '' OR status = $1)
                   ORDER BY created_at DESC
                   LIMIT NULLIF($2, 0)`
	return r.list(ctx, query, string(filter.Status), filter.Limit)
}

func (r *orderRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(total_price), 0)::text FROM orders WHERE is_paid AND status <> $1`
	var raw string
	if err := r.storage.pool.QueryRow(ctx, query, string(model.OrderStatusCancelled)).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode total sales: %w", err)
	}
	return total, nil
}

func (r *orderRepository) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE status NOT IN ($1, $2)`
	var n int64
	err := r.storage.pool.QueryRow(ctx, query,
		string(model.OrderStatusDelivered), string(model.OrderStatusCancelled)).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeOrder(doc []byte) (*model.Order, error) {
	var order model.Order
	if err := json.Unmarshal(doc, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}
