package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// OrderRepository persists order documents.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	// Save overwrites the whole document. Concurrent writers race; last write wins.
	Save(ctx context.Context, order *model.Order) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	CountActive(ctx context.Context) (int64, error)
}
