package repository

import (
	"context"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// ProductRepository reads the catalog owned by the storefront.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Count(ctx context.Context) (int64, error)
}
