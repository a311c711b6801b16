package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/domain/repository"
)

const recentOrdersLimit = 5

// DashboardUseCase aggregates the admin overview.
type DashboardUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, products: products, users: users}
}

// Stats runs the aggregate queries concurrently.
func (u *DashboardUseCase) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var (
		stats  model.DashboardStats
		sales  decimal.Decimal
		recent []model.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sales, err = u.orders.TotalSales(ctx); err != nil {
			return fmt.Errorf("total sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.ActiveOrders, err = u.orders.CountActive(ctx); err != nil {
			return fmt.Errorf("active orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.ProductCount, err = u.products.Count(ctx); err != nil {
			return fmt.Errorf("product count: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.UserCount, err = u.users.Count(ctx); err != nil {
			return fmt.Errorf("user count: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if recent, err = u.orders.List(ctx, model.OrderFilter{Limit: recentOrdersLimit}); err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalSales = sales.Round(2)
	stats.RecentOrders = recent
	if stats.RecentOrders == nil {
		stats.RecentOrders = []model.Order{}
	}
	return &stats, nil
}
