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

type productRepository struct {
	storage *Storage
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, name, price_per_meter::text, material_type, sample_price::text, image
                   FROM products WHERE id=$1`
	var (
		p             model.Product
		price, sample string
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &price, &p.MaterialType, &sample, &p.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if p.PricePerMeter, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("decode price: %w", err)
	}
	if p.SamplePrice, err = decimal.NewFromString(sample); err != nil {
		return nil, fmt.Errorf("decode sample price: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type invoiceRepository struct {
	storage *Storage
}

func (r *invoiceRepository) Put(ctx context.Context, invoice *model.Invoice) error {
	const query = `INSERT INTO invoices (order_id, number, pdf, created_at) VALUES ($1, $2, $3, $4)
                   ON CONFLICT (order_id) DO UPDATE
                   SET number = EXCLUDED.number, pdf = EXCLUDED.pdf, created_at = EXCLUDED.created_at`
	_, err := r.storage.pool.Exec(ctx, query, invoice.OrderID, invoice.Number, invoice.PDF, invoice.CreatedAt)
	return err
}

func (r *invoiceRepository) Get(ctx context.Context, orderID string) (*model.Invoice, error) {
	const query = `SELECT order_id, number, pdf, created_at FROM invoices WHERE order_id=$1`
	var inv model.Invoice
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&inv.OrderID, &inv.Number, &inv.PDF, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

type settingsRepository struct {
	storage *Storage
}

func (r *settingsRepository) Get(ctx context.Context) (*model.StoreSettings, error) {
	var doc []byte
	err := r.storage.pool.QueryRow(ctx, `SELECT document FROM store_settings WHERE id=1`).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var s model.StoreSettings
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *model.StoreSettings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	const query = `INSERT INTO store_settings (id, document, updated_at) VALUES (1, $1, NOW())
                   ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`
	_, err = r.storage.pool.Exec(ctx, query, doc)
	return err
}
