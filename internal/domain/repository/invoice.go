package repository

import (
	"context"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// InvoiceRepository stores rendered invoice PDFs.
type InvoiceRepository interface {
	Put(ctx context.Context, invoice *model.Invoice) error
	Get(ctx context.Context, orderID string) (*model.Invoice, error)
}
