package repository

import (
	"context"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// SettingsRepository loads and stores the single store settings record.
// Get returns errors.ErrNotFound when nothing was saved yet.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.StoreSettings, error)
	Save(ctx context.Context, settings *model.StoreSettings) error
}
