package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/polkiloo/fabricstore/internal/config"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/domain/repository"
)

// SettingsUseCase reads and updates the store settings record.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	defaults config.SettingsDefaults
}

// NewSettingsUseCase constructs SettingsUseCase falling back to configured defaults.
func NewSettingsUseCase(repo repository.SettingsRepository, cfg *config.Config) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, defaults: cfg.DefaultSettings}
}

// Get returns the saved settings or the configured defaults when none were saved.
func (u *SettingsUseCase) Get(ctx context.Context) (*model.StoreSettings, error) {
	s, err := u.repo.Get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	return &model.StoreSettings{
		GatewayEnabled:        u.defaults.GatewayEnabled,
		BankTransferEnabled:   u.defaults.BankTransferEnabled,
		NotifyCustomers:       u.defaults.NotifyCustomers,
		ShippingFlatRate:      u.defaults.ShippingFlatRate,
		FreeShippingThreshold: u.defaults.FreeShippingThreshold,
		AdminEmail:            u.defaults.AdminEmail,
	}, nil
}

// Update validates and stores settings.
func (u *SettingsUseCase) Update(ctx context.Context, s model.StoreSettings) (*model.StoreSettings, error) {
	if s.ShippingFlatRate.IsNegative() || s.FreeShippingThreshold.IsNegative() {
		return nil, fmt.Errorf("%w: shipping amounts must not be negative", domainErrors.ErrValidation)
	}
	if !s.GatewayEnabled && !s.BankTransferEnabled {
		return nil, fmt.Errorf("%w: at least one payment method must stay enabled", domainErrors.ErrValidation)
	}
	s.AdminEmail = strings.TrimSpace(s.AdminEmail)
	if s.AdminEmail != "" {
		if _, err := mail.ParseAddress(s.AdminEmail); err != nil {
			return nil, fmt.Errorf("%w: invalid admin email", domainErrors.ErrValidation)
		}
	}
	s.ShippingFlatRate = s.ShippingFlatRate.Round(2)
	s.FreeShippingThreshold = s.FreeShippingThreshold.Round(2)
	if err := u.repo.Save(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
