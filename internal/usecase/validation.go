package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// ValidateAddress requires every address field to be filled in.
func ValidateAddress(kind string, a model.Address) error {
	fields := []struct {
		name  string
		value string
	}{
		{"addressLine", a.AddressLine},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s address %s is required", domainErrors.ErrValidation, kind, f.name)
		}
	}
	return nil
}

// ValidateItems checks checkout lines before any catalog lookup.
func ValidateItems(items []model.CheckoutItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order has no items", domainErrors.ErrValidation)
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductRef) == "" {
			return fmt.Errorf("%w: item %d has no product", domainErrors.ErrValidation, i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", domainErrors.ErrValidation, i+1)
		}
		switch item.Kind {
		case "", model.ItemKindRegular, model.ItemKindSample:
		default:
			return fmt.Errorf("%w: item %d has unknown kind %q", domainErrors.ErrValidation, i+1, item.Kind)
		}
	}
	return nil
}
