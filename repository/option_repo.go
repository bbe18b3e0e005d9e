package repository

import (
	"context"

	"lrbooking/models"
)

// OptionStore is a key -> list map with idempotent add-if-absent writes.
// It backs dropdown lists and per-field autocomplete history.
type OptionStore interface {
	List(ctx context.Context, key string) ([]string, error)
	Add(ctx context.Context, key, value string) error
}

// PartyCache remembers consignees and the delivery address seen per destination.
type PartyCache interface {
	Consignees(ctx context.Context, destination string) ([]models.Party, error)
	AddConsignee(ctx context.Context, destination string, p models.Party) error
	// Address returns "" when nothing is cached.
	Address(ctx context.Context, destination string) (string, error)
	AddAddress(ctx context.Context, destination, address string) error
}

// HistoryKey namespaces autocomplete history inside an OptionStore.
func HistoryKey(field string) string {
	return "history:" + field
}
