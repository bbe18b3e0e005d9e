package models

import "strings"

// Party is a consignor, consignee or receiver contact block.
type Party struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Mobile  string `json:"mobile" bson:"mobile" validate:"required"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty" bson:"gstin,omitempty"`
}

func (p Party) IsZero() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Mobile) == ""
}

// Key identifies a party inside a per-destination cache.
func (p Party) Key() string {
	return strings.ToLower(strings.TrimSpace(p.Name)) + "|" + strings.TrimSpace(p.Mobile)
}
