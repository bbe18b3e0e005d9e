package models

import "time"

type MobileEntry struct {
	Number string `json:"number" bson:"number"`
	Label  string `json:"label" bson:"label"`
}

// CompanySettings is the branding printed on invoices and reports.
type CompanySettings struct {
	CompanyName string        `json:"companyName" bson:"companyName" validate:"required"`
	Address     string        `json:"address" bson:"address"`
	City        string        `json:"city" bson:"city"`
	State       string        `json:"state" bson:"state"`
	Pincode     string        `json:"pincode" bson:"pincode"`
	GSTIN       string        `json:"gstin" bson:"gstin"`
	Footnote    string        `json:"footnote" bson:"footnote"`
	LogoURL     string        `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	Mobile      []MobileEntry `json:"mobile" bson:"mobile"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Contacts formats the mobile list as "number(label), ...".
func (s *CompanySettings) Contacts() string {
	if s == nil {
		return ""
	}
	contacts := ""
	for _, m := range s.Mobile {
		if m.Label == "" {
			contacts += m.Number + ", "
			continue
		}
		contacts += m.Number + "(" + m.Label + "), "
	}
	if len(contacts) > 2 {
		contacts = contacts[:len(contacts)-2]
	}
	return contacts
}
