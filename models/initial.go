package models

import "time"

type MobileEntry struct {
	Number string `json:"number" bson:"number" db:"number" validate:"required"`
	Label  string `json:"label" bson:"label" db:"label"`
}

// InitialSetup is the company profile printed on report exports.
type InitialSetup struct {
	ID          int64         `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyName string        `json:"company_name" bson:"name" db:"company_name" validate:"required"`
	Address     string        `json:"address" bson:"address" db:"address"`
	City        string        `json:"city" bson:"city" db:"city"`
	Province    string        `json:"province" bson:"province" db:"province"`
	Postcode    string        `json:"postcode" bson:"postcode" db:"postcode"`
	NTN         string        `json:"ntn" bson:"ntn" db:"ntn"`
	Footnote    string        `json:"footnote" bson:"footnote" db:"footnote"`
	Mobile      []MobileEntry `json:"mobile" bson:"mobile" db:"mobile" validate:"dive"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at" db:"created_at"`
}

// FullAddress joins the non-empty address parts with commas.
func (s *InitialSetup) FullAddress() string {
	if s == nil {
		return ""
	}
	out := ""
	for _, part := range []string{s.Address, s.City, s.Province, s.Postcode} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}

// Contacts formats the mobile numbers as "number(label), ...".
func (s *InitialSetup) Contacts() string {
	if s == nil {
		return ""
	}
	contacts := ""
	for _, m := range s.Mobile {
		contacts += m.Number + "(" + m.Label + "), "
	}
	if len(contacts) > 2 {
		contacts = contacts[:len(contacts)-2]
	}
	return contacts
}
