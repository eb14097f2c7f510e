package model

import (
	"strings"
	"time"
)

type Customer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Phone        *string   `json:"phone,omitempty" gorm:"size:30"`
	Address      *string   `json:"address,omitempty" gorm:"size:300"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}

// CustomerPatch carries the optional fields of a customer update.
// Name and Email are identity fields and may not change once the customer
// has orders.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Trimmed returns the patch with surrounding whitespace removed from the
// identity fields.
func (p CustomerPatch) Trimmed() CustomerPatch {
	p.Name = trimmed(p.Name)
	p.Email = trimmed(p.Email)
	return p
}

func (p CustomerPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("customer name must not be empty")
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return invalid("customer email must not be empty")
	}
	return nil
}

// ChangesIdentity reports whether applying the patch would alter the
// customer's stored name or email.
func (p CustomerPatch) ChangesIdentity(current *Customer) bool {
	if p.Name != nil && *p.Name != current.Name {
		return true
	}
	return p.Email != nil && *p.Email != current.Email
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (p CustomerPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	return cols
}
