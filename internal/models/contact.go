package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents one canonical business contact record. All attributes
// except the identifier are optional; imports normalize missing values to
// empty strings.
type Contact struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Company       string    `json:"company"`
	Title         string    `json:"title"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	Industry      string    `json:"industry"`
	EmployeeRange string    `json:"employee_range"`
	Notes         string    `json:"notes"`
	UTMSource     string    `json:"utm_source"`
	UTMMedium     string    `json:"utm_medium"`
	UTMCampaign   string    `json:"utm_campaign"`
	UTMContent    string    `json:"utm_content"`
	UTMTerm       string    `json:"utm_term"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ContactFields lists the exportable field names in their canonical order.
var ContactFields = []string{
	"email", "first_name", "last_name", "company", "title", "phone",
	"address", "city", "state", "postal_code", "country", "industry",
	"employee_range", "notes", "utm_source", "utm_medium", "utm_campaign",
	"utm_content", "utm_term",
}

// Field returns the value of a named contact field, or "" for unknown names.
func (c *Contact) Field(name string) string {
	switch name {
	case "email":
		return c.Email
	case "first_name":
		return c.FirstName
	case "last_name":
		return c.LastName
	case "company":
		return c.Company
	case "title":
		return c.Title
	case "phone":
		return c.Phone
	case "address":
		return c.Address
	case "city":
		return c.City
	case "state":
		return c.State
	case "postal_code":
		return c.PostalCode
	case "country":
		return c.Country
	case "industry":
		return c.Industry
	case "employee_range":
		return c.EmployeeRange
	case "notes":
		return c.Notes
	case "utm_source":
		return c.UTMSource
	case "utm_medium":
		return c.UTMMedium
	case "utm_campaign":
		return c.UTMCampaign
	case "utm_content":
		return c.UTMContent
	case "utm_term":
		return c.UTMTerm
	}
	return ""
}

// IsKnownField reports whether name is a valid contact field name.
func IsKnownField(name string) bool {
	for _, f := range ContactFields {
		if f == name {
			return true
		}
	}
	return false
}
