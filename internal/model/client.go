package model

import (
	"fmt"
	"net/mail"
	"strings"
)

// Client is a single registry record.
type Client struct {
	// ID is an optional stable handle assigned on create. Store operations
	// still address records by position.
	ID string `json:"id,omitempty"`

	// Name is the client display name
	Name string `json:"name"`

	// Email is the contact address
	Email string `json:"email"`

	// Phone is the contact number, kept as free text
	Phone string `json:"phone"`

	// City is where the client lives
	City string `json:"city"`
}

// Field names as they appear in the persisted JSON and in validation errors.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldCity  = "city"
)

// Fields lists the editable fields in form order.
var Fields = []string{FieldName, FieldEmail, FieldPhone, FieldCity}

// Get returns the value of a field by name.
func (c Client) Get(field string) string {
	switch field {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldCity:
		return c.City
	}

	return ""
}

// Set assigns a field by name. Unknown fields are ignored.
func (c *Client) Set(field, value string) {
	switch field {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldCity:
		c.City = value
	}
}

// FieldError describes one invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidationError is returned when a client fails the required/format checks.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}

	return "invalid client: " + strings.Join(parts, ", ")
}

// Has reports whether the given field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

// Validate checks that every field is filled in and that the email parses as
// a bare address.
func Validate(c Client) error {
	var errs []FieldError

	for _, field := range Fields {
		if strings.TrimSpace(c.Get(field)) == "" {
			errs = append(errs, FieldError{Field: field, Reason: "is required"})
		}
	}

	if email := strings.TrimSpace(c.Email); email != "" && !validEmail(email) {
		errs = append(errs, FieldError{Field: FieldEmail, Reason: "is not a valid address"})
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	// Reject "Name <a@b>" forms, an input field only accepts the address.
	return addr.Address == s
}
