// Field validation for product payloads.
//
// Two independent rule sets, both pure functions over the decoded payload:
// the creation rule requires all five fields present, the update rule
// treats every field as optional. Payload fields are pointer-typed so a
// field that was omitted is distinguishable from one carrying a legitimate
// zero value: price 0 and inStock false are valid, while text fields must
// be non-empty whenever they appear. Wrong-typed fields never reach these
// checks: they fail JSON decoding first and map to the same error kind.
package handlers

import (
	"errors"
	"strings"
)

// CreateProductRequest is the JSON payload for creating a product.
// All five fields are required.
type CreateProductRequest struct {
	Name        *string  `json:"name"        example:"Laptop"`
	Description *string  `json:"description" example:"High-performance laptop with 16GB RAM"`
	Price       *float64 `json:"price"       example:"1200"`
	Category    *string  `json:"category"    example:"electronics"`
	InStock     *bool    `json:"inStock"     example:"true"`
}

// UpdateProductRequest is the JSON payload for a partial update.
// Every field is optional; a payload with zero fields is a valid no-op.
type UpdateProductRequest struct {
	Name        *string  `json:"name"        example:"Laptop"`
	Description *string  `json:"description" example:"Refreshed 2024 model"`
	Price       *float64 `json:"price"       example:"999"`
	Category    *string  `json:"category"    example:"electronics"`
	InStock     *bool    `json:"inStock"     example:"false"`
}

// Validate applies the creation rule set: every field must be present, and
// text fields must be non-empty. The first violation is reported.
func (r CreateProductRequest) Validate() error {
	if err := requireText("name", r.Name); err != nil {
		return err
	}
	if err := requireText("description", r.Description); err != nil {
		return err
	}
	if r.Price == nil {
		return errors.New("price is required and must be a number")
	}
	if err := requireText("category", r.Category); err != nil {
		return err
	}
	if r.InStock == nil {
		return errors.New("inStock is required and must be a boolean")
	}
	return nil
}

// Validate applies the update rule set: present text fields must be
// non-empty, absent fields are ignored.
func (r UpdateProductRequest) Validate() error {
	if err := optionalText("name", r.Name); err != nil {
		return err
	}
	if err := optionalText("description", r.Description); err != nil {
		return err
	}
	return optionalText("category", r.Category)
}

// requireText rejects a missing or empty text field.
func requireText(field string, v *string) error {
	if v == nil {
		return errors.New(field + " is required and must be a string")
	}
	if strings.TrimSpace(*v) == "" {
		return errors.New(field + " must not be empty")
	}
	return nil
}

// optionalText rejects an empty text field but accepts an absent one.
func optionalText(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return errors.New(field + " must not be empty")
	}
	return nil
}
