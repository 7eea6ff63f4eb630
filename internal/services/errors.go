// Package services defines the business logic for the product catalog.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages and HTTP status codes is performed
// at the handler layer.
package services

import "errors"

// ErrProductNotFound indicates that the referenced product id does not
// exist in the collection at lookup time.
var ErrProductNotFound = errors.New("product not found")
