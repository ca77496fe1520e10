// Package validation validates structs with go-playground/validator tags and
// converts the results into application errors with per-field details.
package validation
