// Package apperror defines the error taxonomy every layer reports through.
// The server's error handler maps these onto HTTP status codes and the
// {success:false, message} envelope; nothing else should leak to clients.
package apperror

import "fmt"

// ValidationError means the caller sent bad or missing input. Maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// VendorError means the payment processor or media host rejected a call.
// Maps to 500, except webhook signature failures which the handler maps to 400.
type VendorError struct {
	Vendor  string
	Message string
	Err     error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Vendor, e.Message)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

func Vendor(vendor, message string, err error) *VendorError {
	return &VendorError{Vendor: vendor, Message: message, Err: err}
}

// NotFoundError means the referenced record or asset does not exist. Maps to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
