// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeCountOutOfRange Code = "COUNT_OUT_OF_RANGE"
	CodeInvalidKind     Code = "INVALID_KIND"

	// Storage errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"

	// Catalog errors
	CodeCatalogInvalid Code = "CATALOG_INVALID"
)

// IsInvalidArgument reports whether the code is a caller input failure.
func (c Code) IsInvalidArgument() bool {
	switch c {
	case CodeInvalidArgument, CodeCountOutOfRange, CodeInvalidKind, CodeCatalogInvalid:
		return true
	default:
		return false
	}
}
