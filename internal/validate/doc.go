// Package validate checks tool and command arguments before they reach the
// host application.
//
// The host's scripting API fails silently on most bad input (a null handle,
// or False), which gives the caller nothing to act on. Checking names,
// enum values and index ranges up front turns those into messages that say
// what was wrong and what the valid range is.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go.
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidIndex) {
//	    // report the valid range to the caller
//	}
package validate
