// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidPage  = errors.New("invalid page")
	ErrInvalidTrack = errors.New("invalid track type")
	ErrInvalidIndex = errors.New("invalid index")
	ErrNoPaths      = errors.New("no paths given")
)
