// errors.go defines the guard failures reported by the host bridge.
//
// The bridge answers a failed guard with a short error code; codeErrors maps
// each code back to a sentinel so callers can use errors.Is without knowing
// anything about the wire format.

package resolve

import (
	"errors"
	"fmt"
)

var (
	ErrNotConnected   = errors.New("not connected to DaVinci Resolve")
	ErrNoProject      = errors.New("no project is currently open")
	ErrNoTimeline     = errors.New("no timeline is currently open")
	ErrNoMediaPool    = errors.New("no media pool available")
	ErrNoFolder       = errors.New("no current folder available")
	ErrNoMediaStorage = errors.New("no media storage available")
	ErrNoFusion       = errors.New("fusion is not available")
	ErrNoComp         = errors.New("no active fusion composition")
	ErrBridgeClosed   = errors.New("bridge closed")
)

var codeErrors = map[string]error{
	"not_connected":    ErrNotConnected,
	"no_project":       ErrNoProject,
	"no_timeline":      ErrNoTimeline,
	"no_media_pool":    ErrNoMediaPool,
	"no_folder":        ErrNoFolder,
	"no_media_storage": ErrNoMediaStorage,
	"no_fusion":        ErrNoFusion,
	"no_comp":          ErrNoComp,
}

// BridgeError is a failure inside the bridge that is not a guard, such as
// an exception raised by the vendor module or by user code.
type BridgeError struct {
	Op      string
	Message string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// wireError is the error object of a bridge response.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// toError converts a wire error for op into a sentinel or *BridgeError.
func (w *wireError) toError(op string) error {
	if w == nil {
		return nil
	}
	if err, ok := codeErrors[w.Code]; ok {
		return err
	}
	return &BridgeError{Op: op, Message: w.Message}
}
