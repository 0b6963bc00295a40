package transcode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedTransferSyntax is a configuration error: the source or
	// destination transfer syntax has no registered codec or is unknown.
	// It is raised before any frame is touched.
	ErrUnsupportedTransferSyntax = errors.New("unsupported transfer syntax")

	// ErrFrameCountMismatch is returned when the encapsulated fragment
	// layout cannot be mapped onto the declared frame count.
	ErrFrameCountMismatch = errors.New("fragment count does not match frame count")
)

// GeometryError is a fatal error raised at descriptor derivation when the
// dataset's pixel geometry attributes are malformed.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "invalid pixel geometry: " + e.Reason
}

// FidelityError is a fatal error raised when the verifier observes a
// reconstruction difference above the configured budget. Output produced up
// to this point must not be treated as usable.
type FidelityError struct {
	Frame    int
	Observed int
	Budget   int
}

func (e *FidelityError) Error() string {
	return fmt.Sprintf("frame %d: reconstruction error %d exceeds budget %d", e.Frame, e.Observed, e.Budget)
}
