package dicom

import "errors"

var (
	// ErrUnknownTransferSyntax is returned when a transfer syntax UID is not
	// in the capability table.
	ErrUnknownTransferSyntax = errors.New("unknown transfer syntax")

	// ErrNotDICOM is returned when the input stream does not start with a
	// DICOM preamble and "DICM" signature.
	ErrNotDICOM = errors.New("not a DICOM stream")

	// ErrMissingTransferSyntax is returned when the file meta group carries
	// no Transfer Syntax UID element.
	ErrMissingTransferSyntax = errors.New("file meta has no transfer syntax UID")

	// ErrPixelDataPending is returned by NextElement while a pixel data value
	// announced earlier has not been fully consumed.
	ErrPixelDataPending = errors.New("pixel data value not consumed")

	// ErrFragmentTooLarge is returned when a single fragment or frame would
	// exceed the configured buffering cap.
	ErrFragmentTooLarge = errors.New("fragment exceeds maximum frame size")
)
