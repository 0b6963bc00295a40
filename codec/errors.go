package codec

import "errors"

var (
	// ErrCodecNotFound is returned when no codec is registered for a
	// transfer syntax UID or name.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidQuality is returned when the quality parameter is out of range.
	ErrInvalidQuality = errors.New("invalid quality (must be 1-100)")

	// ErrUnsupportedImage is returned when a codec cannot represent the
	// raster it was given (bit depth, component count, signedness).
	ErrUnsupportedImage = errors.New("unsupported image for codec")

	// ErrCorruptData is returned when compressed input cannot be decoded.
	ErrCorruptData = errors.New("corrupt compressed data")
)
