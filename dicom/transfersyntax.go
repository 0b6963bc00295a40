package dicom

import (
	"encoding/binary"
	"fmt"
)

// TransferSyntax describes a negotiated binary encoding for a dataset and the
// capabilities of its pixel data representation. For a native syntax the pixel
// data length is fully determined by the image geometry; for an encapsulated
// syntax it is not.
type TransferSyntax struct {
	UID  string
	Name string

	// Dataset encoding.
	Implicit  bool
	BigEndian bool
	Deflated  bool

	// Pixel data capabilities.
	Encapsulated  bool
	Lossy         bool
	EncodesSigned bool
	MaxBitsStored int    // 0 means no limit
	NeedsYBR      bool   // compressed stream carries luma/chroma samples
	PlanarDefault uint16 // planar configuration implied for 3-sample images

	// UID of the related family member to substitute when this syntax cannot
	// carry the image's bit depth or signedness. Empty means fall back to
	// the native Explicit VR Little Endian encoding.
	FallbackUID string
}

// ByteOrder returns the byte order of the dataset encoding.
func (ts *TransferSyntax) ByteOrder() binary.ByteOrder {
	if ts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Fallback returns the syntax to downgrade to when this one cannot carry the
// image, or nil when no further downgrade exists and native must be used.
func (ts *TransferSyntax) Fallback() *TransferSyntax {
	if ts.FallbackUID == "" {
		return nil
	}
	fb, err := Lookup(ts.FallbackUID)
	if err != nil {
		return nil
	}
	return fb
}

// CanCarry reports whether pixel samples with the given stored bit depth and
// signedness are representable in this transfer syntax.
func (ts *TransferSyntax) CanCarry(bitsStored int, signed bool) bool {
	if ts.MaxBitsStored > 0 && bitsStored > ts.MaxBitsStored {
		return false
	}
	if signed && ts.Encapsulated && !ts.EncodesSigned {
		return false
	}
	return true
}

// Transfer syntax UIDs from DICOM PS3.6 chapter A.
const (
	ImplicitVRLittleEndianUID         = "1.2.840.10008.1.2"
	ExplicitVRLittleEndianUID         = "1.2.840.10008.1.2.1"
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	ExplicitVRBigEndianUID            = "1.2.840.10008.1.2.2"
	JPEGBaseline8BitUID               = "1.2.840.10008.1.2.4.50"
	JPEGExtended12BitUID              = "1.2.840.10008.1.2.4.51"
	JPEGLosslessUID                   = "1.2.840.10008.1.2.4.57"
	JPEGLosslessSV1UID                = "1.2.840.10008.1.2.4.70"
	JPEGLSLosslessUID                 = "1.2.840.10008.1.2.4.80"
	JPEGLSNearLosslessUID             = "1.2.840.10008.1.2.4.81"
	JPEG2000LosslessUID               = "1.2.840.10008.1.2.4.90"
	JPEG2000UID                       = "1.2.840.10008.1.2.4.91"
	RLELosslessUID                    = "1.2.840.10008.1.2.5"
)

var (
	// ImplicitVRLittleEndian is the default DICOM transfer syntax.
	ImplicitVRLittleEndian = &TransferSyntax{
		UID:      ImplicitVRLittleEndianUID,
		Name:     "Implicit VR Little Endian",
		Implicit: true,
	}

	// ExplicitVRLittleEndian is the native uncompressed encoding this engine
	// falls back to when no compressed family member can carry an image.
	ExplicitVRLittleEndian = &TransferSyntax{
		UID:  ExplicitVRLittleEndianUID,
		Name: "Explicit VR Little Endian",
	}

	// DeflatedExplicitVRLittleEndian compresses the whole dataset after the
	// file meta group through a raw deflate stream. Pixel data stays native.
	DeflatedExplicitVRLittleEndian = &TransferSyntax{
		UID:      DeflatedExplicitVRLittleEndianUID,
		Name:     "Deflated Explicit VR Little Endian",
		Deflated: true,
	}

	// ExplicitVRBigEndian is retired; supported for reading only.
	ExplicitVRBigEndian = &TransferSyntax{
		UID:       ExplicitVRBigEndianUID,
		Name:      "Explicit VR Big Endian",
		BigEndian: true,
	}

	// JPEGBaseline8Bit is JPEG Baseline (Process 1), lossy, 8-bit unsigned.
	JPEGBaseline8Bit = &TransferSyntax{
		UID:           JPEGBaseline8BitUID,
		Name:          "JPEG Baseline (Process 1)",
		Encapsulated:  true,
		Lossy:         true,
		MaxBitsStored: 8,
		NeedsYBR:      true,
		FallbackUID:   RLELosslessUID,
	}

	// JPEGExtended12Bit is JPEG Extended (Process 2 & 4), lossy, up to 12 bits.
	JPEGExtended12Bit = &TransferSyntax{
		UID:           JPEGExtended12BitUID,
		Name:          "JPEG Extended (Process 2 & 4)",
		Encapsulated:  true,
		Lossy:         true,
		MaxBitsStored: 12,
		NeedsYBR:      true,
		FallbackUID:   RLELosslessUID,
	}

	// JPEGLossless is JPEG Lossless, Non-Hierarchical (Process 14).
	JPEGLossless = &TransferSyntax{
		UID:           JPEGLosslessUID,
		Name:          "JPEG Lossless, Non-Hierarchical (Process 14)",
		Encapsulated:  true,
		EncodesSigned: true,
		MaxBitsStored: 16,
	}

	// JPEGLosslessSV1 is JPEG Lossless Process 14, Selection Value 1.
	JPEGLosslessSV1 = &TransferSyntax{
		UID:           JPEGLosslessSV1UID,
		Name:          "JPEG Lossless, Non-Hierarchical, First-Order Prediction",
		Encapsulated:  true,
		EncodesSigned: true,
		MaxBitsStored: 16,
	}

	// JPEGLSLossless is JPEG-LS Lossless.
	JPEGLSLossless = &TransferSyntax{
		UID:           JPEGLSLosslessUID,
		Name:          "JPEG-LS Lossless",
		Encapsulated:  true,
		EncodesSigned: true,
		MaxBitsStored: 16,
	}

	// JPEGLSNearLossless is JPEG-LS Lossy (Near-Lossless).
	JPEGLSNearLossless = &TransferSyntax{
		UID:           JPEGLSNearLosslessUID,
		Name:          "JPEG-LS Lossy (Near-Lossless)",
		Encapsulated:  true,
		Lossy:         true,
		EncodesSigned: true,
		MaxBitsStored: 16,
		FallbackUID:   JPEGLSLosslessUID,
	}

	// JPEG2000Lossless is JPEG 2000 Image Compression (Lossless Only).
	JPEG2000Lossless = &TransferSyntax{
		UID:           JPEG2000LosslessUID,
		Name:          "JPEG 2000 Image Compression (Lossless Only)",
		Encapsulated:  true,
		EncodesSigned: true,
		MaxBitsStored: 16,
	}

	// JPEG2000 is JPEG 2000 Image Compression (lossy allowed).
	JPEG2000 = &TransferSyntax{
		UID:           JPEG2000UID,
		Name:          "JPEG 2000 Image Compression",
		Encapsulated:  true,
		Lossy:         true,
		EncodesSigned: true,
		MaxBitsStored: 16,
		FallbackUID:   JPEG2000LosslessUID,
	}

	// RLELossless is DICOM RLE (PackBits) compression, PS3.5 Annex G.
	RLELossless = &TransferSyntax{
		UID:           RLELosslessUID,
		Name:          "RLE Lossless",
		Encapsulated:  true,
		EncodesSigned: true,
		MaxBitsStored: 16,
		PlanarDefault: 1,
	}
)

var syntaxes = map[string]*TransferSyntax{
	ImplicitVRLittleEndianUID:         ImplicitVRLittleEndian,
	ExplicitVRLittleEndianUID:         ExplicitVRLittleEndian,
	DeflatedExplicitVRLittleEndianUID: DeflatedExplicitVRLittleEndian,
	ExplicitVRBigEndianUID:            ExplicitVRBigEndian,
	JPEGBaseline8BitUID:               JPEGBaseline8Bit,
	JPEGExtended12BitUID:              JPEGExtended12Bit,
	JPEGLosslessUID:                   JPEGLossless,
	JPEGLosslessSV1UID:                JPEGLosslessSV1,
	JPEGLSLosslessUID:                 JPEGLSLossless,
	JPEGLSNearLosslessUID:             JPEGLSNearLossless,
	JPEG2000LosslessUID:               JPEG2000Lossless,
	JPEG2000UID:                       JPEG2000,
	RLELosslessUID:                    RLELossless,
}

// Lookup resolves a transfer syntax UID to its capability descriptor.
func Lookup(uid string) (*TransferSyntax, error) {
	ts, ok := syntaxes[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransferSyntax, uid)
	}
	return ts, nil
}
