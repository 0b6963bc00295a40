package codec

// Codec encodes and decodes single frames of pixel data for one encapsulated
// transfer syntax. Implementations register themselves with the Registry and
// are resolved once when a pipeline is constructed.
type Codec interface {
	// Encode compresses one frame of interleaved pixel samples.
	Encode(params EncodeParams) ([]byte, error)

	// Decode decompresses one frame into interleaved pixel samples.
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the DICOM transfer syntax UID this codec serves.
	UID() string

	// Name returns a human-readable name.
	Name() string
}

// EncodeParams describes the raster handed to an encoder. Samples are
// interleaved (R1G1B1 R2G2B2 ...) regardless of the planar configuration the
// encoded form advertises; codecs that store planes reorganize internally.
type EncodeParams struct {
	PixelData     []byte  // one frame of raw samples, little endian
	Width         int     // columns
	Height        int     // rows
	Components    int     // samples per pixel (1 or 3)
	BitsAllocated int     // storage width per sample (8 or 16)
	BitsStored    int     // effective precision per sample
	Signed        bool    // two's complement samples
	Options       Options // codec-specific tunables, nil for defaults
}

// FrameLength is the byte length of the raster described by the parameters.
func (p EncodeParams) FrameLength() int {
	return p.Width * p.Height * p.Components * (p.BitsAllocated / 8)
}

// Options is an interface for codec-specific encoding options.
type Options interface {
	// Validate checks if the options are valid.
	Validate() error
}

// DecodeResult contains one decoded frame.
type DecodeResult struct {
	PixelData     []byte // interleaved raw samples, little endian
	Width         int
	Height        int
	Components    int
	BitsAllocated int
}

// BaseOptions provides tunables shared by all codecs.
type BaseOptions struct {
	// Quality factor for lossy codecs (1-100, higher is better).
	// Not used for lossless codecs.
	Quality int

	// NearLossless error bound for near-lossless codecs.
	// 0 = lossless, >0 = allowed per-sample error.
	NearLossless int
}

// Validate validates base options.
func (o *BaseOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return ErrInvalidQuality
	}
	if o.NearLossless < 0 {
		return ErrInvalidParameter
	}
	return nil
}
