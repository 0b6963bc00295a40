package rle

import (
	"github.com/cocosip/go-dicom-transcode/codec"
	"github.com/cocosip/go-dicom-transcode/dicom"
)

// Codec implements the codec.Codec interface for RLE Lossless.
// Transfer Syntax UID: 1.2.840.10008.1.2.5
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// NewCodec creates a new RLE Lossless codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode encodes one frame using DICOM RLE.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.Components != 1 && params.Components != 3 {
		return nil, codec.ErrUnsupportedImage
	}
	return Encode(params.PixelData, params.Width, params.Height, params.Components, params.BitsAllocated)
}

// Decode decodes one RLE frame. Width and height are not recorded in the RLE
// stream, so the result reports them as zero and the caller sizes the raster
// from its image descriptor.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	pixels, components, bitsAllocated, err := Decode(data, 0)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:     pixels,
		Components:    components,
		BitsAllocated: bitsAllocated,
	}, nil
}

// UID returns the DICOM transfer syntax UID for RLE Lossless.
func (c *Codec) UID() string {
	return dicom.RLELosslessUID
}

// Name returns the human-readable name.
func (c *Codec) Name() string {
	return "rle-lossless"
}

func init() {
	codec.Register(NewCodec())
}
