// Package baseline provides the JPEG Baseline (Process 1) codec, backed by
// the standard library JPEG implementation. Baseline is lossy and limited to
// 8-bit unsigned samples.
package baseline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/cocosip/go-dicom-transcode/codec"
	"github.com/cocosip/go-dicom-transcode/dicom"
)

const defaultQuality = 85

// Codec implements the codec.Codec interface for JPEG Baseline.
// Transfer Syntax UID: 1.2.840.10008.1.2.4.50
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// NewCodec creates a new JPEG Baseline codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode encodes one frame of 8-bit grayscale or RGB samples.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.BitsAllocated != 8 || params.Signed {
		return nil, fmt.Errorf("%w: baseline requires 8-bit unsigned samples", codec.ErrUnsupportedImage)
	}

	quality := defaultQuality
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		switch opts := params.Options.(type) {
		case *Options:
			if opts.Quality > 0 {
				quality = opts.Quality
			}
		case *codec.BaseOptions:
			if opts.Quality > 0 {
				quality = opts.Quality
			}
		default:
			return nil, codec.ErrInvalidParameter
		}
	}

	img, err := toImage(params)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decodes a JPEG Baseline frame into interleaved 8-bit samples.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrCorruptData, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		pixels := make([]byte, width*height)
		for y := 0; y < height; y++ {
			copy(pixels[y*width:], gray.Pix[y*gray.Stride:y*gray.Stride+width])
		}
		return &codec.DecodeResult{
			PixelData:     pixels,
			Width:         width,
			Height:        height,
			Components:    1,
			BitsAllocated: 8,
		}, nil
	}

	pixels := make([]byte, width*height*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			i += 3
		}
	}
	return &codec.DecodeResult{
		PixelData:     pixels,
		Width:         width,
		Height:        height,
		Components:    3,
		BitsAllocated: 8,
	}, nil
}

// UID returns the DICOM transfer syntax UID for JPEG Baseline.
func (c *Codec) UID() string {
	return dicom.JPEGBaseline8BitUID
}

// Name returns the human-readable name.
func (c *Codec) Name() string {
	return "jpeg-baseline"
}

func toImage(params codec.EncodeParams) (image.Image, error) {
	want := params.Width * params.Height * params.Components
	if len(params.PixelData) < want {
		return nil, fmt.Errorf("%w: raster has %d bytes, need %d", codec.ErrInvalidParameter, len(params.PixelData), want)
	}

	switch params.Components {
	case 1:
		img := image.NewGray(image.Rect(0, 0, params.Width, params.Height))
		for y := 0; y < params.Height; y++ {
			copy(img.Pix[y*img.Stride:], params.PixelData[y*params.Width:(y+1)*params.Width])
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
		for y := 0; y < params.Height; y++ {
			for x := 0; x < params.Width; x++ {
				src := (y*params.Width + x) * 3
				dst := y*img.Stride + x*4
				img.Pix[dst] = params.PixelData[src]
				img.Pix[dst+1] = params.PixelData[src+1]
				img.Pix[dst+2] = params.PixelData[src+2]
				img.Pix[dst+3] = 0xFF
			}
		}
		return img, nil
	}
	return nil, codec.ErrUnsupportedImage
}

// Options contains encoding options for JPEG Baseline.
type Options struct {
	codec.BaseOptions
}

// Validate validates the options.
func (o *Options) Validate() error {
	return o.BaseOptions.Validate()
}

func init() {
	codec.Register(NewCodec())
}
