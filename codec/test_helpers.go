package codec

import (
	"encoding/binary"
	"fmt"
)

// TestCodec is a synthetic codec for pipeline tests. Encode prefixes the
// raster with a small geometry header; Decode returns the stored samples,
// optionally shifted by DecodeBias to simulate a lossy codec with a known
// per-sample reconstruction error.
type TestCodec struct {
	SyntaxUID string
	CodecName string

	// DecodeBias is added to every decoded sample. Zero means the codec
	// round-trips losslessly.
	DecodeBias int
}

var _ Codec = (*TestCodec)(nil)

const testCodecMagic = "TCOD"

// Encode stores the raster verbatim behind a geometry header.
func (c *TestCodec) Encode(params EncodeParams) ([]byte, error) {
	if params.BitsAllocated != 8 && params.BitsAllocated != 16 {
		return nil, ErrUnsupportedImage
	}
	out := make([]byte, 0, 20+len(params.PixelData))
	out = append(out, testCodecMagic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(params.Width))
	out = binary.LittleEndian.AppendUint32(out, uint32(params.Height))
	out = binary.LittleEndian.AppendUint32(out, uint32(params.Components))
	out = binary.LittleEndian.AppendUint32(out, uint32(params.BitsAllocated))
	return append(out, params.PixelData...), nil
}

// Decode returns the stored raster, applying DecodeBias to every sample.
func (c *TestCodec) Decode(data []byte) (*DecodeResult, error) {
	if len(data) < 20 || string(data[:4]) != testCodecMagic {
		return nil, fmt.Errorf("%w: missing test codec header", ErrCorruptData)
	}
	res := &DecodeResult{
		Width:         int(binary.LittleEndian.Uint32(data[4:])),
		Height:        int(binary.LittleEndian.Uint32(data[8:])),
		Components:    int(binary.LittleEndian.Uint32(data[12:])),
		BitsAllocated: int(binary.LittleEndian.Uint32(data[16:])),
	}
	pixels := make([]byte, len(data)-20)
	copy(pixels, data[20:])

	if c.DecodeBias != 0 {
		switch res.BitsAllocated {
		case 8:
			for i := range pixels {
				pixels[i] = byte(int(pixels[i]) + c.DecodeBias)
			}
		case 16:
			for i := 0; i+1 < len(pixels); i += 2 {
				v := binary.LittleEndian.Uint16(pixels[i:])
				binary.LittleEndian.PutUint16(pixels[i:], uint16(int(v)+c.DecodeBias))
			}
		}
	}
	res.PixelData = pixels
	return res, nil
}

// UID returns the transfer syntax UID the codec was registered for.
func (c *TestCodec) UID() string {
	return c.SyntaxUID
}

// Name returns the codec name.
func (c *TestCodec) Name() string {
	if c.CodecName != "" {
		return c.CodecName
	}
	return "test-codec"
}
