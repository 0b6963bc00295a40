package rle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cocosip/go-dicom-transcode/codec"
)

func encodeParams(pixels []byte, width, height, components, bits int) codec.EncodeParams {
	return codec.EncodeParams{
		PixelData:     pixels,
		Width:         width,
		Height:        height,
		Components:    components,
		BitsAllocated: bits,
		BitsStored:    bits,
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		components    int
		bitsAllocated int
	}{
		{"gray8", 16, 16, 1, 8},
		{"gray16", 16, 16, 1, 16},
		{"gray16 odd plane", 5, 5, 1, 16},
		{"rgb8", 8, 8, 3, 8},
		{"rgb16", 8, 8, 3, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.width * tt.height * tt.components * tt.bitsAllocated / 8
			pixels := make([]byte, n)
			for i := range pixels {
				// Mix of runs and literals.
				if i%7 < 4 {
					pixels[i] = 0x42
				} else {
					pixels[i] = byte(i * 31)
				}
			}

			frame, err := Encode(pixels, tt.width, tt.height, tt.components, tt.bitsAllocated)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(frame)%2 != 0 {
				t.Errorf("encoded frame length %d is odd", len(frame))
			}

			got, components, bitsAllocated, err := Decode(frame, tt.width*tt.height)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if components != tt.components || bitsAllocated != tt.bitsAllocated {
				t.Fatalf("layout = %d components x %d bits, want %d x %d",
					components, bitsAllocated, tt.components, tt.bitsAllocated)
			}
			if !bytes.Equal(got, pixels) {
				t.Fatal("round trip changed pixel data")
			}

			// Decoding without a known pixel count must also recover the
			// exact plane, relying on the no-op padding.
			got, _, _, err = Decode(frame, 0)
			if err != nil {
				t.Fatalf("Decode without size: %v", err)
			}
			if !bytes.Equal(got, pixels) {
				t.Fatal("sizeless round trip changed pixel data")
			}
		})
	}
}

func TestHeaderLayout(t *testing.T) {
	pixels := make([]byte, 4*4*2)
	frame, err := Encode(pixels, 4, 4, 1, 16)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if binary.LittleEndian.Uint32(frame) != 2 {
		t.Errorf("segment count = %d, want 2", binary.LittleEndian.Uint32(frame))
	}
	if off := binary.LittleEndian.Uint32(frame[4:]); off != headerSize {
		t.Errorf("first segment offset = %d, want %d", off, headerSize)
	}
}

func TestLongRuns(t *testing.T) {
	// A run longer than 128 must split across replicate records.
	pixels := make([]byte, 300)
	for i := range pixels {
		pixels[i] = 0x55
	}
	frame, err := Encode(pixels, 300, 1, 1, 8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, _, err := Decode(frame, 300)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, pixels) {
		t.Fatal("long run round trip failed")
	}
}

func TestDecodeZeroPaddedSegment(t *testing.T) {
	// Odd segments padded with 0x00 instead of the 0x80 no-op are common in
	// the wild; the trailing byte parses as a literal header with no payload
	// and must be treated as padding.
	frame := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(frame, 1)
	binary.LittleEndian.PutUint32(frame[4:], headerSize)
	frame = append(frame, 0x01, 0xAA, 0xBB, 0x00)

	got, components, bits, err := Decode(frame, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if components != 1 || bits != 8 {
		t.Fatalf("layout = %dx%d bits", components, bits)
	}
	if !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Fatalf("pixels = %v, want [0xAA 0xBB]", got)
	}

	// The same stream through the codec interface, which never knows the
	// plane size up front.
	res, err := NewCodec().Decode(frame)
	if err != nil {
		t.Fatalf("codec Decode: %v", err)
	}
	if !bytes.Equal(res.PixelData, []byte{0xAA, 0xBB}) {
		t.Fatalf("codec pixels = %v, want [0xAA 0xBB]", res.PixelData)
	}
}

func TestDecodeCorruptHeader(t *testing.T) {
	if _, _, _, err := Decode([]byte{1, 2, 3}, 0); !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("short data err = %v, want ErrCorruptHeader", err)
	}

	frame := make([]byte, headerSize+4)
	binary.LittleEndian.PutUint32(frame, 1)
	binary.LittleEndian.PutUint32(frame[4:], uint32(len(frame)+10)) // offset past end
	if _, _, _, err := Decode(frame, 0); !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("bad offset err = %v, want ErrCorruptHeader", err)
	}

	binary.LittleEndian.PutUint32(frame, 4) // unsupported layout
	binary.LittleEndian.PutUint32(frame[4:], headerSize)
	if _, _, _, err := Decode(frame, 0); err == nil {
		t.Fatal("unsupported segment count accepted")
	}
}

func TestEncodeTooManySegments(t *testing.T) {
	// 3 components x 2 bytes is fine; fake an unsupported depth instead.
	if _, err := Encode(make([]byte, 64), 4, 4, 1, 32); err == nil {
		t.Fatal("32-bit samples accepted")
	}
}

func TestPackBits(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"single", []byte{7}},
		{"two run", []byte{9, 9}},
		{"literal then run", []byte{1, 2, 3, 3, 3, 3}},
		{"run then literal", []byte{5, 5, 5, 1, 2}},
		{"alternating", []byte{1, 2, 1, 2, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := packBits(tt.in)
			got, err := unpackBits(packed, len(tt.in))
			if err != nil {
				t.Fatalf("unpackBits: %v", err)
			}
			if !bytes.Equal(got, tt.in) {
				t.Errorf("round trip = %v, want %v", got, tt.in)
			}
		})
	}
}

func TestCodecInterface(t *testing.T) {
	c := NewCodec()
	pixels := make([]byte, 8*8)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	frame, err := c.Encode(encodeParams(pixels, 8, 8, 1, 8))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Components != 1 || res.BitsAllocated != 8 {
		t.Fatalf("layout = %dx%d bits", res.Components, res.BitsAllocated)
	}
	if !bytes.Equal(res.PixelData, pixels) {
		t.Fatal("codec round trip changed pixel data")
	}
}
