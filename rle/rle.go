// Package rle implements the DICOM RLE Lossless codec (PS3.5 Annex G):
// a 64-byte segment header followed by PackBits-compressed byte segments,
// one segment per byte of the composite pixel code, most significant first.
package rle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize  = 64
	maxSegments = 15
)

var (
	// ErrTooManySegments is returned when samples*bytes-per-sample exceeds
	// the 15 segments the RLE header can describe.
	ErrTooManySegments = errors.New("rle: more than 15 segments")

	// ErrCorruptHeader is returned when the segment header is inconsistent
	// with the data length.
	ErrCorruptHeader = errors.New("rle: corrupt segment header")
)

// Encode compresses one frame of interleaved little-endian samples into a
// DICOM RLE frame. Each byte position of each sample becomes one segment,
// most significant byte first, PackBits-compressed and padded to even length.
func Encode(pixels []byte, width, height, components, bitsAllocated int) ([]byte, error) {
	bytesPerSample := bitsAllocated / 8
	if bytesPerSample < 1 || bytesPerSample > 2 {
		return nil, fmt.Errorf("rle: unsupported bits allocated %d", bitsAllocated)
	}
	numSegments := components * bytesPerSample
	if numSegments > maxSegments {
		return nil, ErrTooManySegments
	}
	numPixels := width * height
	if len(pixels) < numPixels*components*bytesPerSample {
		return nil, fmt.Errorf("rle: raster too short: %d bytes for %dx%dx%d", len(pixels), width, height, components)
	}

	var out bytes.Buffer
	out.Write(make([]byte, headerSize))

	offsets := make([]uint32, 0, numSegments)
	plane := make([]byte, numPixels)
	for s := 0; s < components; s++ {
		for b := 0; b < bytesPerSample; b++ {
			// b counts from the most significant byte; samples are little
			// endian in the raster.
			byteIndex := bytesPerSample - 1 - b
			for i := 0; i < numPixels; i++ {
				plane[i] = pixels[(i*components+s)*bytesPerSample+byteIndex]
			}
			offsets = append(offsets, uint32(out.Len()))
			seg := packBits(plane)
			out.Write(seg)
			if len(seg)%2 != 0 {
				// Pad with the PackBits no-op so decoders that do not
				// know the plane size stay aligned.
				out.WriteByte(0x80)
			}
		}
	}

	frame := out.Bytes()
	binary.LittleEndian.PutUint32(frame[0:], uint32(numSegments))
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(frame[4+4*i:], off)
	}
	return frame, nil
}

// Decode decompresses a DICOM RLE frame back into interleaved little-endian
// samples. The segment count determines the sample layout: 1 segment is
// 8-bit grayscale, 2 is 16-bit grayscale, 3 is 8-bit RGB, 6 is 16-bit RGB.
// numPixels bounds each segment; pass 0 to accept whatever the segments hold.
func Decode(data []byte, numPixels int) ([]byte, int, int, error) {
	if len(data) < headerSize {
		return nil, 0, 0, ErrCorruptHeader
	}
	numSegments := int(binary.LittleEndian.Uint32(data))
	if numSegments < 1 || numSegments > maxSegments {
		return nil, 0, 0, fmt.Errorf("%w: %d segments", ErrCorruptHeader, numSegments)
	}

	var components, bytesPerSample int
	switch numSegments {
	case 1:
		components, bytesPerSample = 1, 1
	case 2:
		components, bytesPerSample = 1, 2
	case 3:
		components, bytesPerSample = 3, 1
	case 6:
		components, bytesPerSample = 3, 2
	default:
		return nil, 0, 0, fmt.Errorf("rle: unsupported segment count %d", numSegments)
	}

	segments := make([][]byte, numSegments)
	for i := 0; i < numSegments; i++ {
		start := binary.LittleEndian.Uint32(data[4+4*i:])
		end := uint32(len(data))
		if i+1 < numSegments {
			end = binary.LittleEndian.Uint32(data[4+4*(i+1):])
		}
		if start < headerSize || start > end || end > uint32(len(data)) {
			return nil, 0, 0, fmt.Errorf("%w: segment %d bounds [%d,%d)", ErrCorruptHeader, i, start, end)
		}
		seg, err := unpackBits(data[start:end], numPixels)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("segment %d: %w", i, err)
		}
		segments[i] = seg
	}

	n := len(segments[0])
	for _, seg := range segments {
		if len(seg) != n {
			return nil, 0, 0, fmt.Errorf("%w: uneven segment lengths", ErrCorruptHeader)
		}
	}

	pixels := make([]byte, n*components*bytesPerSample)
	for s := 0; s < components; s++ {
		for b := 0; b < bytesPerSample; b++ {
			byteIndex := bytesPerSample - 1 - b
			seg := segments[s*bytesPerSample+b]
			for i := 0; i < n; i++ {
				pixels[(i*components+s)*bytesPerSample+byteIndex] = seg[i]
			}
		}
	}
	return pixels, components, bytesPerSample * 8, nil
}

// packBits compresses one byte plane. Runs of two or more identical bytes
// become a replicate record; everything else is emitted as literals broken
// before the next run of three.
func packBits(data []byte) []byte {
	var buf bytes.Buffer
	i := 0
	for i < len(data) {
		runLen := 1
		for i+runLen < len(data) && runLen < 128 && data[i+runLen] == data[i] {
			runLen++
		}
		if runLen > 1 {
			buf.WriteByte(byte(int8(-(runLen - 1))))
			buf.WriteByte(data[i])
			i += runLen
			continue
		}

		litLen := 1
		for i+litLen < len(data) && litLen < 128 {
			if i+litLen+2 < len(data) &&
				data[i+litLen] == data[i+litLen+1] &&
				data[i+litLen] == data[i+litLen+2] {
				break
			}
			litLen++
		}
		buf.WriteByte(byte(int8(litLen - 1)))
		buf.Write(data[i : i+litLen])
		i += litLen
	}
	return buf.Bytes()
}

// unpackBits decodes one PackBits segment. expectedLen stops decoding at the
// plane size so even-padding bytes after the last record are ignored.
func unpackBits(data []byte, expectedLen int) ([]byte, error) {
	var buf bytes.Buffer
	if expectedLen > 0 {
		buf.Grow(expectedLen)
	}

	i := 0
	for i < len(data) {
		if expectedLen > 0 && buf.Len() >= expectedLen {
			break
		}
		n := int8(data[i])
		i++
		if n == -128 {
			continue
		}
		if n >= 0 {
			count := int(n) + 1
			if i+count > len(data) {
				// A lone header byte at the end of the segment is even
				// padding: most encoders pad odd segments with 0x00, which
				// reads as a literal header with no payload.
				if i == len(data) {
					break
				}
				return nil, errors.New("rle: truncated literal run")
			}
			buf.Write(data[i : i+count])
			i += count
		} else {
			count := int(-n) + 1
			if i >= len(data) {
				return nil, errors.New("rle: truncated replicate run")
			}
			for k := 0; k < count; k++ {
				buf.WriteByte(data[i])
			}
			i++
		}
	}
	if expectedLen > 0 && buf.Len() > expectedLen {
		buf.Truncate(expectedLen)
	}
	return buf.Bytes(), nil
}
