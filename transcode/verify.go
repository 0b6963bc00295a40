package transcode

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-dicom-transcode/codec"
)

// verifier bounds the reconstruction error of lossy recompression: each
// freshly encoded frame is decoded back through the destination codec and
// compared against the pre-encode raster. Exceeding the budget is fatal for
// the whole transcode; lossy recompression must not silently drift.
type verifier struct {
	budget    int
	blockSize int
	codec     codec.Codec
}

func (v *verifier) verify(frame int, encoded, reference []byte, d *ImageDescriptor) error {
	res, err := v.codec.Decode(encoded)
	if err != nil {
		return fmt.Errorf("verification decode of frame %d: %w", frame, err)
	}
	if len(res.PixelData) != len(reference) {
		return &FidelityError{Frame: frame, Observed: len(res.PixelData) - len(reference), Budget: v.budget}
	}

	var observed int
	if v.blockSize > 1 {
		observed = maxBlockDiff(res.PixelData, reference, d, v.blockSize)
	} else {
		observed = maxSampleDiff(res.PixelData, reference, d)
	}
	if observed > v.budget {
		return &FidelityError{Frame: frame, Observed: observed, Budget: v.budget}
	}
	return nil
}

// maxSampleDiff returns the largest absolute per-sample difference.
func maxSampleDiff(a, b []byte, d *ImageDescriptor) int {
	max := 0
	n := d.SamplesPerFrame()
	for i := 0; i < n; i++ {
		diff := sampleAt(a, i, d) - sampleAt(b, i, d)
		if diff < 0 {
			diff = -diff
		}
		if diff > max {
			max = diff
		}
	}
	return max
}

// maxBlockDiff compares block-averaged sums over blockSize x blockSize
// tiles per component: the absolute difference of the block sums divided by
// the block area. Coarser and faster for smooth modalities.
func maxBlockDiff(a, b []byte, d *ImageDescriptor, blockSize int) int {
	max := 0
	for c := 0; c < d.SamplesPerPixel; c++ {
		for by := 0; by < d.Rows; by += blockSize {
			for bx := 0; bx < d.Columns; bx += blockSize {
				var sumA, sumB, area int
				for y := by; y < by+blockSize && y < d.Rows; y++ {
					for x := bx; x < bx+blockSize && x < d.Columns; x++ {
						i := (y*d.Columns+x)*d.SamplesPerPixel + c
						sumA += sampleAt(a, i, d)
						sumB += sampleAt(b, i, d)
						area++
					}
				}
				diff := (sumA - sumB) / area
				if diff < 0 {
					diff = -diff
				}
				if diff > max {
					max = diff
				}
			}
		}
	}
	return max
}

func sampleAt(p []byte, i int, d *ImageDescriptor) int {
	if d.BytesPerSample() == 2 {
		v := binary.LittleEndian.Uint16(p[2*i:])
		if d.Signed {
			return int(int16(v))
		}
		return int(v)
	}
	if d.Signed {
		return int(int8(p[i]))
	}
	return int(p[i])
}
