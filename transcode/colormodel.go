package transcode

import "encoding/binary"

// ColorModel is the closed set of color encodings the pipeline moves rasters
// between. Conversions are explicit functions; photometric interpretation
// strings map onto these variants.
type ColorModel int

const (
	ModelGrayscale ColorModel = iota
	ModelRGB
	ModelYBR
	ModelPalette
)

func colorModelOf(photometric string) ColorModel {
	switch photometric {
	case RGB:
		return ModelRGB
	case YBRFull, YBRFull422:
		return ModelYBR
	case PaletteColor:
		return ModelPalette
	}
	return ModelGrayscale
}

// ybrFullToRGB converts an interleaved 8-bit YBR_FULL raster to RGB in
// place, using the full-range JPEG matrix (PS3.3 C.7.6.3.1.2).
func ybrFullToRGB(p []byte) {
	for i := 0; i+2 < len(p); i += 3 {
		y := float64(p[i])
		cb := float64(p[i+1]) - 128
		cr := float64(p[i+2]) - 128
		p[i] = clamp8(y + 1.402*cr)
		p[i+1] = clamp8(y - 0.344136*cb - 0.714136*cr)
		p[i+2] = clamp8(y + 1.772*cb)
	}
}

func clamp8(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

// planarToInterleaved rewrites a color-by-plane raster (RRR...GGG...BBB...)
// into pixel-interleaved order. src and dst must not alias.
func planarToInterleaved(dst, src []byte, pixels, samples, bytesPerSample int) {
	for s := 0; s < samples; s++ {
		for i := 0; i < pixels; i++ {
			for b := 0; b < bytesPerSample; b++ {
				dst[(i*samples+s)*bytesPerSample+b] = src[(s*pixels+i)*bytesPerSample+b]
			}
		}
	}
}

// swapWords converts 16-bit big-endian samples to little endian in place.
func swapWords(p []byte) {
	for i := 0; i+1 < len(p); i += 2 {
		p[i], p[i+1] = p[i+1], p[i]
	}
}

// maskToStoredBits zeroes every bit outside the stored sample window so
// extracted overlay planes and other high-bit noise never reach a
// compressed stream.
func maskToStoredBits(p []byte, d *ImageDescriptor) {
	low := d.HighBit + 1 - d.BitsStored
	mask := uint32(1<<d.BitsStored-1) << low

	switch d.BytesPerSample() {
	case 1:
		m := byte(mask)
		for i := range p {
			p[i] &= m
		}
	case 2:
		m := uint16(mask)
		for i := 0; i+1 < len(p); i += 2 {
			v := binary.LittleEndian.Uint16(p[i:]) & m
			binary.LittleEndian.PutUint16(p[i:], v)
		}
	}
}
