package transcode

import (
	"fmt"

	"github.com/cocosip/go-dicom-transcode/dicom"
)

// Photometric interpretation values handled by the engine.
const (
	Monochrome1  = "MONOCHROME1"
	Monochrome2  = "MONOCHROME2"
	RGB          = "RGB"
	YBRFull      = "YBR_FULL"
	YBRFull422   = "YBR_FULL_422"
	PaletteColor = "PALETTE COLOR"
)

// ImageDescriptor is an immutable snapshot of the pixel geometry and color
// encoding of one image object. One is derived from the source dataset, and
// after the dataset adjuster runs a second one is derived to describe the
// representation the destination codec must encode.
type ImageDescriptor struct {
	Rows            int
	Columns         int
	SamplesPerPixel int
	BitsAllocated   int
	BitsStored      int
	HighBit         int
	Signed          bool
	Planar          int
	Photometric     string
	Frames          int

	// OverlayGroups lists repeating groups whose overlay plane is embedded
	// in unused high bits of the pixel samples.
	OverlayGroups []uint16

	// PixelDataLength is the announced byte length of a native pixel data
	// element, or -1 for encapsulated sources.
	PixelDataLength int64
}

// DeriveDescriptor builds a descriptor from dataset attributes. A positive
// bitsCompressed overrides the stored bit depth, for codecs asked to carry
// fewer bits than the source stores. Malformed geometry is fatal.
func DeriveDescriptor(ds *dicom.Dataset, bitsCompressed int) (*ImageDescriptor, error) {
	d := &ImageDescriptor{Frames: 1, PixelDataLength: -1}

	rows, ok := ds.GetInt(dicom.Rows)
	if !ok || rows <= 0 {
		return nil, &GeometryError{Reason: fmt.Sprintf("rows %d", rows)}
	}
	cols, ok := ds.GetInt(dicom.Columns)
	if !ok || cols <= 0 {
		return nil, &GeometryError{Reason: fmt.Sprintf("columns %d", cols)}
	}
	d.Rows, d.Columns = rows, cols

	d.SamplesPerPixel = 1
	if v, ok := ds.GetInt(dicom.SamplesPerPixel); ok {
		d.SamplesPerPixel = v
	}
	if d.SamplesPerPixel != 1 && d.SamplesPerPixel != 3 {
		return nil, &GeometryError{Reason: fmt.Sprintf("samples per pixel %d", d.SamplesPerPixel)}
	}

	d.BitsAllocated = 8
	if v, ok := ds.GetInt(dicom.BitsAllocated); ok {
		d.BitsAllocated = v
	}
	if d.BitsAllocated != 1 && d.BitsAllocated != 8 && d.BitsAllocated != 16 {
		return nil, &GeometryError{Reason: fmt.Sprintf("bits allocated %d", d.BitsAllocated)}
	}

	d.BitsStored = d.BitsAllocated
	if v, ok := ds.GetInt(dicom.BitsStored); ok {
		d.BitsStored = v
	}
	if bitsCompressed > 0 && bitsCompressed < d.BitsStored {
		d.BitsStored = bitsCompressed
	}
	if d.BitsStored < 1 || d.BitsStored > d.BitsAllocated {
		return nil, &GeometryError{Reason: fmt.Sprintf("bits stored %d of %d allocated", d.BitsStored, d.BitsAllocated)}
	}

	d.HighBit = d.BitsStored - 1
	if v, ok := ds.GetInt(dicom.HighBit); ok {
		d.HighBit = v
	}
	if d.HighBit >= d.BitsAllocated || d.HighBit < d.BitsStored-1 {
		return nil, &GeometryError{Reason: fmt.Sprintf("high bit %d with %d stored of %d allocated",
			d.HighBit, d.BitsStored, d.BitsAllocated)}
	}

	if v, ok := ds.GetInt(dicom.PixelRepresentation); ok {
		d.Signed = v != 0
	}
	if v, ok := ds.GetInt(dicom.PlanarConfiguration); ok {
		d.Planar = v
	}

	d.Photometric = Monochrome2
	if v, ok := ds.GetString(dicom.PhotometricInterpretation); ok && v != "" {
		d.Photometric = v
	}

	if v, ok := ds.GetInt(dicom.NumberOfFrames); ok && v > 0 {
		d.Frames = v
	}

	d.OverlayGroups = embeddedOverlayGroups(ds, d)
	return d, nil
}

// embeddedOverlayGroups finds overlay repeating groups whose plane lives in
// spare bits of the pixel samples: the bit position falls outside the stored
// window [HighBit+1-BitsStored, HighBit] and no separate overlay data element
// exists. The window is taken from the high bit, not the storage depth, so
// shifted windows classify correctly.
func embeddedOverlayGroups(ds *dicom.Dataset, d *ImageDescriptor) []uint16 {
	low := d.HighBit + 1 - d.BitsStored
	var groups []uint16
	for group := uint16(0x6000); group <= 0x601E; group += 2 {
		if _, ok := ds.Get(dicom.OverlayTag(group, dicom.OverlayDataElem)); ok {
			continue
		}
		pos, ok := ds.GetInt(dicom.OverlayTag(group, dicom.OverlayBitPositionElem))
		if !ok || pos >= d.BitsAllocated {
			continue
		}
		if pos >= low && pos <= d.HighBit {
			continue
		}
		groups = append(groups, group)
	}
	return groups
}

// IsBitmap reports whether the image is a 1-bit-per-sample bitmap. Bitmaps
// are never recompressed into a different family.
func (d *ImageDescriptor) IsBitmap() bool {
	return d.BitsAllocated == 1
}

// BytesPerSample is the storage width of one sample in bytes.
func (d *ImageDescriptor) BytesPerSample() int {
	if d.BitsAllocated <= 8 {
		return 1
	}
	return 2
}

// FrameLength is the byte length of one native frame.
func (d *ImageDescriptor) FrameLength() int {
	if d.BitsAllocated == 1 {
		return (d.Rows*d.Columns + 7) / 8
	}
	return d.Rows * d.Columns * d.SamplesPerPixel * d.BytesPerSample()
}

// SamplesPerFrame is the number of individual samples in one frame.
func (d *ImageDescriptor) SamplesPerFrame() int {
	return d.Rows * d.Columns * d.SamplesPerPixel
}
