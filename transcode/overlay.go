package transcode

import (
	"encoding/binary"

	"github.com/cocosip/go-dicom-transcode/dicom"
)

// overlayPlane accumulates one embedded overlay bit-plane while frames pass
// through the pipeline, then materializes it as an overlay data element
// relocated to bit position zero.
type overlayPlane struct {
	group       uint16
	bitPosition int

	bits  []byte
	nbits int
}

// embeddedOverlays builds an accumulator per embedded overlay group.
func embeddedOverlays(ds *dicom.Dataset, d *ImageDescriptor) []*overlayPlane {
	planes := make([]*overlayPlane, 0, len(d.OverlayGroups))
	for _, group := range d.OverlayGroups {
		pos, ok := ds.GetInt(dicom.OverlayTag(group, dicom.OverlayBitPositionElem))
		if !ok {
			continue
		}
		planes = append(planes, &overlayPlane{group: group, bitPosition: pos})
	}
	return planes
}

// extractFrame pulls the overlay bit out of every pixel of an interleaved
// raster, packing bits least significant first as OverlayData requires.
// Must run before the raster is masked.
func (o *overlayPlane) extractFrame(raster []byte, d *ImageDescriptor) {
	pixels := d.Rows * d.Columns
	step := d.SamplesPerPixel * d.BytesPerSample()
	for i := 0; i < pixels; i++ {
		var sample uint16
		if d.BytesPerSample() == 2 {
			sample = binary.LittleEndian.Uint16(raster[i*step:])
		} else {
			sample = uint16(raster[i*step])
		}
		bit := (sample >> o.bitPosition) & 1
		if o.nbits%8 == 0 {
			o.bits = append(o.bits, 0)
		}
		if bit != 0 {
			o.bits[o.nbits/8] |= 1 << (o.nbits % 8)
		}
		o.nbits++
	}
}

// clearFrame zeroes the overlay bit in every pixel so the plane does not
// pollute the compressed output.
func (o *overlayPlane) clearFrame(raster []byte, d *ImageDescriptor) {
	pixels := d.Rows * d.Columns
	step := d.SamplesPerPixel * d.BytesPerSample()
	mask := ^(uint16(1) << o.bitPosition)
	for i := 0; i < pixels; i++ {
		if d.BytesPerSample() == 2 {
			v := binary.LittleEndian.Uint16(raster[i*step:]) & mask
			binary.LittleEndian.PutUint16(raster[i*step:], v)
		} else {
			raster[i*step] &= byte(mask)
		}
	}
}

// apply rewrites the overlay group attributes: the plane now lives in its
// own overlay data element, one bit per sample at bit position zero.
func (o *overlayPlane) apply(ds *dicom.Dataset) {
	data := o.bits
	if len(data)%2 != 0 {
		data = append(data, 0)
	}
	ds.SetUint16(dicom.OverlayTag(o.group, dicom.OverlayBitsAllocatedElem), 1)
	ds.SetUint16(dicom.OverlayTag(o.group, dicom.OverlayBitPositionElem), 0)
	ds.Set(&dicom.Element{
		Tag:    dicom.OverlayTag(o.group, dicom.OverlayDataElem),
		VR:     dicom.OB,
		Length: uint32(len(data)),
		Value:  data,
	})
}
