package transcode

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-dicom-transcode/dicom"
)

// paletteLUT holds the red/green/blue lookup tables of a palette color
// image, normalized to 8-bit entries.
type paletteLUT struct {
	r, g, b []byte
	first   int
}

// paletteFromDataset reads the three palette lookup table descriptor and
// data elements. Palette color must never survive a lossy recompression, so
// the adjuster expands samples through this LUT first.
func paletteFromDataset(ds *dicom.Dataset) (*paletteLUT, error) {
	r, first, err := readLUT(ds, dicom.RedPaletteColorLookupTableDescriptor, dicom.RedPaletteColorLookupTableData)
	if err != nil {
		return nil, err
	}
	g, _, err := readLUT(ds, dicom.GreenPaletteColorLookupTableDescriptor, dicom.GreenPaletteColorLookupTableData)
	if err != nil {
		return nil, err
	}
	b, _, err := readLUT(ds, dicom.BluePaletteColorLookupTableDescriptor, dicom.BluePaletteColorLookupTableData)
	if err != nil {
		return nil, err
	}
	return &paletteLUT{r: r, g: g, b: b, first: first}, nil
}

func readLUT(ds *dicom.Dataset, descTag, dataTag dicom.Tag) ([]byte, int, error) {
	desc, ok := ds.Get(descTag)
	if !ok {
		return nil, 0, fmt.Errorf("missing palette descriptor %s", descTag)
	}
	values := desc.Uint16s()
	if len(values) < 3 {
		return nil, 0, fmt.Errorf("palette descriptor %s has %d values", descTag, len(values))
	}
	entries := int(values[0])
	if entries == 0 {
		entries = 65536
	}
	first := int(values[1])
	bits := int(values[2])

	data, ok := ds.Get(dataTag)
	if !ok {
		return nil, 0, fmt.Errorf("missing palette data %s", dataTag)
	}

	lut := make([]byte, entries)
	switch {
	case bits == 8 && len(data.Value) >= entries && len(data.Value) < entries*2:
		copy(lut, data.Value[:entries])
	case len(data.Value) >= entries*2:
		// 16-bit entries; keep the high byte.
		for i := 0; i < entries; i++ {
			v := binary.LittleEndian.Uint16(data.Value[2*i:])
			if bits == 8 {
				lut[i] = byte(v)
			} else {
				lut[i] = byte(v >> 8)
			}
		}
	default:
		return nil, 0, fmt.Errorf("palette data %s too short: %d bytes for %d entries", dataTag, len(data.Value), entries)
	}
	return lut, first, nil
}

// expand maps one frame of palette indices to an interleaved 8-bit RGB
// raster. dst must hold pixels*3 bytes.
func (l *paletteLUT) expand(dst, src []byte, bytesPerSample int) {
	pixels := len(src) / bytesPerSample
	for i := 0; i < pixels; i++ {
		var index int
		if bytesPerSample == 2 {
			index = int(binary.LittleEndian.Uint16(src[2*i:]))
		} else {
			index = int(src[i])
		}
		index -= l.first
		if index < 0 {
			index = 0
		}
		if index >= len(l.r) {
			index = len(l.r) - 1
		}
		dst[3*i] = l.r[index]
		dst[3*i+1] = l.g[index]
		dst[3*i+2] = l.b[index]
	}
}

// removePaletteElements deletes the lookup table attributes after expansion.
func removePaletteElements(ds *dicom.Dataset) {
	for _, tag := range []dicom.Tag{
		dicom.RedPaletteColorLookupTableDescriptor,
		dicom.GreenPaletteColorLookupTableDescriptor,
		dicom.BluePaletteColorLookupTableDescriptor,
		dicom.RedPaletteColorLookupTableData,
		dicom.GreenPaletteColorLookupTableData,
		dicom.BluePaletteColorLookupTableData,
	} {
		ds.Delete(tag)
	}
}
