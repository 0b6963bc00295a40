package transcode

import (
	"errors"
	"testing"

	"github.com/cocosip/go-dicom-transcode/dicom"
)

func TestDeriveDescriptorDefaults(t *testing.T) {
	ds := &dicom.Dataset{}
	ds.SetUint16(dicom.Rows, 10)
	ds.SetUint16(dicom.Columns, 20)

	d, err := DeriveDescriptor(ds, 0)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if d.SamplesPerPixel != 1 || d.BitsAllocated != 8 || d.BitsStored != 8 || d.HighBit != 7 {
		t.Errorf("defaults = %+v", d)
	}
	if d.Photometric != Monochrome2 || d.Frames != 1 || d.Signed {
		t.Errorf("defaults = %+v", d)
	}
	if d.FrameLength() != 200 {
		t.Errorf("FrameLength = %d, want 200", d.FrameLength())
	}
}

func TestDeriveDescriptorRejectsMalformedGeometry(t *testing.T) {
	base := func() *dicom.Dataset {
		ds := &dicom.Dataset{}
		ds.SetUint16(dicom.Rows, 4)
		ds.SetUint16(dicom.Columns, 4)
		return ds
	}

	tests := []struct {
		name    string
		corrupt func(ds *dicom.Dataset)
	}{
		{"zero rows", func(ds *dicom.Dataset) { ds.SetUint16(dicom.Rows, 0) }},
		{"zero columns", func(ds *dicom.Dataset) { ds.SetUint16(dicom.Columns, 0) }},
		{"two samples", func(ds *dicom.Dataset) { ds.SetUint16(dicom.SamplesPerPixel, 2) }},
		{"32 bits allocated", func(ds *dicom.Dataset) { ds.SetUint16(dicom.BitsAllocated, 32) }},
		{"stored above allocated", func(ds *dicom.Dataset) {
			ds.SetUint16(dicom.BitsAllocated, 8)
			ds.SetUint16(dicom.BitsStored, 12)
		}},
		{"high bit outside storage", func(ds *dicom.Dataset) {
			ds.SetUint16(dicom.BitsAllocated, 8)
			ds.SetUint16(dicom.HighBit, 8)
		}},
		{"high bit below storage", func(ds *dicom.Dataset) {
			ds.SetUint16(dicom.BitsAllocated, 16)
			ds.SetUint16(dicom.BitsStored, 12)
			ds.SetUint16(dicom.HighBit, 9)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := base()
			tt.corrupt(ds)
			_, err := DeriveDescriptor(ds, 0)
			var ge *GeometryError
			if !errors.As(err, &ge) {
				t.Fatalf("err = %v, want GeometryError", err)
			}
		})
	}
}

func TestDeriveDescriptorBitsCompressed(t *testing.T) {
	ds := &dicom.Dataset{}
	ds.SetUint16(dicom.Rows, 4)
	ds.SetUint16(dicom.Columns, 4)
	ds.SetUint16(dicom.BitsAllocated, 16)
	ds.SetUint16(dicom.BitsStored, 12)
	ds.SetUint16(dicom.HighBit, 11)

	d, err := DeriveDescriptor(ds, 10)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if d.BitsStored != 10 {
		t.Errorf("BitsStored = %d, want 10", d.BitsStored)
	}

	// A wider request never raises the stored depth.
	d, err = DeriveDescriptor(ds, 14)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if d.BitsStored != 12 {
		t.Errorf("BitsStored = %d, want 12", d.BitsStored)
	}
}

func TestBitmapDescriptor(t *testing.T) {
	ds := &dicom.Dataset{}
	ds.SetUint16(dicom.Rows, 3)
	ds.SetUint16(dicom.Columns, 3)
	ds.SetUint16(dicom.BitsAllocated, 1)
	ds.SetUint16(dicom.BitsStored, 1)
	ds.SetUint16(dicom.HighBit, 0)

	d, err := DeriveDescriptor(ds, 0)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if !d.IsBitmap() {
		t.Fatal("1-bit image not recognized as bitmap")
	}
	if d.FrameLength() != 2 {
		t.Errorf("FrameLength = %d, want 2 for 9 packed bits", d.FrameLength())
	}
}

func TestEmbeddedOverlayDetection(t *testing.T) {
	ds := &dicom.Dataset{}
	ds.SetUint16(dicom.Rows, 4)
	ds.SetUint16(dicom.Columns, 4)
	ds.SetUint16(dicom.BitsAllocated, 16)
	ds.SetUint16(dicom.BitsStored, 12)
	ds.SetUint16(dicom.HighBit, 11)

	// Embedded: bit position in the unused high bits, no overlay data.
	ds.SetUint16(dicom.OverlayTag(0x6000, dicom.OverlayBitPositionElem), 15)
	// Already standalone: has its own data element.
	ds.SetUint16(dicom.OverlayTag(0x6002, dicom.OverlayBitPositionElem), 14)
	ds.Set(dicom.NewElement(dicom.OverlayTag(0x6002, dicom.OverlayDataElem), []byte{0, 0}))
	// Inside the stored window: not an embedded plane.
	ds.SetUint16(dicom.OverlayTag(0x6004, dicom.OverlayBitPositionElem), 3)

	d, err := DeriveDescriptor(ds, 0)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if len(d.OverlayGroups) != 1 || d.OverlayGroups[0] != 0x6000 {
		t.Fatalf("OverlayGroups = %v, want [0x6000]", d.OverlayGroups)
	}
}

func TestEmbeddedOverlayShiftedStoredWindow(t *testing.T) {
	// Stored window shifted up: 12 bits at positions 2..13. Spare bits exist
	// both below and above it.
	ds := &dicom.Dataset{}
	ds.SetUint16(dicom.Rows, 4)
	ds.SetUint16(dicom.Columns, 4)
	ds.SetUint16(dicom.BitsAllocated, 16)
	ds.SetUint16(dicom.BitsStored, 12)
	ds.SetUint16(dicom.HighBit, 13)

	ds.SetUint16(dicom.OverlayTag(0x6000, dicom.OverlayBitPositionElem), 1)  // below the window
	ds.SetUint16(dicom.OverlayTag(0x6002, dicom.OverlayBitPositionElem), 3)  // inside
	ds.SetUint16(dicom.OverlayTag(0x6004, dicom.OverlayBitPositionElem), 15) // above

	d, err := DeriveDescriptor(ds, 0)
	if err != nil {
		t.Fatalf("DeriveDescriptor: %v", err)
	}
	if len(d.OverlayGroups) != 2 || d.OverlayGroups[0] != 0x6000 || d.OverlayGroups[1] != 0x6004 {
		t.Fatalf("OverlayGroups = %v, want [0x6000 0x6004]", d.OverlayGroups)
	}
}
