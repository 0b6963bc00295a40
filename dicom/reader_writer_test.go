package dicom

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func testFileMeta(tsUID string) *Dataset {
	meta := &Dataset{}
	meta.SetString(MediaStorageSOPClassUID, "1.2.840.10008.5.1.4.1.1.7")
	meta.SetString(MediaStorageSOPInstanceUID, "1.2.3.4.5")
	meta.SetString(TransferSyntaxUID, tsUID)
	return meta
}

func writeObject(t *testing.T, ts *TransferSyntax, build func(w *Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, ts)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFileMeta(testFileMeta(ts.UID)); err != nil {
		t.Fatalf("WriteFileMeta: %v", err)
	}
	build(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestRoundTripNative(t *testing.T) {
	tests := []struct {
		name string
		ts   *TransferSyntax
	}{
		{"explicit", ExplicitVRLittleEndian},
		{"implicit", ImplicitVRLittleEndian},
		{"deflated", DeflatedExplicitVRLittleEndian},
	}

	pixel := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := writeObject(t, tt.ts, func(w *Writer) {
				ds := &Dataset{}
				ds.SetUint16(Rows, 2)
				ds.SetUint16(Columns, 4)
				ds.SetString(PhotometricInterpretation, "MONOCHROME2")
				for _, e := range ds.Elements {
					if err := w.WriteElement(e); err != nil {
						t.Fatalf("WriteElement: %v", err)
					}
				}
				if err := w.BeginPixelData(OB, uint32(len(pixel))); err != nil {
					t.Fatalf("BeginPixelData: %v", err)
				}
				if err := w.WriteNative(pixel); err != nil {
					t.Fatalf("WriteNative: %v", err)
				}
			})

			r, err := NewReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			if r.TransferSyntax().UID != tt.ts.UID {
				t.Fatalf("transfer syntax = %s, want %s", r.TransferSyntax().UID, tt.ts.UID)
			}

			ds := &Dataset{}
			var got []byte
			for {
				e, err := r.NextElement()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("NextElement: %v", err)
				}
				if e.Tag == PixelData {
					got, err = io.ReadAll(r.PixelReader())
					if err != nil {
						t.Fatalf("reading pixel value: %v", err)
					}
					continue
				}
				ds.Set(e)
			}

			if v, _ := ds.GetUint16(Rows); v != 2 {
				t.Errorf("Rows = %d, want 2", v)
			}
			if v, _ := ds.GetUint16(Columns); v != 4 {
				t.Errorf("Columns = %d, want 4", v)
			}
			if v, _ := ds.GetString(PhotometricInterpretation); v != "MONOCHROME2" {
				t.Errorf("PhotometricInterpretation = %q", v)
			}
			if !bytes.Equal(got, pixel) {
				t.Errorf("pixel data = %v, want %v", got, pixel)
			}
		})
	}
}

func TestEncapsulatedFragments(t *testing.T) {
	frag1 := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	frag2 := []byte{0x01, 0x02, 0x03} // odd, gains one pad byte

	data := writeObject(t, ExplicitVRLittleEndian, func(w *Writer) {
		if err := w.BeginPixelData(OB, UndefinedLength); err != nil {
			t.Fatalf("BeginPixelData: %v", err)
		}
		if padded, err := w.WriteFragment(frag1); err != nil || padded {
			t.Fatalf("WriteFragment(frag1) = %v, %v", padded, err)
		}
		padded, err := w.WriteFragment(frag2)
		if err != nil {
			t.Fatalf("WriteFragment(frag2): %v", err)
		}
		if !padded {
			t.Error("odd fragment not reported as padded")
		}
		if err := w.EndPixelData(); err != nil {
			t.Fatalf("EndPixelData: %v", err)
		}
	})

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	e, err := r.NextElement()
	if err != nil {
		t.Fatalf("NextElement: %v", err)
	}
	if e.Tag != PixelData || e.Length != UndefinedLength {
		t.Fatalf("got %s length %d, want encapsulated pixel data", e.Tag, e.Length)
	}

	// The reader refuses to move on while fragments are pending.
	if _, err := r.NextElement(); !errors.Is(err, ErrPixelDataPending) {
		t.Fatalf("NextElement during fragments = %v, want ErrPixelDataPending", err)
	}

	bot, err := r.NextFragment()
	if err != nil || len(bot) != 0 {
		t.Fatalf("basic offset table = %v, %v; want empty", bot, err)
	}
	got1, err := r.NextFragment()
	if err != nil || !bytes.Equal(got1, frag1) {
		t.Fatalf("fragment 1 = %v, %v", got1, err)
	}
	got2, err := r.NextFragment()
	if err != nil {
		t.Fatalf("fragment 2: %v", err)
	}
	if len(got2)%2 != 0 || !bytes.Equal(got2[:3], frag2) {
		t.Fatalf("fragment 2 = %v, want %v plus pad", got2, frag2)
	}
	if _, err := r.NextFragment(); err != io.EOF {
		t.Fatalf("after last fragment err = %v, want io.EOF", err)
	}
	if _, err := r.NextElement(); err != io.EOF {
		t.Fatalf("trailing NextElement err = %v, want io.EOF", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	for _, ts := range []*TransferSyntax{ExplicitVRLittleEndian, ImplicitVRLittleEndian} {
		t.Run(ts.Name, func(t *testing.T) {
			item := &Dataset{}
			item.SetString(SOPClassUID, "1.2.840.10008.5.1.4.1.1.7")
			item.SetString(SOPInstanceUID, "1.2.3")
			seq := &Element{Tag: NewTag(0x0008, 0x1140), VR: SQ, Items: []*Dataset{item}}

			data := writeObject(t, ts, func(w *Writer) {
				if err := w.WriteElement(seq); err != nil {
					t.Fatalf("WriteElement: %v", err)
				}
			})

			r, err := NewReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			e, err := r.NextElement()
			if err != nil {
				t.Fatalf("NextElement: %v", err)
			}
			if e.VR != SQ || len(e.Items) != 1 {
				t.Fatalf("got VR %s with %d items, want SQ with 1", e.VR, len(e.Items))
			}
			if v, _ := e.Items[0].GetString(SOPInstanceUID); v != "1.2.3" {
				t.Errorf("nested SOPInstanceUID = %q", v)
			}
		})
	}
}

func TestBigEndianRead(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 128))
	buf.WriteString("DICM")
	// File meta group, always explicit little endian.
	buf.Write([]byte{0x02, 0x00, 0x00, 0x00})
	buf.WriteString("UL")
	buf.Write([]byte{0x04, 0x00})
	buf.Write([]byte{28, 0, 0, 0})
	buf.Write([]byte{0x02, 0x00, 0x10, 0x00})
	buf.WriteString("UI")
	buf.Write([]byte{20, 0})
	buf.WriteString(ExplicitVRBigEndianUID + "\x00")
	// Dataset in big endian: Rows = 256.
	buf.Write([]byte{0x00, 0x28, 0x00, 0x10})
	buf.WriteString("US")
	buf.Write([]byte{0x00, 0x02})
	buf.Write([]byte{0x01, 0x00})

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	e, err := r.NextElement()
	if err != nil {
		t.Fatalf("NextElement: %v", err)
	}
	if e.Tag != Rows {
		t.Fatalf("tag = %s, want Rows", e.Tag)
	}
	if v, _ := e.Uint16(); v != 256 {
		t.Errorf("Rows = %d, want 256 after byte swap", v)
	}
}

func TestNotDICOM(t *testing.T) {
	junk := make([]byte, 200)
	if _, err := NewReader(bytes.NewReader(junk)); !errors.Is(err, ErrNotDICOM) {
		t.Fatalf("err = %v, want ErrNotDICOM", err)
	}
}

func TestOddLengthStringPadded(t *testing.T) {
	ds := &Dataset{}
	ds.SetString(PhotometricInterpretation, "RGB")
	e, _ := ds.Get(PhotometricInterpretation)
	if len(e.Value)%2 != 0 {
		t.Fatalf("string value not padded: %d bytes", len(e.Value))
	}
	if e.Value[3] != 0x20 {
		t.Errorf("pad byte = %#x, want space", e.Value[3])
	}

	ds.SetString(SOPInstanceUID, "1.2.3")
	e, _ = ds.Get(SOPInstanceUID)
	if len(e.Value) != 6 || e.Value[5] != 0x00 {
		t.Errorf("UI value = %v, want null-padded to 6", e.Value)
	}
}

func TestBigEndianWriteRejected(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf, ExplicitVRBigEndian); err == nil {
		t.Fatal("NewWriter accepted big endian output")
	}
}

func TestLookupUnknownSyntax(t *testing.T) {
	if _, err := Lookup("1.2.3.4.5.6"); !errors.Is(err, ErrUnknownTransferSyntax) {
		t.Fatalf("err = %v, want ErrUnknownTransferSyntax", err)
	}
}
