package transcode_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"

	"github.com/cocosip/go-dicom-transcode/dicom"
	"github.com/cocosip/go-dicom-transcode/transcode"

	_ "github.com/cocosip/go-dicom-transcode/rle"
)

// buildGrayObject writes a small native grayscale object with this module's
// writer, for feeding through the transcoder.
func buildGrayObject(t *testing.T) []byte {
	t.Helper()
	ds := &dicom.Dataset{}
	ds.SetString(dicom.SOPClassUID, "1.2.840.10008.5.1.4.1.1.7")
	ds.SetString(dicom.SOPInstanceUID, "1.2.3.4.5.6")
	ds.SetUint16(dicom.SamplesPerPixel, 1)
	ds.SetString(dicom.PhotometricInterpretation, "MONOCHROME2")
	ds.SetUint16(dicom.Rows, 8)
	ds.SetUint16(dicom.Columns, 8)
	ds.SetUint16(dicom.BitsAllocated, 8)
	ds.SetUint16(dicom.BitsStored, 8)
	ds.SetUint16(dicom.HighBit, 7)
	ds.SetUint16(dicom.PixelRepresentation, 0)

	meta := &dicom.Dataset{}
	meta.SetString(dicom.MediaStorageSOPClassUID, "1.2.840.10008.5.1.4.1.1.7")
	meta.SetString(dicom.MediaStorageSOPInstanceUID, "1.2.3.4.5.6")
	meta.SetString(dicom.TransferSyntaxUID, dicom.ExplicitVRLittleEndianUID)

	pixel := make([]byte, 64)
	for i := range pixel {
		pixel[i] = byte(i)
	}

	var buf bytes.Buffer
	w, err := dicom.NewWriter(&buf, dicom.ExplicitVRLittleEndian)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFileMeta(meta); err != nil {
		t.Fatalf("WriteFileMeta: %v", err)
	}
	for _, e := range ds.Elements {
		if err := w.WriteElement(e); err != nil {
			t.Fatalf("WriteElement: %v", err)
		}
	}
	if err := w.BeginPixelData(dicom.OB, 64); err != nil {
		t.Fatalf("BeginPixelData: %v", err)
	}
	if err := w.WriteNative(pixel); err != nil {
		t.Fatalf("WriteNative: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestOutputParsesWithReferenceParser(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.dcm")
	if err := os.WriteFile(src, buildGrayObject(t), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	tests := []struct {
		name    string
		destUID string
	}{
		{"native copy", dicom.ExplicitVRLittleEndianUID},
		{"rle", dicom.RLELosslessUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(dir, tt.name+".dcm")
			tr := transcode.New(tt.destUID)
			if err := tr.TranscodeFile(src, dst); err != nil {
				t.Fatalf("TranscodeFile: %v", err)
			}

			res, err := parser.ParseFile(dst,
				parser.WithReadOption(parser.ReadAll),
				parser.WithLargeObjectSize(100*1024*1024),
			)
			if err != nil {
				t.Fatalf("reference parser rejected the output: %v", err)
			}
			if got := res.TransferSyntax.UID().UID(); got != tt.destUID {
				t.Errorf("transfer syntax = %s, want %s", got, tt.destUID)
			}

			ds := res.Dataset
			if v := ds.TryGetUInt16(tag.Rows, 0); v != 8 {
				t.Errorf("Rows = %d, want 8", v)
			}
			if v := ds.TryGetUInt16(tag.BitsStored, 0); v != 8 {
				t.Errorf("BitsStored = %d, want 8", v)
			}
			if pi, ok := ds.GetString(tag.PhotometricInterpretation); !ok || pi != "MONOCHROME2" {
				t.Errorf("PhotometricInterpretation = %q", pi)
			}
			if _, ok := ds.Get(tag.PixelData); !ok {
				t.Error("pixel data element missing")
			}
		})
	}
}
