package dicom

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/flate"
)

// Writer emits a DICOM stream: file meta group first, then dataset elements
// in the writer's transfer syntax, with explicit support for encapsulated
// pixel data framing. Big endian output is not supported; the engine never
// produces it.
type Writer struct {
	raw io.Writer
	w   io.Writer
	ts  *TransferSyntax
	fl  *flate.Writer

	encapOpen bool
}

// NewWriter returns a Writer producing the given transfer syntax.
func NewWriter(w io.Writer, ts *TransferSyntax) (*Writer, error) {
	if ts.BigEndian {
		return nil, fmt.Errorf("%w: big endian output not supported", ErrUnknownTransferSyntax)
	}
	return &Writer{raw: w, w: w, ts: ts}, nil
}

// TransferSyntax returns the dataset syntax this writer produces.
func (w *Writer) TransferSyntax() *TransferSyntax {
	return w.ts
}

// WriteFileMeta writes the preamble, "DICM" signature and the file meta
// group with a recomputed group length. The file meta group is always
// Explicit VR Little Endian. For a deflated syntax the dataset that follows
// is routed through a raw deflate stream.
func (w *Writer) WriteFileMeta(meta *Dataset) error {
	if _, err := w.w.Write(make([]byte, 128)); err != nil {
		return fmt.Errorf("writing preamble: %w", err)
	}
	if _, err := io.WriteString(w.w, "DICM"); err != nil {
		return fmt.Errorf("writing signature: %w", err)
	}

	groupLength := uint32(0)
	for _, e := range meta.Elements {
		if e.Tag == FileMetaInformationGroupLength {
			continue
		}
		groupLength += explicitElementSize(e)
	}
	lengthValue := make([]byte, 4)
	binary.LittleEndian.PutUint32(lengthValue, groupLength)
	meta.Set(&Element{Tag: FileMetaInformationGroupLength, VR: UL, Length: 4, Value: lengthValue})

	for _, e := range meta.Elements {
		if err := w.writeElement(e, ExplicitVRLittleEndian); err != nil {
			return fmt.Errorf("writing file meta element %s: %w", e.Tag, err)
		}
	}

	if w.ts.Deflated {
		fl, err := flate.NewWriter(w.raw, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("creating deflate stream: %w", err)
		}
		w.fl = fl
		w.w = fl
	}
	return nil
}

// SkipFileMeta switches a deflated writer to its compressed stream without
// emitting a file meta group. Used when the caller asked to omit file meta.
func (w *Writer) SkipFileMeta() error {
	if w.ts.Deflated {
		fl, err := flate.NewWriter(w.raw, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("creating deflate stream: %w", err)
		}
		w.fl = fl
		w.w = fl
	}
	return nil
}

// WriteElement writes one dataset element in the writer's syntax.
func (w *Writer) WriteElement(e *Element) error {
	return w.writeElement(e, w.ts)
}

func (w *Writer) writeElement(e *Element, ts *TransferSyntax) error {
	if e.Items != nil || e.VR == SQ {
		return w.writeSequence(e, ts)
	}

	value := e.Value
	length := uint32(len(value))
	if e.BulkFile != "" {
		length = e.Length
	}
	padded := false
	if length%2 != 0 {
		length++
		padded = true
	}

	if err := w.writeHeader(e.Tag, e.VR, length, ts); err != nil {
		return err
	}
	if e.BulkFile != "" {
		f, err := os.Open(e.BulkFile)
		if err != nil {
			return fmt.Errorf("opening spooled value: %w", err)
		}
		defer f.Close()
		if _, err := io.Copy(w.w, f); err != nil {
			return fmt.Errorf("copying spooled value: %w", err)
		}
	} else if _, err := w.w.Write(value); err != nil {
		return err
	}
	if padded {
		if _, err := w.w.Write([]byte{e.VR.paddingByte()}); err != nil {
			return err
		}
	}
	return nil
}

// writeSequence writes a sequence with undefined length and delimited items,
// re-encoding nested elements in the output syntax.
func (w *Writer) writeSequence(e *Element, ts *TransferSyntax) error {
	if err := w.writeHeader(e.Tag, SQ, UndefinedLength, ts); err != nil {
		return err
	}
	for _, item := range e.Items {
		if err := w.delimiter(Item, UndefinedLength); err != nil {
			return err
		}
		for _, nested := range item.Elements {
			if err := w.writeElement(nested, ts); err != nil {
				return fmt.Errorf("writing sequence item element %s: %w", nested.Tag, err)
			}
		}
		if err := w.delimiter(ItemDelimitationItem, 0); err != nil {
			return err
		}
	}
	return w.delimiter(SequenceDelimitationItem, 0)
}

func (w *Writer) writeHeader(tag Tag, vr VR, length uint32, ts *TransferSyntax) error {
	if err := w.tag(tag); err != nil {
		return err
	}
	if ts.Implicit {
		return w.uint32(length)
	}
	if _, err := io.WriteString(w.w, string(vr)); err != nil {
		return err
	}
	if vr.Has32BitLength() {
		if err := w.uint16(0); err != nil {
			return err
		}
		return w.uint32(length)
	}
	if length > math.MaxUint16 {
		return fmt.Errorf("value length %d exceeds 16-bit length field of %s", length, vr)
	}
	return w.uint16(uint16(length))
}

// BeginPixelData opens the pixel data element. A defined length writes a
// native element header; UndefinedLength opens an encapsulated element and
// emits an empty basic offset table item.
func (w *Writer) BeginPixelData(vr VR, length uint32) error {
	if length == UndefinedLength {
		if err := w.writeHeader(PixelData, OB, UndefinedLength, w.ts); err != nil {
			return err
		}
		w.encapOpen = true
		// Empty basic offset table.
		return w.delimiter(Item, 0)
	}
	if length%2 != 0 {
		return fmt.Errorf("native pixel data length %d must be even", length)
	}
	return w.writeHeader(PixelData, vr, length, w.ts)
}

// WriteNative writes raw native pixel sample bytes inside an open
// defined-length pixel data element.
func (w *Writer) WriteNative(p []byte) error {
	_, err := w.w.Write(p)
	return err
}

// WriteFragment writes one encapsulated fragment as a length-prefixed item.
// An odd-length fragment gains exactly one zero pad byte so the item stays
// even, as DICOM framing requires. The returned flag reports whether padding
// was applied.
func (w *Writer) WriteFragment(data []byte) (bool, error) {
	if !w.encapOpen {
		return false, fmt.Errorf("no open encapsulated pixel data element")
	}
	length := uint32(len(data))
	padded := length%2 != 0
	if padded {
		length++
	}
	if err := w.delimiter(Item, length); err != nil {
		return false, err
	}
	if _, err := w.w.Write(data); err != nil {
		return false, err
	}
	if padded {
		if _, err := w.w.Write([]byte{0x00}); err != nil {
			return false, err
		}
	}
	return padded, nil
}

// EndPixelData closes an encapsulated pixel data element with the sequence
// delimitation item. It is a no-op for native pixel data.
func (w *Writer) EndPixelData() error {
	if !w.encapOpen {
		return nil
	}
	w.encapOpen = false
	return w.delimiter(SequenceDelimitationItem, 0)
}

// Close flushes the deflate stream if one is open. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.fl != nil {
		return w.fl.Close()
	}
	return nil
}

func (w *Writer) delimiter(tag Tag, length uint32) error {
	if err := w.tag(tag); err != nil {
		return err
	}
	return w.uint32(length)
}

func (w *Writer) tag(tag Tag) error {
	if err := w.uint16(tag.Group()); err != nil {
		return err
	}
	return w.uint16(tag.Element())
}

func (w *Writer) uint16(v uint16) error {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	_, err := w.w.Write(b)
	return err
}

func (w *Writer) uint32(v uint32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	_, err := w.w.Write(b)
	return err
}

// explicitElementSize is the on-wire size of an element in Explicit VR
// Little Endian, used for the file meta group length.
func explicitElementSize(e *Element) uint32 {
	length := uint32(len(e.Value))
	if e.BulkFile != "" {
		length = e.Length
	}
	if length%2 != 0 {
		length++
	}
	if e.VR.Has32BitLength() {
		return 4 + 2 + 2 + 4 + length
	}
	return 4 + 2 + 2 + length
}
