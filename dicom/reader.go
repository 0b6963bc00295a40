package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
)

const defaultMaxFragmentSize = 1 << 30

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithBulkDataThreshold spools non-pixel element values larger than n bytes
// to temporary files instead of holding them in memory. The caller owns the
// files; BulkFiles lists them for cleanup.
func WithBulkDataThreshold(n int) ReaderOption {
	return func(r *Reader) { r.bulkThreshold = n }
}

// WithMaxFragmentSize caps the bytes buffered for a single pixel data
// fragment or native frame read. Default is 1 GiB.
func WithMaxFragmentSize(n int64) ReaderOption {
	return func(r *Reader) { r.maxFragment = n }
}

// Reader incrementally parses a DICOM stream: file meta first, then one
// element per NextElement call. When the Pixel Data element is reached,
// NextElement returns it with a nil value and the caller takes over the
// low-level reading through PixelReader or NextFragment.
type Reader struct {
	cr   *countReader
	ts   *TransferSyntax
	meta *Dataset

	bulkThreshold int
	maxFragment   int64

	pixelRemaining int64
	inFragments    bool
	bulkFiles      []string
}

// NewReader consumes the preamble, signature and file meta group from r and
// positions the reader at the first dataset element.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	dr := &Reader{cr: &countReader{r: r}, maxFragment: defaultMaxFragmentSize}
	for _, opt := range opts {
		opt(dr)
	}

	if err := dr.readSignature(); err != nil {
		return nil, err
	}
	if err := dr.readFileMeta(); err != nil {
		return nil, err
	}

	uid, ok := dr.meta.GetString(TransferSyntaxUID)
	if !ok {
		return nil, ErrMissingTransferSyntax
	}
	ts, err := Lookup(uid)
	if err != nil {
		return nil, err
	}
	dr.ts = ts

	if ts.Deflated {
		// Everything after the file meta group travels through a raw
		// deflate stream (PS3.5 section A.5).
		dr.cr = &countReader{r: flate.NewReader(dr.cr)}
	}
	return dr, nil
}

// FileMeta returns the parsed file meta group.
func (r *Reader) FileMeta() *Dataset {
	return r.meta
}

// TransferSyntax returns the dataset transfer syntax from the file meta.
func (r *Reader) TransferSyntax() *TransferSyntax {
	return r.ts
}

// BulkFiles lists temporary files created for spooled bulk values.
func (r *Reader) BulkFiles() []string {
	return r.bulkFiles
}

func (r *Reader) readSignature() error {
	preamble := make([]byte, 132)
	if _, err := io.ReadFull(r.cr, preamble); err != nil {
		return fmt.Errorf("reading preamble: %w", err)
	}
	if string(preamble[128:]) != "DICM" {
		return ErrNotDICOM
	}
	return nil
}

// readFileMeta parses the group 0002 elements, which are always encoded in
// Explicit VR Little Endian. The group length element bounds the group.
func (r *Reader) readFileMeta() error {
	tag, vr, length, err := r.readHeader(ExplicitVRLittleEndian)
	if err != nil {
		return fmt.Errorf("reading file meta group length: %w", err)
	}
	if tag != FileMetaInformationGroupLength || vr != UL || length != 4 {
		return fmt.Errorf("unexpected first file meta element %s %s", tag, vr)
	}
	groupLength, err := r.uint32(binary.LittleEndian)
	if err != nil {
		return err
	}

	raw := make([]byte, groupLength)
	if _, err := io.ReadFull(r.cr, raw); err != nil {
		return fmt.Errorf("reading file meta group: %w", err)
	}

	meta := &Dataset{}
	sub := &Reader{cr: &countReader{r: bytes.NewReader(raw)}, maxFragment: r.maxFragment}
	for {
		e, err := sub.readElement(ExplicitVRLittleEndian)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing file meta element: %w", err)
		}
		meta.Set(e)
	}
	r.meta = meta
	return nil
}

// NextElement returns the next dataset element. For the Pixel Data element
// the value is not read: the element carries only the tag, VR and announced
// length, and the caller must drain it before calling NextElement again.
// io.EOF signals a cleanly terminated stream.
func (r *Reader) NextElement() (*Element, error) {
	if r.pixelRemaining > 0 || r.inFragments {
		return nil, ErrPixelDataPending
	}
	return r.nextElement(r.ts)
}

func (r *Reader) nextElement(ts *TransferSyntax) (*Element, error) {
	tag, vr, length, err := r.readHeader(ts)
	if err != nil {
		return nil, err
	}

	if tag == PixelData {
		if length == UndefinedLength {
			r.inFragments = true
		} else {
			r.pixelRemaining = int64(length)
		}
		return &Element{Tag: tag, VR: vr, Length: length}, nil
	}

	if vr == SQ || length == UndefinedLength {
		items, err := r.readSequence(ts, vr, length)
		if err != nil {
			return nil, fmt.Errorf("reading sequence %s: %w", tag, err)
		}
		return &Element{Tag: tag, VR: SQ, Length: UndefinedLength, Items: items}, nil
	}

	if r.bulkThreshold > 0 && int(length) > r.bulkThreshold {
		path, err := r.spool(int64(length))
		if err != nil {
			return nil, fmt.Errorf("spooling %s: %w", tag, err)
		}
		return &Element{Tag: tag, VR: vr, Length: length, BulkFile: path}, nil
	}

	value := make([]byte, length)
	if _, err := io.ReadFull(r.cr, value); err != nil {
		return nil, fmt.Errorf("reading value of %s: %w", tag, err)
	}
	if ts.BigEndian {
		swapToLittleEndian(vr, value)
	}
	return &Element{Tag: tag, VR: vr, Length: length, Value: value}, nil
}

func (r *Reader) readElement(ts *TransferSyntax) (*Element, error) {
	return r.nextElement(ts)
}

// readHeader reads a tag, VR and value length in the given syntax.
func (r *Reader) readHeader(ts *TransferSyntax) (Tag, VR, uint32, error) {
	order := ts.ByteOrder()
	tag, err := r.tag(order)
	if err != nil {
		return 0, "", 0, err
	}

	// Delimitation items have no VR, only a 32-bit length.
	if tag == Item || tag == ItemDelimitationItem || tag == SequenceDelimitationItem {
		length, err := r.uint32(order)
		if err != nil {
			return 0, "", 0, err
		}
		return tag, "", length, nil
	}

	if ts.Implicit {
		length, err := r.uint32(order)
		if err != nil {
			return 0, "", 0, err
		}
		vr := DictionaryVR(tag)
		if length == UndefinedLength && vr == UN {
			vr = SQ
		}
		return tag, vr, length, nil
	}

	vrBytes := make([]byte, 2)
	if _, err := io.ReadFull(r.cr, vrBytes); err != nil {
		return 0, "", 0, fmt.Errorf("reading VR: %w", err)
	}
	vr := VR(vrBytes)

	if vr.Has32BitLength() {
		if _, err := r.uint16(order); err != nil {
			return 0, "", 0, fmt.Errorf("reading reserved field: %w", err)
		}
		length, err := r.uint32(order)
		return tag, vr, length, err
	}
	length, err := r.uint16(order)
	return tag, vr, uint32(length), err
}

// readSequence parses sequence items into nested datasets. Undefined-length
// UN values are encoded in the implicit syntax regardless of the stream
// syntax (PS3.5 section 6.2.2).
func (r *Reader) readSequence(ts *TransferSyntax, vr VR, length uint32) ([]*Dataset, error) {
	itemSyntax := ts
	if vr == UN {
		itemSyntax = ImplicitVRLittleEndian
	}

	var items []*Dataset
	remaining := int64(length)
	for {
		if length != UndefinedLength && remaining <= 0 {
			return items, nil
		}
		start := r.cr.bytesRead
		tag, _, itemLen, err := r.readHeader(itemSyntax)
		if err != nil {
			return nil, err
		}
		if tag == SequenceDelimitationItem {
			return items, nil
		}
		if tag != Item {
			return nil, fmt.Errorf("expected item tag, got %s", tag)
		}
		item, err := r.readItem(itemSyntax, itemLen)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		remaining -= r.cr.bytesRead - start
	}
}

func (r *Reader) readItem(ts *TransferSyntax, length uint32) (*Dataset, error) {
	ds := &Dataset{}
	remaining := int64(length)
	for {
		if length != UndefinedLength && remaining <= 0 {
			return ds, nil
		}
		start := r.cr.bytesRead
		e, err := r.nextElement(ts)
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		if e.Tag == ItemDelimitationItem {
			return ds, nil
		}
		ds.Set(e)
		remaining -= r.cr.bytesRead - start
	}
}

// PixelReader returns a reader over the native pixel data value announced by
// the last NextElement call. It must be drained before NextElement is called
// again.
func (r *Reader) PixelReader() io.Reader {
	return &pixelValueReader{r}
}

// PixelRemaining reports the unread byte count of the native pixel value.
func (r *Reader) PixelRemaining() int64 {
	return r.pixelRemaining
}

type pixelValueReader struct {
	r *Reader
}

func (pr *pixelValueReader) Read(p []byte) (int, error) {
	if pr.r.pixelRemaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > pr.r.pixelRemaining {
		p = p[:pr.r.pixelRemaining]
	}
	n, err := pr.r.cr.Read(p)
	pr.r.pixelRemaining -= int64(n)
	return n, err
}

// NextFragment returns the next encapsulated pixel data fragment, including
// the basic offset table item, which is always first. io.EOF is returned at
// the sequence delimitation item.
func (r *Reader) NextFragment() ([]byte, error) {
	if !r.inFragments {
		return nil, io.EOF
	}
	tag, _, length, err := r.readHeader(ExplicitVRLittleEndian)
	if err != nil {
		return nil, err
	}
	switch tag {
	case SequenceDelimitationItem:
		r.inFragments = false
		return nil, io.EOF
	case Item:
		if int64(length) > r.maxFragment {
			return nil, fmt.Errorf("%w: %d bytes", ErrFragmentTooLarge, length)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r.cr, buf); err != nil {
			return nil, fmt.Errorf("reading fragment: %w", err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unexpected tag %s inside encapsulated pixel data", tag)
	}
}

func (r *Reader) spool(n int64) (string, error) {
	f, err := os.CreateTemp("", "dicom-bulk-*")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.CopyN(f, r.cr, n); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	r.bulkFiles = append(r.bulkFiles, f.Name())
	return f.Name(), nil
}

func (r *Reader) tag(order binary.ByteOrder) (Tag, error) {
	group, err := r.uint16(order)
	if err != nil {
		return 0, err
	}
	element, err := r.uint16(order)
	if err != nil {
		return 0, err
	}
	return NewTag(group, element), nil
}

func (r *Reader) uint16(order binary.ByteOrder) (uint16, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r.cr, b); err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

func (r *Reader) uint32(order binary.ByteOrder) (uint32, error) {
	b := make([]byte, 4)
	if _, err := io.ReadFull(r.cr, b); err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// swapToLittleEndian normalizes big endian values in place so Element
// accessors and the writer can assume little endian throughout.
func swapToLittleEndian(vr VR, b []byte) {
	var unit int
	switch vr {
	case US, SS, OW, AT:
		unit = 2
	case UL, SL, FL, OF, OL:
		unit = 4
	case FD, OD:
		unit = 8
	default:
		return
	}
	for i := 0; i+unit <= len(b); i += unit {
		for j, k := i, i+unit-1; j < k; j, k = j+1, k-1 {
			b[j], b[k] = b[k], b[j]
		}
	}
}

// countReader tracks how many bytes have been consumed, mirroring the cursor
// bookkeeping needed for defined-length sequence parsing.
type countReader struct {
	r         io.Reader
	bytesRead int64
}

func (cr *countReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.bytesRead += int64(n)
	return n, err
}
