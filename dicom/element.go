package dicom

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Element is one dataset attribute. Value holds the raw value field bytes in
// the byte order it will be written with (little endian unless stated
// otherwise). Sequence elements carry their items in Items and have a nil
// Value. Elements spooled to disk by the reader carry the file path in
// BulkFile and a nil Value.
type Element struct {
	Tag    Tag
	VR     VR
	Length uint32
	Value  []byte

	Items    []*Dataset
	BulkFile string
}

// NewElement builds an element with the dictionary VR for the tag.
func NewElement(tag Tag, value []byte) *Element {
	return &Element{Tag: tag, VR: DictionaryVR(tag), Length: uint32(len(value)), Value: value}
}

// Uint16 interprets the value as a single unsigned 16-bit integer.
func (e *Element) Uint16() (uint16, bool) {
	if len(e.Value) < 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(e.Value), true
}

// Uint16s interprets the value as a list of unsigned 16-bit integers.
func (e *Element) Uint16s() []uint16 {
	out := make([]uint16, len(e.Value)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(e.Value[2*i:])
	}
	return out
}

// String interprets the value as text, trimming trailing padding.
func (e *Element) String() string {
	return strings.TrimRight(string(e.Value), "\x00 ")
}

// Int interprets the value as an integer string (IS) or binary US/UL value.
func (e *Element) Int() (int, bool) {
	switch e.VR {
	case US:
		v, ok := e.Uint16()
		return int(v), ok
	case UL:
		if len(e.Value) < 4 {
			return 0, false
		}
		return int(binary.LittleEndian.Uint32(e.Value)), true
	default:
		n, err := strconv.Atoi(strings.TrimSpace(e.String()))
		if err != nil {
			return 0, false
		}
		return n, true
	}
}

func uint16Element(tag Tag, v uint16) *Element {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return NewElement(tag, b)
}

func stringElement(tag Tag, s string) *Element {
	e := NewElement(tag, []byte(s))
	if len(e.Value)%2 != 0 {
		e.Value = append(e.Value, e.VR.paddingByte())
		e.Length++
	}
	return e
}

// Dataset is an ordered collection of elements. Order follows ascending tag
// order as required for a written stream; Set keeps insertions sorted.
type Dataset struct {
	Elements []*Element
}

// Get returns the element with the given tag.
func (ds *Dataset) Get(tag Tag) (*Element, bool) {
	for _, e := range ds.Elements {
		if e.Tag == tag {
			return e, true
		}
	}
	return nil, false
}

// GetString returns the trimmed string value of the tag.
func (ds *Dataset) GetString(tag Tag) (string, bool) {
	e, ok := ds.Get(tag)
	if !ok {
		return "", false
	}
	return e.String(), true
}

// GetUint16 returns the unsigned 16-bit value of the tag.
func (ds *Dataset) GetUint16(tag Tag) (uint16, bool) {
	e, ok := ds.Get(tag)
	if !ok {
		return 0, false
	}
	return e.Uint16()
}

// GetInt returns the integer value of the tag (binary or integer-string).
func (ds *Dataset) GetInt(tag Tag) (int, bool) {
	e, ok := ds.Get(tag)
	if !ok {
		return 0, false
	}
	return e.Int()
}

// Set inserts or replaces an element, keeping ascending tag order.
func (ds *Dataset) Set(e *Element) {
	for i, cur := range ds.Elements {
		if cur.Tag == e.Tag {
			ds.Elements[i] = e
			return
		}
	}
	ds.Elements = append(ds.Elements, e)
	sort.SliceStable(ds.Elements, func(i, j int) bool {
		return ds.Elements[i].Tag < ds.Elements[j].Tag
	})
}

// SetUint16 inserts or replaces a single-valued US element.
func (ds *Dataset) SetUint16(tag Tag, v uint16) {
	ds.Set(uint16Element(tag, v))
}

// SetString inserts or replaces a text element, padded to even length.
func (ds *Dataset) SetString(tag Tag, s string) {
	ds.Set(stringElement(tag, s))
}

// Delete removes the element with the given tag if present.
func (ds *Dataset) Delete(tag Tag) {
	for i, e := range ds.Elements {
		if e.Tag == tag {
			ds.Elements = append(ds.Elements[:i], ds.Elements[i+1:]...)
			return
		}
	}
}

func (ds *Dataset) String() string {
	var sb strings.Builder
	for _, e := range ds.Elements {
		fmt.Fprintf(&sb, "%s %s #%d\n", e.Tag, e.VR, e.Length)
	}
	return sb.String()
}
