package dicom

import "fmt"

// Tag is a DICOM data element tag: group number in the high 16 bits,
// element number in the low 16 bits.
type Tag uint32

// NewTag builds a Tag from a group and element number.
func NewTag(group, element uint16) Tag {
	return Tag(uint32(group)<<16 | uint32(element))
}

// Group returns the group number of the tag.
func (t Tag) Group() uint16 {
	return uint16(t >> 16)
}

// Element returns the element number of the tag.
func (t Tag) Element() uint16 {
	return uint16(t & 0xFFFF)
}

func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group(), t.Element())
}

// Tags referenced by the transcoding engine. Values from DICOM PS3.6.
const (
	FileMetaInformationGroupLength Tag = 0x00020000
	FileMetaInformationVersion     Tag = 0x00020001
	MediaStorageSOPClassUID        Tag = 0x00020002
	MediaStorageSOPInstanceUID     Tag = 0x00020003
	TransferSyntaxUID              Tag = 0x00020010
	ImplementationClassUID         Tag = 0x00020012
	ImplementationVersionName      Tag = 0x00020013

	SOPClassUID    Tag = 0x00080016
	SOPInstanceUID Tag = 0x00080018

	SamplesPerPixel           Tag = 0x00280002
	PhotometricInterpretation Tag = 0x00280004
	PlanarConfiguration       Tag = 0x00280006
	NumberOfFrames            Tag = 0x00280008
	Rows                      Tag = 0x00280010
	Columns                   Tag = 0x00280011
	BitsAllocated             Tag = 0x00280100
	BitsStored                Tag = 0x00280101
	HighBit                   Tag = 0x00280102
	PixelRepresentation       Tag = 0x00280103

	RedPaletteColorLookupTableDescriptor   Tag = 0x00281101
	GreenPaletteColorLookupTableDescriptor Tag = 0x00281102
	BluePaletteColorLookupTableDescriptor  Tag = 0x00281103
	RedPaletteColorLookupTableData         Tag = 0x00281201
	GreenPaletteColorLookupTableData       Tag = 0x00281202
	BluePaletteColorLookupTableData        Tag = 0x00281203

	LossyImageCompression       Tag = 0x00282110
	LossyImageCompressionRatio  Tag = 0x00282112
	LossyImageCompressionMethod Tag = 0x00282114

	PixelData Tag = 0x7FE00010

	Item                    Tag = 0xFFFEE000
	ItemDelimitationItem    Tag = 0xFFFEE00D
	SequenceDelimitationItem Tag = 0xFFFEE0DD
)

// Overlay group tags. Overlay attributes repeat across groups 6000..601E,
// two apart. These constants are the element offsets within a group.
const (
	overlayGroupFirst uint16 = 0x6000
	overlayGroupLast  uint16 = 0x601E

	OverlayRowsElem          uint16 = 0x0010
	OverlayColumnsElem       uint16 = 0x0011
	OverlayTypeElem          uint16 = 0x0040
	OverlayOriginElem        uint16 = 0x0050
	OverlayBitsAllocatedElem uint16 = 0x0100
	OverlayBitPositionElem   uint16 = 0x0102
	OverlayDataElem          uint16 = 0x3000
)

// OverlayTag builds the tag for an overlay element in the given repeating group.
func OverlayTag(group uint16, element uint16) Tag {
	return NewTag(group, element)
}

// IsOverlayGroup reports whether group belongs to the overlay repeating range.
func IsOverlayGroup(group uint16) bool {
	return group >= overlayGroupFirst && group <= overlayGroupLast && group%2 == 0
}

// UndefinedLength marks data elements whose value length is not known up
// front (encapsulated pixel data, undefined-length sequences).
const UndefinedLength uint32 = 0xFFFFFFFF
