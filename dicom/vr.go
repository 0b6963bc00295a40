package dicom

// VR is a two-letter DICOM value representation code.
type VR string

const (
	AE VR = "AE"
	AS VR = "AS"
	AT VR = "AT"
	CS VR = "CS"
	DA VR = "DA"
	DS VR = "DS"
	DT VR = "DT"
	FL VR = "FL"
	FD VR = "FD"
	IS VR = "IS"
	LO VR = "LO"
	LT VR = "LT"
	OB VR = "OB"
	OD VR = "OD"
	OF VR = "OF"
	OL VR = "OL"
	OW VR = "OW"
	PN VR = "PN"
	SH VR = "SH"
	SL VR = "SL"
	SQ VR = "SQ"
	SS VR = "SS"
	ST VR = "ST"
	TM VR = "TM"
	UC VR = "UC"
	UI VR = "UI"
	UL VR = "UL"
	UN VR = "UN"
	UR VR = "UR"
	US VR = "US"
	UT VR = "UT"
)

// Has32BitLength reports whether the VR uses the 2-byte-reserved, 32-bit
// length encoding in explicit VR transfer syntaxes (PS3.5 section 7.1.2).
func (vr VR) Has32BitLength() bool {
	switch vr {
	case OB, OD, OF, OL, OW, SQ, UC, UR, UT, UN:
		return true
	}
	return false
}

// paddingByte returns the byte used to pad odd-length values of this VR.
func (vr VR) paddingByte() byte {
	switch vr {
	case UI:
		return 0x00
	case AE, AS, CS, DA, DS, DT, IS, LO, LT, PN, SH, ST, TM, UC, UR, UT:
		return 0x20
	}
	return 0x00
}

// dictionary maps the tags this engine reads or synthesizes to their VR, for
// implicit VR input and element construction. Unknown tags read from implicit
// VR streams fall back to UN, which is written with a 32-bit length.
var dictionary = map[Tag]VR{
	FileMetaInformationGroupLength: UL,
	FileMetaInformationVersion:     OB,
	MediaStorageSOPClassUID:        UI,
	MediaStorageSOPInstanceUID:     UI,
	TransferSyntaxUID:              UI,
	ImplementationClassUID:         UI,
	ImplementationVersionName:      SH,

	SOPClassUID:    UI,
	SOPInstanceUID: UI,

	SamplesPerPixel:           US,
	PhotometricInterpretation: CS,
	PlanarConfiguration:       US,
	NumberOfFrames:            IS,
	Rows:                      US,
	Columns:                   US,
	BitsAllocated:             US,
	BitsStored:                US,
	HighBit:                   US,
	PixelRepresentation:       US,

	RedPaletteColorLookupTableDescriptor:   US,
	GreenPaletteColorLookupTableDescriptor: US,
	BluePaletteColorLookupTableDescriptor:  US,
	RedPaletteColorLookupTableData:         OW,
	GreenPaletteColorLookupTableData:       OW,
	BluePaletteColorLookupTableData:        OW,

	LossyImageCompression:       CS,
	LossyImageCompressionRatio:  DS,
	LossyImageCompressionMethod: CS,

	PixelData: OW,
}

// DictionaryVR returns the VR recorded for the tag, or UN when the tag is not
// in the engine's dictionary. Overlay repeating-group elements are resolved
// by element offset.
func DictionaryVR(tag Tag) VR {
	if vr, ok := dictionary[tag]; ok {
		return vr
	}
	if IsOverlayGroup(tag.Group()) {
		switch tag.Element() {
		case OverlayRowsElem, OverlayColumnsElem, OverlayBitsAllocatedElem, OverlayBitPositionElem:
			return US
		case OverlayOriginElem:
			return SS
		case OverlayTypeElem:
			return CS
		case OverlayDataElem:
			return OB
		}
	}
	return UN
}
