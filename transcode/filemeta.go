package transcode

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/cocosip/go-dicom-transcode/dicom"
)

const (
	implementationClassUID    = "1.2.826.0.1.3680043.9.7594.1.2"
	implementationVersionName = "GO-DCM-TRANS-1.0"
)

// buildFileMeta constructs a fresh file meta group for the destination
// transfer syntax, mirroring the dataset's SOP class and instance UIDs.
func buildFileMeta(ds *dicom.Dataset, destUID string, includeVersionName bool) *dicom.Dataset {
	meta := &dicom.Dataset{}
	meta.Set(&dicom.Element{
		Tag:    dicom.FileMetaInformationVersion,
		VR:     dicom.OB,
		Length: 2,
		Value:  []byte{0x00, 0x01},
	})
	if v, ok := ds.GetString(dicom.SOPClassUID); ok {
		meta.SetString(dicom.MediaStorageSOPClassUID, v)
	}
	if v, ok := ds.GetString(dicom.SOPInstanceUID); ok {
		meta.SetString(dicom.MediaStorageSOPInstanceUID, v)
	}
	meta.SetString(dicom.TransferSyntaxUID, destUID)
	meta.SetString(dicom.ImplementationClassUID, implementationClassUID)
	if includeVersionName {
		meta.SetString(dicom.ImplementationVersionName, implementationVersionName)
	}
	return meta
}

// retainFileMeta reuses the source file meta group, updating the transfer
// syntax UID and keeping the media storage UIDs aligned with the dataset.
func retainFileMeta(src, ds *dicom.Dataset, destUID string) *dicom.Dataset {
	meta := &dicom.Dataset{}
	for _, e := range src.Elements {
		meta.Set(e)
	}
	meta.SetString(dicom.TransferSyntaxUID, destUID)
	if v, ok := ds.GetString(dicom.SOPInstanceUID); ok {
		meta.SetString(dicom.MediaStorageSOPInstanceUID, v)
	}
	return meta
}

// newUID derives a DICOM UID from a random UUID under the "2.25" arc
// (PS3.5 B.2). Used to issue SOP instance UIDs for lossy-derived objects.
func newUID() string {
	u := uuid.New()
	var n big.Int
	n.SetBytes(u[:])
	return "2.25." + n.String()
}
