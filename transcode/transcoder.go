// Package transcode converts the pixel data of a DICOM stream between
// transfer syntaxes, frame by frame, while keeping the surrounding dataset
// attributes consistent with the new pixel representation.
package transcode

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/cocosip/go-dicom-transcode/codec"
	"github.com/cocosip/go-dicom-transcode/dicom"
)

// Transcoder rewrites DICOM streams into a destination transfer syntax.
// A Transcoder is stateless across calls; one instance may serve many
// Transcode calls sequentially.
type Transcoder struct {
	destUID  string
	registry *codec.Registry

	maxPixelError  int
	blockSize      int
	bitsCompressed int
	quality        int

	retainMeta         bool
	includeMeta        bool
	includeVersionName bool
	nullify            bool

	closeInput    bool
	closeOutput   bool
	deleteBulk    bool
	bulkThreshold int
	maxFrameSize  int64

	logger *slog.Logger
}

// New returns a Transcoder targeting the given transfer syntax UID.
func New(destinationUID string, opts ...Option) *Transcoder {
	t := &Transcoder{
		destUID:            destinationUID,
		registry:           codec.Default(),
		maxPixelError:      -1,
		blockSize:          1,
		includeMeta:        true,
		includeVersionName: true,
		maxFrameSize:       1 << 30,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcode reads one DICOM object from r and writes the transcoded object
// to w. Stream cleanup configured through options runs on every exit path.
func (t *Transcoder) Transcode(r io.Reader, w io.Writer) (err error) {
	var dr *dicom.Reader
	defer func() {
		if t.deleteBulk && dr != nil {
			for _, f := range dr.BulkFiles() {
				os.Remove(f)
			}
		}
		if t.closeInput {
			if c, ok := r.(io.Closer); ok {
				if cerr := c.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}
		if t.closeOutput {
			if c, ok := w.(io.Closer); ok {
				if cerr := c.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}
	}()

	ropts := []dicom.ReaderOption{dicom.WithMaxFragmentSize(t.maxFrameSize)}
	if t.bulkThreshold > 0 {
		ropts = append(ropts, dicom.WithBulkDataThreshold(t.bulkThreshold))
	}
	dr, err = dicom.NewReader(r, ropts...)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}

	j := &job{t: t, dr: dr, ds: &dicom.Dataset{}, srcTS: dr.TransferSyntax()}

	for {
		e, rerr := dr.NextElement()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading dataset: %w", rerr)
		}
		if e.Tag == dicom.PixelData {
			j.pixel = e
			break
		}
		j.ds.Set(e)
	}

	if j.pixel == nil || t.nullify {
		return j.writeWithoutPixels(w)
	}

	if j.srcDesc, err = DeriveDescriptor(j.ds, 0); err != nil {
		return err
	}
	if !j.srcTS.Encapsulated {
		j.srcDesc.PixelDataLength = int64(j.pixel.Length)
	}
	if err = j.resolveDestination(); err != nil {
		return err
	}
	if err = j.adjust(); err != nil {
		return err
	}
	return j.run(w)
}

// TranscodeFile transcodes src into dst on the filesystem.
func (t *Transcoder) TranscodeFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := t.Transcode(in, out); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// conversionPlan records which raster transformations each frame needs.
type conversionPlan struct {
	interleave    bool
	expandPalette bool
	ybrToRGB      bool
	maskStored    bool
}

// job carries the per-call pipeline state.
type job struct {
	t  *Transcoder
	dr *dicom.Reader

	ds    *dicom.Dataset
	pixel *dicom.Element

	srcTS, destTS     *dicom.TransferSyntax
	srcDesc, compDesc *ImageDescriptor

	decoder, encoder codec.Codec
	encOpts          codec.Options
	verifier         *verifier

	plan     conversionPlan
	palette  *paletteLUT
	overlays []*overlayPlane
	arena    frameArena
	frame    int
}

// resolveDestination binds both codecs before any frame is touched and
// walks the destination's fallback chain until a syntax can carry the image.
// Missing codecs are configuration errors.
func (j *job) resolveDestination() error {
	t := j.t
	dest, err := dicom.Lookup(t.destUID)
	if err != nil {
		return fmt.Errorf("%w: destination %q", ErrUnsupportedTransferSyntax, t.destUID)
	}

	// 1-bit bitmaps stay in the source encoding, copied through without
	// touching a codec in either direction.
	if j.srcDesc.IsBitmap() {
		j.destTS = j.srcTS
		return nil
	}

	if j.srcTS.Encapsulated {
		c, err := t.registry.Get(j.srcTS.UID)
		if err != nil {
			return fmt.Errorf("%w: no codec for source %s", ErrUnsupportedTransferSyntax, j.srcTS.Name)
		}
		j.decoder = c
	}

	for dest.Encapsulated {
		bits := j.srcDesc.BitsStored
		signed := j.srcDesc.Signed
		if t.bitsCompressed > 0 && t.bitsCompressed < bits {
			bits = t.bitsCompressed
		}
		// Palette images headed into lossy compression are expanded to
		// 8-bit RGB before encoding.
		if dest.Lossy && colorModelOf(j.srcDesc.Photometric) == ModelPalette {
			bits, signed = 8, false
		}
		if dest.CanCarry(bits, signed) {
			break
		}
		fb := dest.Fallback()
		if fb == nil {
			fb = dicom.ExplicitVRLittleEndian
		}
		t.logger.Info("destination cannot carry image, downgrading",
			"from", dest.Name, "to", fb.Name, "bitsStored", bits, "signed", signed)
		dest = fb
	}

	if dest.Encapsulated {
		c, err := t.registry.Get(dest.UID)
		if err != nil {
			return fmt.Errorf("%w: no codec for destination %s", ErrUnsupportedTransferSyntax, dest.Name)
		}
		j.encoder = c
	}
	j.destTS = dest
	return nil
}

// adjust rewrites the dataset so its attributes describe the pixel
// representation the destination will carry, and fixes the per-frame
// conversion plan. Runs after resolveDestination and before any writing.
func (j *job) adjust() error {
	t := j.t
	d := j.srcDesc
	ds := j.ds

	if d.IsBitmap() {
		comp := *d
		j.compDesc = &comp
		return nil
	}

	if d.Planar == 1 && !j.srcTS.Encapsulated {
		j.plan.interleave = true
	}

	model := colorModelOf(d.Photometric)
	if model == ModelPalette && j.destTS.Lossy {
		lut, err := paletteFromDataset(ds)
		if err != nil {
			return fmt.Errorf("expanding palette color: %w", err)
		}
		j.palette = lut
		j.plan.expandPalette = true
		ds.SetUint16(dicom.SamplesPerPixel, 3)
		ds.SetUint16(dicom.BitsAllocated, 8)
		ds.SetUint16(dicom.BitsStored, 8)
		ds.SetUint16(dicom.HighBit, 7)
		ds.SetUint16(dicom.PixelRepresentation, 0)
		ds.SetString(dicom.PhotometricInterpretation, RGB)
		removePaletteElements(ds)
		t.logger.Warn("expanding palette color to RGB for lossy destination",
			"destination", j.destTS.Name)
		model = ModelRGB
	}

	// Decoders hand back RGB rasters; only native YBR sources still carry
	// luma/chroma samples at this point.
	rasterYBR := model == ModelYBR && !j.srcTS.Encapsulated
	if rasterYBR && d.Photometric == YBRFull422 {
		return &GeometryError{Reason: "subsampled YBR_FULL_422 native pixel data"}
	}
	switch {
	case model == ModelYBR && j.destTS.NeedsYBR:
		// The encoder converts internally and expects RGB samples.
		ds.SetString(dicom.PhotometricInterpretation, YBRFull422)
		j.plan.ybrToRGB = rasterYBR
	case model == ModelYBR && j.destTS.Encapsulated:
		j.plan.ybrToRGB = rasterYBR
		ds.SetString(dicom.PhotometricInterpretation, RGB)
	case model == ModelYBR && !j.srcTS.Encapsulated:
		// Native to native passes samples through untouched.
	case model == ModelYBR:
		ds.SetString(dicom.PhotometricInterpretation, RGB)
	case model == ModelRGB && j.destTS.NeedsYBR:
		ds.SetString(dicom.PhotometricInterpretation, YBRFull422)
	}

	if t.bitsCompressed > 0 && !j.plan.expandPalette {
		if cur, ok := ds.GetInt(dicom.BitsStored); ok && t.bitsCompressed < cur {
			ds.SetUint16(dicom.BitsStored, uint16(t.bitsCompressed))
			ds.SetUint16(dicom.HighBit, uint16(t.bitsCompressed-1))
			j.plan.maskStored = true
		}
	}

	j.overlays = embeddedOverlays(ds, d)

	if j.destTS.Lossy {
		ds.SetString(dicom.LossyImageCompression, "01")
		if m := lossyMethod(j.destTS); m != "" {
			ds.SetString(dicom.LossyImageCompressionMethod, m)
		}
		// The lossy result is a new object and must not reuse the
		// source's SOP instance UID.
		ds.SetString(dicom.SOPInstanceUID, newUID())
	}

	// Planar configuration of the output. Encoders receive interleaved
	// rasters either way; the attribute reflects the encoded form.
	spp, _ := ds.GetInt(dicom.SamplesPerPixel)
	if spp == 3 {
		desired := uint16(0)
		if j.destTS.Encapsulated {
			desired = j.destTS.PlanarDefault
		}
		if uint16(d.Planar) != desired || j.plan.expandPalette {
			ds.SetUint16(dicom.PlanarConfiguration, desired)
		}
	}

	comp, err := DeriveDescriptor(ds, 0)
	if err != nil {
		return err
	}
	comp.Frames = d.Frames
	j.compDesc = comp

	if j.destTS.Lossy && t.quality > 0 {
		j.encOpts = &codec.BaseOptions{Quality: t.quality}
	}
	if t.maxPixelError >= 0 && j.destTS.Encapsulated {
		j.verifier = &verifier{budget: t.maxPixelError, blockSize: t.blockSize, codec: j.encoder}
	}
	return nil
}

// run drives the frame loop and writes the output stream.
func (j *job) run(w io.Writer) error {
	d := j.srcDesc
	if int64(d.FrameLength()) > j.t.maxFrameSize || int64(j.compDesc.FrameLength()) > j.t.maxFrameSize {
		return &GeometryError{Reason: "frame exceeds configured size limit"}
	}

	if j.srcTS.Encapsulated {
		// The basic offset table item is always first; the engine
		// recomputes framing itself and discards it.
		if _, err := j.dr.NextFragment(); err != nil {
			return fmt.Errorf("reading basic offset table: %w", err)
		}
	} else {
		need := int64(d.FrameLength()) * int64(d.Frames)
		if int64(j.pixel.Length) < need {
			return &GeometryError{Reason: fmt.Sprintf("pixel data %d bytes cannot hold %d frames of %d bytes",
				j.pixel.Length, d.Frames, d.FrameLength())}
		}
	}

	// Embedded overlays force buffering: the overlay data elements precede
	// pixel data in tag order but their bits are only known after every
	// frame has been read.
	if len(j.overlays) > 0 {
		return j.runBuffered(w)
	}

	dw, err := j.writeHead(w)
	if err != nil {
		return err
	}

	if d.IsBitmap() && j.srcTS.Encapsulated {
		// Encapsulated bitmap passthrough: no codec is bound, the source
		// fragments are copied as they are.
		if err := dw.BeginPixelData(dicom.OB, dicom.UndefinedLength); err != nil {
			return err
		}
		for {
			frag, err := j.dr.NextFragment()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if _, err := dw.WriteFragment(frag); err != nil {
				return err
			}
		}
		if err := dw.EndPixelData(); err != nil {
			return err
		}
	} else if j.destTS.Encapsulated {
		if err := dw.BeginPixelData(dicom.OB, dicom.UndefinedLength); err != nil {
			return err
		}
		for j.frame = 0; j.frame < d.Frames; j.frame++ {
			raster, err := j.nextRaster()
			if err != nil {
				return err
			}
			data, err := j.encodeFrame(raster)
			if err != nil {
				return err
			}
			padded, err := dw.WriteFragment(data)
			if err != nil {
				return fmt.Errorf("writing frame %d: %w", j.frame, err)
			}
			if padded {
				j.t.logger.Info("padded odd-length fragment", "frame", j.frame, "bytes", len(data))
			}
		}
		if err := dw.EndPixelData(); err != nil {
			return err
		}
	} else {
		frameLen := j.compDesc.FrameLength()
		total := int64(frameLen) * int64(d.Frames)
		pad := total%2 != 0
		if pad {
			total++
		}
		if total > int64(dicom.UndefinedLength)-1 {
			return &GeometryError{Reason: "native pixel data exceeds the 32-bit length field"}
		}
		if err := dw.BeginPixelData(j.pixelVR(), uint32(total)); err != nil {
			return err
		}
		for j.frame = 0; j.frame < d.Frames; j.frame++ {
			raster, err := j.nextRaster()
			if err != nil {
				return err
			}
			if len(raster) != frameLen {
				return &GeometryError{Reason: fmt.Sprintf("frame %d raster is %d bytes, expected %d",
					j.frame, len(raster), frameLen)}
			}
			if err := dw.WriteNative(raster); err != nil {
				return fmt.Errorf("writing frame %d: %w", j.frame, err)
			}
		}
		if pad {
			if err := dw.WriteNative([]byte{0}); err != nil {
				return err
			}
			j.t.logger.Info("padded odd-length pixel data", "bytes", total-1)
		}
	}

	if err := j.drainSource(); err != nil {
		return err
	}
	if err := j.writeTrailing(dw); err != nil {
		return err
	}
	return dw.Close()
}

// runBuffered processes every frame before writing anything, so attributes
// that depend on the whole pixel stream (extracted overlays, the achieved
// compression ratio) land in the dataset ahead of the pixel data element.
func (j *job) runBuffered(w io.Writer) error {
	d := j.srcDesc
	frames := make([][]byte, 0, d.Frames)
	var rawBytes, encodedBytes int64

	for j.frame = 0; j.frame < d.Frames; j.frame++ {
		raster, err := j.nextRaster()
		if err != nil {
			return err
		}
		rawBytes += int64(len(raster))
		if j.destTS.Encapsulated {
			data, err := j.encodeFrame(raster)
			if err != nil {
				return err
			}
			encodedBytes += int64(len(data))
			frames = append(frames, data)
		} else {
			cp := make([]byte, len(raster))
			copy(cp, raster)
			frames = append(frames, cp)
		}
	}
	if err := j.drainSource(); err != nil {
		return err
	}

	for _, o := range j.overlays {
		o.apply(j.ds)
	}
	if j.destTS.Lossy && encodedBytes > 0 {
		ratio := float64(rawBytes) / float64(encodedBytes)
		j.ds.SetString(dicom.LossyImageCompressionRatio, strconv.FormatFloat(ratio, 'f', 2, 64))
	}

	dw, err := j.writeHead(w)
	if err != nil {
		return err
	}
	if j.destTS.Encapsulated {
		if err := dw.BeginPixelData(dicom.OB, dicom.UndefinedLength); err != nil {
			return err
		}
		for i, data := range frames {
			padded, err := dw.WriteFragment(data)
			if err != nil {
				return fmt.Errorf("writing frame %d: %w", i, err)
			}
			if padded {
				j.t.logger.Info("padded odd-length fragment", "frame", i, "bytes", len(data))
			}
		}
		if err := dw.EndPixelData(); err != nil {
			return err
		}
	} else {
		var total int64
		for _, f := range frames {
			total += int64(len(f))
		}
		pad := total%2 != 0
		if pad {
			total++
		}
		if err := dw.BeginPixelData(j.pixelVR(), uint32(total)); err != nil {
			return err
		}
		for _, f := range frames {
			if err := dw.WriteNative(f); err != nil {
				return err
			}
		}
		if pad {
			if err := dw.WriteNative([]byte{0}); err != nil {
				return err
			}
			j.t.logger.Info("padded odd-length pixel data", "bytes", total-1)
		}
	}
	if err := j.writeTrailing(dw); err != nil {
		return err
	}
	return dw.Close()
}

// nextRaster produces the next source frame as an interleaved little-endian
// raster, with every planned conversion applied. The returned slice belongs
// to the arena and is only valid until the next call.
func (j *job) nextRaster() ([]byte, error) {
	d := j.srcDesc
	var buf []byte
	if j.srcTS.Encapsulated {
		data, err := j.nextFrameData()
		if err != nil {
			return nil, err
		}
		res, err := j.decoder.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding frame %d: %w", j.frame, err)
		}
		if res.Width > 0 && (res.Width != d.Columns || res.Height != d.Rows) {
			return nil, &GeometryError{Reason: fmt.Sprintf("frame %d decoded as %dx%d, dataset says %dx%d",
				j.frame, res.Width, res.Height, d.Columns, d.Rows)}
		}
		if len(res.PixelData) != d.FrameLength() {
			return nil, &GeometryError{Reason: fmt.Sprintf("frame %d decoded to %d bytes, expected %d",
				j.frame, len(res.PixelData), d.FrameLength())}
		}
		buf = j.arena.get(d.FrameLength())
		copy(buf, res.PixelData)
	} else {
		buf = j.arena.get(d.FrameLength())
		if _, err := io.ReadFull(j.dr.PixelReader(), buf); err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", j.frame, err)
		}
		// The reader normalizes element values but hands pixel bytes
		// through verbatim; big endian words are swapped here.
		if j.srcTS.BigEndian && d.BytesPerSample() == 2 {
			swapWords(buf)
		}
	}
	if d.IsBitmap() {
		return buf, nil
	}

	if j.plan.interleave {
		dst := j.arena.getScratch(len(buf))
		planarToInterleaved(dst, buf, d.Rows*d.Columns, d.SamplesPerPixel, d.BytesPerSample())
		j.arena.swap()
		buf = dst
	}
	for _, o := range j.overlays {
		o.extractFrame(buf, d)
		o.clearFrame(buf, d)
	}
	if j.plan.expandPalette {
		dst := j.arena.getScratch(d.Rows * d.Columns * 3)
		j.palette.expand(dst, buf, d.BytesPerSample())
		j.arena.swap()
		buf = dst
	}
	if j.plan.ybrToRGB {
		ybrFullToRGB(buf)
	}
	if j.plan.maskStored {
		maskToStoredBits(buf, j.compDesc)
	}
	return buf, nil
}

// nextFrameData maps encapsulated fragments onto frames: a single-frame
// object owns every fragment, a multi-frame object must carry exactly one
// fragment per frame.
func (j *job) nextFrameData() ([]byte, error) {
	if j.srcDesc.Frames == 1 {
		var all []byte
		for {
			frag, err := j.dr.NextFragment()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			all = append(all, frag...)
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("encapsulated pixel data has no fragments")
		}
		return all, nil
	}
	frag, err := j.dr.NextFragment()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: fragments exhausted at frame %d of %d",
			ErrFrameCountMismatch, j.frame, j.srcDesc.Frames)
	}
	return frag, err
}

func (j *job) encodeFrame(raster []byte) ([]byte, error) {
	c := j.compDesc
	data, err := j.encoder.Encode(codec.EncodeParams{
		PixelData:     raster,
		Width:         c.Columns,
		Height:        c.Rows,
		Components:    c.SamplesPerPixel,
		BitsAllocated: c.BitsAllocated,
		BitsStored:    c.BitsStored,
		Signed:        c.Signed,
		Options:       j.encOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding frame %d: %w", j.frame, err)
	}
	if j.verifier != nil {
		if err := j.verifier.verify(j.frame, data, raster, c); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// drainSource consumes what remains of the source pixel element so the
// trailing dataset elements can be read.
func (j *job) drainSource() error {
	if j.srcTS.Encapsulated {
		extra := 0
		for {
			_, err := j.dr.NextFragment()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			extra++
		}
		if extra > 0 && j.srcDesc.Frames > 1 {
			return fmt.Errorf("%w: %d extra fragments after %d frames",
				ErrFrameCountMismatch, extra, j.srcDesc.Frames)
		}
		return nil
	}
	_, err := io.Copy(io.Discard, j.dr.PixelReader())
	return err
}

// writeHead writes the file meta group and every dataset element preceding
// pixel data.
func (j *job) writeHead(w io.Writer) (*dicom.Writer, error) {
	dw, err := dicom.NewWriter(w, j.destTS)
	if err != nil {
		return nil, err
	}
	if !j.t.includeMeta {
		if err := dw.SkipFileMeta(); err != nil {
			return nil, err
		}
	} else {
		var meta *dicom.Dataset
		if j.t.retainMeta {
			meta = retainFileMeta(j.dr.FileMeta(), j.ds, j.destTS.UID)
		} else {
			meta = buildFileMeta(j.ds, j.destTS.UID, j.t.includeVersionName)
		}
		if err := dw.WriteFileMeta(meta); err != nil {
			return nil, err
		}
	}
	for _, e := range j.ds.Elements {
		if err := dw.WriteElement(e); err != nil {
			return nil, fmt.Errorf("writing element %s: %w", e.Tag, err)
		}
	}
	return dw, nil
}

func (j *job) writeTrailing(dw *dicom.Writer) error {
	for {
		e, err := j.dr.NextElement()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading trailing element: %w", err)
		}
		if err := dw.WriteElement(e); err != nil {
			return fmt.Errorf("writing trailing element %s: %w", e.Tag, err)
		}
	}
}

// writeWithoutPixels copies the dataset when there is nothing to transcode:
// the source has no pixel data, or pixel data was asked to be nullified.
func (j *job) writeWithoutPixels(w io.Writer) error {
	dest, err := dicom.Lookup(j.t.destUID)
	if err != nil {
		return fmt.Errorf("%w: destination %q", ErrUnsupportedTransferSyntax, j.t.destUID)
	}
	if dest.Encapsulated {
		// A zero-length native element replaces the pixels; encapsulated
		// framing has nothing to carry.
		dest = dicom.ExplicitVRLittleEndian
	}
	j.destTS = dest

	hadPixels := j.pixel != nil
	if hadPixels {
		if j.pixel.Length == dicom.UndefinedLength {
			for {
				if _, err := j.dr.NextFragment(); err == io.EOF {
					break
				} else if err != nil {
					return err
				}
			}
		} else if _, err := io.Copy(io.Discard, j.dr.PixelReader()); err != nil {
			return err
		}
	}

	dw, err := j.writeHead(w)
	if err != nil {
		return err
	}
	if hadPixels {
		vr := j.pixel.VR
		if vr == "" {
			vr = dicom.OB
		}
		if err := dw.BeginPixelData(vr, 0); err != nil {
			return err
		}
	}
	if err := j.writeTrailing(dw); err != nil {
		return err
	}
	return dw.Close()
}

// pixelVR picks the VR of a native destination pixel element: the source VR
// survives a native copy, otherwise the storage width decides.
func (j *job) pixelVR() dicom.VR {
	if !j.srcTS.Encapsulated && j.pixel.VR != "" {
		return j.pixel.VR
	}
	if j.compDesc.BitsAllocated > 8 {
		return dicom.OW
	}
	return dicom.OB
}

// lossyMethod names the compression standard for the lossy image
// compression method attribute (PS3.3 C.7.6.1.1.5).
func lossyMethod(ts *dicom.TransferSyntax) string {
	switch ts.UID {
	case dicom.JPEGBaseline8BitUID, dicom.JPEGExtended12BitUID:
		return "ISO_10918_1"
	case dicom.JPEGLSNearLosslessUID:
		return "ISO_14495_1"
	case dicom.JPEG2000UID:
		return "ISO_15444_1"
	}
	return ""
}
