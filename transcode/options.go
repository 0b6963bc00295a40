package transcode

import (
	"log/slog"

	"github.com/cocosip/go-dicom-transcode/codec"
)

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithRegistry resolves codecs from a caller-owned registry instead of the
// global one.
func WithRegistry(r *codec.Registry) Option {
	return func(t *Transcoder) { t.registry = r }
}

// WithMaxPixelError enables the verifier: every encoded frame is decoded
// back and each sample must reconstruct within budget. Negative disables
// verification (the default).
func WithMaxPixelError(budget int) Option {
	return func(t *Transcoder) { t.maxPixelError = budget }
}

// WithBlockSize switches the verifier to block-averaged comparison over
// n x n tiles. Values below 2 keep per-sample comparison.
func WithBlockSize(n int) Option {
	return func(t *Transcoder) { t.blockSize = n }
}

// WithBitsCompressed asks the destination codec to carry only n bits per
// sample; the dataset's bits-stored and high-bit attributes are rewritten to
// match and samples are masked to the narrower window.
func WithBitsCompressed(n int) Option {
	return func(t *Transcoder) { t.bitsCompressed = n }
}

// WithQuality sets the quality factor handed to lossy destination codecs.
func WithQuality(q int) Option {
	return func(t *Transcoder) { t.quality = q }
}

// WithRetainFileMeta copies the source file meta group, updating only the
// transfer syntax UID, instead of rebuilding it.
func WithRetainFileMeta() Option {
	return func(t *Transcoder) { t.retainMeta = true }
}

// WithoutFileMeta omits the preamble and file meta group entirely, producing
// a bare dataset stream.
func WithoutFileMeta() Option {
	return func(t *Transcoder) { t.includeMeta = false }
}

// WithoutImplementationVersionName leaves the optional implementation
// version name out of a rebuilt file meta group.
func WithoutImplementationVersionName() Option {
	return func(t *Transcoder) { t.includeVersionName = false }
}

// WithNullifyPixelData skips pixel data entirely: the dataset is copied and
// a zero-length native pixel data element is written in its place.
func WithNullifyPixelData() Option {
	return func(t *Transcoder) { t.nullify = true }
}

// WithCloseInput closes the input stream on completion when it implements
// io.Closer.
func WithCloseInput() Option {
	return func(t *Transcoder) { t.closeInput = true }
}

// WithCloseOutput closes the output stream on completion when it implements
// io.Closer.
func WithCloseOutput() Option {
	return func(t *Transcoder) { t.closeOutput = true }
}

// WithDeleteBulkDataFiles removes temporary bulk data files spooled by the
// reader when the transcode finishes, on every exit path.
func WithDeleteBulkDataFiles() Option {
	return func(t *Transcoder) { t.deleteBulk = true }
}

// WithBulkDataThreshold spools non-pixel element values larger than n bytes
// to temporary files. Zero (the default) keeps everything in memory.
func WithBulkDataThreshold(n int) Option {
	return func(t *Transcoder) { t.bulkThreshold = n }
}

// WithMaxFrameSize caps the bytes buffered for one frame or fragment.
// The default is 1 GiB.
func WithMaxFrameSize(n int64) Option {
	return func(t *Transcoder) { t.maxFrameSize = n }
}

// WithLogger routes notices (odd-length padding, palette expansion) to a
// caller-supplied logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transcoder) { t.logger = l }
}
