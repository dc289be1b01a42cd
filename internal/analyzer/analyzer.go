// Package analyzer runs the penalty engine over text files, reading large
// files in bounded chunks.
package analyzer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/verte-zerg/keystrain/internal/layout"
	"github.com/verte-zerg/keystrain/internal/logging"
	"github.com/verte-zerg/keystrain/internal/penalty"
)

// Defaults for Options.
const (
	DefaultThreshold int64 = 10 * 1024 * 1024
	DefaultChunkSize       = 1024 * 1024
	DefaultEncoding        = "utf-8"
)

// Sentinel errors reported by AnalyzeFile.
var (
	// ErrResourceNotFound is returned when the file does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceRead is returned for I/O and decoding failures.
	ErrResourceRead = errors.New("resource read failure")
)

// Options configures a Driver. Zero values select the defaults.
type Options struct {
	// Threshold is the largest file size read in one block.
	Threshold int64
	// ChunkSize is the number of bytes per chunk above the threshold.
	ChunkSize int
	// Encoding is a WHATWG encoding label of the input files.
	Encoding string
	// CarryState threads one engine through all chunks instead of starting
	// each chunk from home positions.
	CarryState bool
	// Engine options applied to every pass.
	Engine []penalty.Option
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if strings.TrimSpace(o.Encoding) == "" {
		o.Encoding = DefaultEncoding
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.Threshold < 0 {
		return fmt.Errorf("threshold must be >= 0")
	}
	if o.ChunkSize < 0 {
		return fmt.Errorf("chunk size must be > 0")
	}
	if !isUTF8(o.Encoding) {
		if _, err := htmlindex.Get(o.Encoding); err != nil {
			return fmt.Errorf("unsupported encoding %q: %w", o.Encoding, err)
		}
	}
	return nil
}

// Chunked reports whether a file of the given size is read in chunks.
func Chunked(size, threshold int64) bool {
	return size > threshold
}

// Driver analyses files one at a time.
type Driver struct {
	opts   Options
	logger *log.Logger
}

// New returns a Driver. A nil logger discards diagnostics.
func New(logger *log.Logger, opts Options) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Driver{opts: opts.withDefaults(), logger: logger}, nil
}

// Options returns the effective options.
func (d *Driver) Options() Options {
	return d.opts
}

// AnalyzeFile computes the penalty of the file at path typed on t. On failure
// it logs a diagnostic and returns a zero result with an error wrapping
// ErrResourceNotFound or ErrResourceRead.
func (d *Driver) AnalyzeFile(path string, t *layout.Table) (penalty.Result, error) {
	res, err := d.analyzeFile(path, t)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			d.logger.Error("file not found", "file", path)
		} else {
			d.logger.Error("failed to process file", "file", path, "err", err)
		}
		return penalty.ZeroResult(), err
	}
	return res, nil
}

func (d *Driver) analyzeFile(path string, t *layout.Table) (penalty.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return penalty.Result{}, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return penalty.Result{}, fmt.Errorf("%w: %w", ErrResourceRead, err)
	}
	if info.IsDir() {
		return penalty.Result{}, fmt.Errorf("%w: %s is a directory", ErrResourceRead, path)
	}
	size := info.Size()
	d.logger.Info("analyzing file", "file", path, "size", humanize.IBytes(uint64(size)), "layout", t.Name)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return penalty.Result{}, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return penalty.Result{}, fmt.Errorf("%w: %w", ErrResourceRead, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only file.
			_ = cerr
		}
	}()

	reader, err := decodingReader(file, d.opts.Encoding)
	if err != nil {
		return penalty.Result{}, fmt.Errorf("%w: %w", ErrResourceRead, err)
	}

	var s strategy = wholeStrategy{engine: d.opts.Engine}
	if Chunked(size, d.opts.Threshold) {
		d.logger.Info("file is large, reading in chunks", "chunk", humanize.IBytes(uint64(d.opts.ChunkSize)))
		s = chunkedStrategy{
			size:   d.opts.ChunkSize,
			carry:  d.opts.CarryState,
			engine: d.opts.Engine,
		}
	}

	timer := logging.StartTimer(d.logger)
	res, err := s.process(reader, t)
	if err != nil {
		return penalty.Result{}, fmt.Errorf("%w: %s: %w", ErrResourceRead, path, err)
	}
	timer.Done("analysis finished", "file", path, "layout", t.ID, "chars", res.Chars)
	return res, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// decodingReader converts r to UTF-8. UTF-8 input is passed through and
// validated later so malformed bytes surface as errors.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	if isUTF8(name) {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
