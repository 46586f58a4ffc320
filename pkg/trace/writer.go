package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/getharrec/harrec/internal/id"
	"github.com/getharrec/harrec/pkg/har"
)

// Options configures a Writer.
type Options struct {
	// Creator is the generator metadata written into the log header.
	Creator har.Creator

	// Comment is an optional log-level comment, e.g. a recorder run ID.
	Comment string
}

// Writer appends HAR entries to a single trace file.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	count  int
	closed bool
}

// NewWriter opens path for writing and emits the HAR container preamble,
// leaving the entries array open for appends. Any existing file at path is
// truncated. An unopenable path yields a PathError.
func NewWriter(path string, opts Options) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, &PathError{Op: "mkdir", Path: path, Err: err}
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	w := &Writer{f: f, path: path}
	if err := w.writePreamble(opts); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writePreamble(opts Options) error {
	creator, err := json.Marshal(opts.Creator)
	if err != nil {
		return &PathError{Op: "encode", Path: w.path, Err: err}
	}

	preamble := `{"log":{"version":"` + har.Version + `","creator":` + string(creator)
	if opts.Comment != "" {
		comment, err := json.Marshal(opts.Comment)
		if err != nil {
			return &PathError{Op: "encode", Path: w.path, Err: err}
		}
		preamble += `,"comment":` + string(comment)
	}
	preamble += `,"entries":[`

	if _, err := w.f.WriteString(preamble); err != nil {
		return &PathError{Op: "write", Path: w.path, Err: err}
	}
	return nil
}

// Path returns the trace file path.
func (w *Writer) Path() string {
	return w.path
}

// Count returns the number of entries appended so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Append writes one entry to the file. Entries land in call order; a failed
// append surfaces immediately and appends nothing. Appending to a closed
// Writer returns ErrClosed.
func (w *Writer) Append(entry *har.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return &PathError{Op: "encode", Path: w.path, Err: err}
	}

	sep := "\n"
	if w.count > 0 {
		sep = ",\n"
	}
	if _, err := w.f.WriteString(sep + string(data)); err != nil {
		return &PathError{Op: "write", Path: w.path, Err: err}
	}

	w.count++
	return nil
}

// Close finalizes the container so the file is a valid HAR document, syncs,
// and closes the file. Close is idempotent; calls after the first return
// nil.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	tail := "]}}"
	if w.count > 0 {
		tail = "\n" + tail
	}
	if _, err := w.f.WriteString(tail); err != nil {
		_ = w.f.Close()
		return &PathError{Op: "write", Path: w.path, Err: err}
	}
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		return &PathError{Op: "sync", Path: w.path, Err: err}
	}
	if err := w.f.Close(); err != nil {
		return &PathError{Op: "close", Path: w.path, Err: err}
	}
	return nil
}

// DefaultPath generates a collision-resistant trace file name under dir. The
// ULID tail combines a millisecond timestamp with randomness, so paths from
// rapid successive calls never collide.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "harrec_"+id.ULID()+".har")
}
