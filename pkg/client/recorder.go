package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/getharrec/harrec/pkg/config"
	"github.com/getharrec/harrec/pkg/exchange"
	"github.com/getharrec/harrec/pkg/har"
	"github.com/getharrec/harrec/pkg/logging"
	"github.com/getharrec/harrec/pkg/trace"
)

// ErrClosed is returned when an exchange is attempted on a closed Recorder.
var ErrClosed = errors.New("recorder is closed")

// Recorder wraps an Issuer and records every exchange as a HAR entry.
//
// Lifecycle: Open -> (Exchange)* -> Closed. No exchange is valid once the
// recorder is closed.
type Recorder struct {
	issuer Issuer
	writer *trace.Writer
	base   []exchange.Header
	log    *slog.Logger
	runID  string
	closed bool
}

// Option configures a Recorder.
type Option func(*options)

type options struct {
	tracePath string
	creator   har.Creator
	base      []exchange.Header
	log       *slog.Logger
	cfg       *config.Config
}

// WithTracePath sets the output trace file path. When unset, a
// collision-resistant default name is generated under the configured output
// directory.
func WithTracePath(path string) Option {
	return func(o *options) { o.tracePath = path }
}

// WithCreator overrides the generator metadata written to the log header.
func WithCreator(name, version string) Option {
	return func(o *options) { o.creator = har.Creator{Name: name, Version: version} }
}

// WithBaseHeader adds a header applied to every exchange unless the call
// itself carries the same header name; per-call values win.
func WithBaseHeader(name, value string) Option {
	return func(o *options) {
		o.base = append(o.base, exchange.Header{Name: name, Value: value})
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithConfig supplies a resolved configuration; explicit options still win
// over configuration values. Unless WithLogger is also given, the
// recorder's logger is built from the configured log level and format.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// New constructs a Recorder around issuer and opens its trace file. The
// file cannot be opened -> error matching trace.ErrResourceUnavailable.
func New(issuer Issuer, opts ...Option) (*Recorder, error) {
	if issuer == nil {
		return nil, fmt.Errorf("recorder requires an issuer")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Default()
	if o.cfg != nil {
		cfg = *o.cfg
	}
	if o.log == nil {
		if o.cfg != nil {
			o.log = configLogger(cfg)
		} else {
			o.log = logging.Nop()
		}
	}
	if o.creator == (har.Creator{}) {
		o.creator = har.Creator{Name: cfg.CreatorName, Version: cfg.CreatorVersion}
	}
	if o.tracePath == "" {
		o.tracePath = trace.DefaultPath(cfg.OutputDir)
	}
	for _, h := range cfg.BaseHeaders {
		o.base = append(o.base, exchange.Header{Name: h.Name, Value: h.Value})
	}

	runID := uuid.New().String()
	writer, err := trace.NewWriter(o.tracePath, trace.Options{
		Creator: o.creator,
		Comment: "run " + runID,
	})
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		issuer: issuer,
		writer: writer,
		base:   o.base,
		log:    o.log,
		runID:  runID,
	}
	r.log.Debug("recorder opened", "run", runID, "trace", writer.Path())
	return r, nil
}

// configLogger builds the recorder's logger from the configured level and
// format.
func configLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})
}

// TracePath returns the path of the trace file being written.
func (r *Recorder) TracePath() string {
	return r.writer.Path()
}

// Do performs a prebuilt request through the issuer and records it. The
// dispatched request is a clone of req with the recorder's base headers
// merged in, so the recorded entry matches the real exchange.
func (r *Recorder) Do(req *http.Request) (*http.Response, error) {
	return r.exchange(exchange.Call{Shape: exchange.ShapeRequest, Request: req})
}

// Perform executes a declarative request description.
func (r *Recorder) Perform(spec exchange.Spec) (*http.Response, error) {
	return r.exchange(exchange.Call{Shape: exchange.ShapeSpec, Spec: &spec})
}

// Get issues a GET to url.
func (r *Recorder) Get(url string) (*http.Response, error) {
	return r.exchange(exchange.Call{Shape: exchange.ShapeParams, Method: http.MethodGet, URL: url})
}

// Post issues a POST to url with the given body.
func (r *Recorder) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	var buf []byte
	if body != nil {
		var err error
		buf, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}
	return r.exchange(exchange.Call{
		Shape:       exchange.ShapeParams,
		Method:      http.MethodPost,
		URL:         url,
		Body:        buf,
		ContentType: contentType,
	})
}

// exchange is the single path every call shape funnels through: capture
// start, build and dispatch the request, snapshot both sides, convert,
// append. A failure anywhere surfaces to the caller; a failed append is
// never reported as a successful exchange.
func (r *Recorder) exchange(call exchange.Call) (*http.Response, error) {
	if r.closed {
		return nil, ErrClosed
	}

	start := time.Now().UTC()

	req, err := exchange.BuildRequest(call, r.base)
	if err != nil {
		return nil, err
	}

	// Snapshot before dispatch so the recorded request is exactly what the
	// issuer receives, base headers included.
	reqSnap, err := exchange.SnapshotRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := r.issuer.Issue(req)
	if err != nil {
		return nil, err
	}

	respSnap, err := exchange.SnapshotResponse(resp)
	if err != nil {
		return nil, err
	}

	entry, err := har.BuildEntry(start, reqSnap, respSnap)
	if err != nil {
		return nil, err
	}

	if err := r.writer.Append(entry); err != nil {
		r.log.Error("trace append failed", "run", r.runID, "error", err)
		return nil, err
	}

	r.log.Debug("exchange recorded",
		"run", r.runID,
		"method", reqSnap.Method,
		"url", reqSnap.URL,
		"status", respSnap.StatusCode,
		"entries", r.writer.Count(),
	)
	return resp, nil
}

// Close finalizes and closes the trace file. Close is idempotent; exchanges
// after Close fail with ErrClosed and leave the file untouched.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.writer.Close(); err != nil {
		return err
	}
	r.log.Debug("recorder closed", "run", r.runID, "entries", r.writer.Count())
	return nil
}
