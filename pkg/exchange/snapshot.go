package exchange

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
)

// Header is a single ordered (name, value) pair. Names are not required to
// be unique; a repeated name appears once per value.
type Header struct {
	Name  string
	Value string
}

// RequestSnapshot is a read-only view of the request side of one exchange.
type RequestSnapshot struct {
	Method string

	// URL is the raw URL as dispatched; it may carry a query string and a
	// fragment.
	URL string

	// Proto is the protocol label, e.g. "HTTP/1.1". Empty when the
	// transport did not report one.
	Proto string

	// Headers carry one pair per value, repetition intact. net/http's
	// header map exposes no wire order, so names appear in sorted order;
	// values within a name keep their recorded order.
	Headers []Header

	Body []byte

	// ContentType is the request MIME type; meaningful only when Body is
	// non-empty.
	ContentType string
}

// ResponseSnapshot is a read-only view of the response side of one exchange.
// Headers follow the same ordering rule as RequestSnapshot.Headers.
type ResponseSnapshot struct {
	StatusCode  int
	StatusText  string
	Proto       string
	Headers     []Header
	Body        []byte
	ContentType string
}

// SnapshotRequest captures req into a snapshot. The request body, if any, is
// drained and re-armed so req remains dispatchable afterwards.
func SnapshotRequest(req *http.Request) (*RequestSnapshot, error) {
	body, err := drainBody(&req.Body)
	if err != nil {
		return nil, fmt.Errorf("snapshot request body: %w", err)
	}

	return &RequestSnapshot{
		Method:      req.Method,
		URL:         req.URL.String(),
		Proto:       req.Proto,
		Headers:     flattenHeader(req.Header),
		Body:        body,
		ContentType: req.Header.Get("Content-Type"),
	}, nil
}

// SnapshotResponse captures resp into a snapshot. The response body is
// drained and re-armed so the caller still observes it unchanged. A
// Content-Length header is synthesized from the drained body when the
// header is absent, matching what the server layer would write on the
// wire. An httptest recorder result reports ContentLength -1 unless the
// handler set the header itself, so the body length is the only reliable
// source.
func SnapshotResponse(resp *http.Response) (*ResponseSnapshot, error) {
	body, err := drainBody(&resp.Body)
	if err != nil {
		return nil, fmt.Errorf("snapshot response body: %w", err)
	}

	headers := flattenHeader(resp.Header)
	if resp.Header.Get("Content-Length") == "" {
		n := int64(len(body))
		if resp.ContentLength >= 0 {
			n = resp.ContentLength
		}
		headers = append(headers, Header{
			Name:  "Content-Length",
			Value: strconv.FormatInt(n, 10),
		})
	}

	statusText := resp.Status
	if statusText == "" {
		statusText = http.StatusText(resp.StatusCode)
	}

	return &ResponseSnapshot{
		StatusCode:  resp.StatusCode,
		StatusText:  statusText,
		Proto:       resp.Proto,
		Headers:     headers,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// drainBody reads and closes *rc, re-arming it with a fresh reader over the
// buffered bytes. A nil or http.NoBody reader yields an empty slice.
func drainBody(rc *io.ReadCloser) ([]byte, error) {
	if *rc == nil || *rc == http.NoBody {
		return nil, nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(*rc); err != nil {
		return nil, err
	}
	if err := (*rc).Close(); err != nil {
		return nil, err
	}
	*rc = io.NopCloser(bytes.NewReader(buf.Bytes()))
	return buf.Bytes(), nil
}

// flattenHeader converts an http.Header map into ordered pairs. Go's header
// map carries no wire order, so names are emitted in sorted order for
// determinism; values within a name keep their recorded order, one pair per
// value.
func flattenHeader(h http.Header) []Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Header, 0, len(h))
	for _, name := range names {
		for _, value := range h[name] {
			out = append(out, Header{Name: name, Value: value})
		}
	}
	return out
}
