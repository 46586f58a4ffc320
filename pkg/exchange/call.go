package exchange

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
)

// Shape discriminates how an exchange was invoked. It is captured at the
// call boundary so snapshot reconstruction never falls back to ad hoc type
// inspection.
type Shape int

const (
	// ShapeRequest is a caller-supplied, prebuilt *http.Request.
	ShapeRequest Shape = iota

	// ShapeSpec is a declarative request description.
	ShapeSpec

	// ShapeParams is loose method/URL/body parameters, as used by the
	// convenience verbs.
	ShapeParams
)

// Spec is a declarative request description: everything needed to build one
// request without constructing net/http objects by hand.
type Spec struct {
	Method      string
	URL         string
	Headers     []Header
	Body        []byte
	ContentType string
}

// Call captures one exchange invocation: the shape discriminant plus the
// per-shape payload. Exactly one payload field is meaningful for each shape.
type Call struct {
	Shape Shape

	// Request is set for ShapeRequest.
	Request *http.Request

	// Spec is set for ShapeSpec.
	Spec *Spec

	// Method, URL, Body and ContentType are set for ShapeParams.
	Method      string
	URL         string
	Body        []byte
	ContentType string
}

// BuildRequest materializes the request that will actually be dispatched:
// the call payload with the base headers merged in. The returned request is
// always a fresh object; a prebuilt request is cloned, never mutated.
func BuildRequest(call Call, base []Header) (*http.Request, error) {
	switch call.Shape {
	case ShapeRequest:
		if call.Request == nil {
			return nil, fmt.Errorf("request call shape without a request")
		}
		req := call.Request.Clone(call.Request.Context())
		applyBaseHeaders(req, base)
		return req, nil

	case ShapeSpec:
		if call.Spec == nil {
			return nil, fmt.Errorf("spec call shape without a spec")
		}
		req, err := newRequest(call.Spec.Method, call.Spec.URL, call.Spec.Body, call.Spec.ContentType)
		if err != nil {
			return nil, err
		}
		for _, h := range call.Spec.Headers {
			req.Header.Add(h.Name, h.Value)
		}
		applyBaseHeaders(req, base)
		return req, nil

	case ShapeParams:
		req, err := newRequest(call.Method, call.URL, call.Body, call.ContentType)
		if err != nil {
			return nil, err
		}
		applyBaseHeaders(req, base)
		return req, nil

	default:
		return nil, fmt.Errorf("unknown call shape %d", call.Shape)
	}
}

func newRequest(method, url string, body []byte, contentType string) (*http.Request, error) {
	if method == "" {
		method = http.MethodGet
	}
	var reader *bytes.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequest(method, url, reader)
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// applyBaseHeaders rebuilds req's header map from MergeHeaders, so the one
// documented precedence rule governs every call shape: per-call headers
// win, base headers fill the gaps.
func applyBaseHeaders(req *http.Request, base []Header) {
	merged := MergeHeaders(base, flattenHeader(req.Header))
	h := make(http.Header, len(merged))
	for _, p := range merged {
		h.Add(p.Name, p.Value)
	}
	req.Header = h
}

// MergeHeaders combines base headers with per-call overrides. Per-call
// values win: a base header whose name also appears in overrides is dropped
// entirely. The result keeps base order first, then override order. The
// function is pure.
func MergeHeaders(base, overrides []Header) []Header {
	overridden := make(map[string]bool, len(overrides))
	for _, h := range overrides {
		overridden[strings.ToLower(h.Name)] = true
	}

	merged := make([]Header, 0, len(base)+len(overrides))
	for _, h := range base {
		if !overridden[strings.ToLower(h.Name)] {
			merged = append(merged, h)
		}
	}
	return append(merged, overrides...)
}
