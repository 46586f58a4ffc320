package client

import (
	"net/http"
	"net/http/httptest"
)

// Issuer performs one HTTP exchange. The recorder wraps an Issuer and never
// performs networking itself.
type Issuer interface {
	Issue(req *http.Request) (*http.Response, error)
}

// IssuerFunc adapts a function to the Issuer interface.
type IssuerFunc func(req *http.Request) (*http.Response, error)

// Issue calls f.
func (f IssuerFunc) Issue(req *http.Request) (*http.Response, error) {
	return f(req)
}

// HandlerIssuer dispatches requests to an in-process http.Handler without a
// network hop. This is the usual issuer for application tests: the handler
// under test is exercised directly and its response materialized through an
// httptest recorder.
func HandlerIssuer(h http.Handler) Issuer {
	return IssuerFunc(func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		resp := rec.Result()
		resp.Request = req
		return resp, nil
	})
}

// TransportIssuer performs exchanges through an http.RoundTripper, for
// recording traffic that does leave the process. A nil rt uses
// http.DefaultTransport.
func TransportIssuer(rt http.RoundTripper) Issuer {
	return IssuerFunc(func(req *http.Request) (*http.Response, error) {
		if rt == nil {
			return http.DefaultTransport.RoundTrip(req)
		}
		return rt.RoundTrip(req)
	})
}
