package har

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/getharrec/harrec/pkg/exchange"
)

// DefaultHTTPVersion is used when a snapshot does not report a protocol.
const DefaultHTTPVersion = "HTTP/1.1"

// BuildEntry converts one exchange into a HAR entry. start must be a real
// clock reading; a zero time is rejected. The elapsed time is measured from
// start to the moment this function runs, so the value is dominated by the
// issuer's work, not network latency.
func BuildEntry(start time.Time, req *exchange.RequestSnapshot, resp *exchange.ResponseSnapshot) (*Entry, error) {
	if start.IsZero() {
		return nil, &InvalidArgumentError{Field: "start", Reason: "start time must be a real clock reading, not the zero value"}
	}

	harReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}
	harResp := buildResponse(resp)

	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	if elapsed < 0 {
		elapsed = 0
	}

	return &Entry{
		StartedDateTime: start.UTC(),
		Time:            elapsed,
		Request:         *harReq,
		Response:        *harResp,
		Cache:           Cache{},
		Timings:         Timings{Send: 0, Wait: elapsed, Receive: 0},
	}, nil
}

func buildRequest(snap *exchange.RequestSnapshot) (*Request, error) {
	u, err := url.Parse(snap.URL)
	if err != nil {
		return nil, &InvalidArgumentError{Field: "url", Reason: err.Error()}
	}

	queryString := parseQuery(u.RawQuery)

	// Strip query and fragment; what remains is scheme+host+path.
	stripped := *u
	stripped.RawQuery = ""
	stripped.ForceQuery = false
	stripped.Fragment = ""
	stripped.RawFragment = ""

	var cookies []Cookie
	for _, h := range snap.Headers {
		if strings.EqualFold(h.Name, "Cookie") {
			cookies = append(cookies, parseCookieHeader(h.Value)...)
		}
	}

	req := &Request{
		Method:      snap.Method,
		URL:         stripped.String(),
		HTTPVersion: protoOrDefault(snap.Proto),
		Cookies:     emptyCookies(cookies),
		Headers:     headerPairs(snap.Headers),
		QueryString: queryString,
		HeadersSize: requestHeadersSize(snap.Headers),
	}

	if len(snap.Body) > 0 {
		text, encoded := bodyText(snap.Body)
		req.PostData = &PostData{
			MimeType: snap.ContentType,
			Text:     text,
		}
		if encoded {
			// postData has no encoding field in HAR 1.2; the comment is the
			// only slot that can flag the base64 form.
			req.PostData.Comment = "base64"
		}
		req.BodySize = len(text)
	}

	return req, nil
}

func buildResponse(snap *exchange.ResponseSnapshot) *Response {
	statusText := snap.StatusText
	if statusText == "" {
		statusText = http.StatusText(snap.StatusCode)
	}

	var cookies []Cookie
	for _, h := range snap.Headers {
		if strings.EqualFold(h.Name, "Set-Cookie") {
			if c, ok := parseSetCookie(h.Value); ok {
				cookies = append(cookies, c)
			}
		}
	}

	resp := &Response{
		Status:      snap.StatusCode,
		StatusText:  statusText,
		HTTPVersion: protoOrDefault(snap.Proto),
		Cookies:     emptyCookies(cookies),
		Headers:     headerPairs(snap.Headers),
		RedirectURL: locationHeader(snap.Headers),
		HeadersSize: responseHeadersSize(snap.Headers),
	}

	if len(snap.Body) > 0 {
		resp.Content = buildContent(snap.Body, snap.ContentType)
		resp.BodySize = len(resp.Content.Text)
	}

	return resp
}

// buildContent stores UTF-8 payloads as text. Anything else is carried
// base64-encoded with the encoding flag set, never truncated or replaced.
func buildContent(body []byte, mimeType string) *Content {
	c := &Content{
		Size:     len(body),
		MimeType: mimeType,
	}
	var encoded bool
	c.Text, encoded = bodyText(body)
	if encoded {
		c.Encoding = "base64"
	}
	return c
}

// bodyText renders a payload for storage. Valid UTF-8 is stored verbatim;
// anything else is stored in base64 form, never truncated and never run
// through replacement-character decoding. bodySize fields are derived from
// the returned text so they always match what the file carries.
func bodyText(body []byte) (text string, encoded bool) {
	if utf8.Valid(body) {
		return string(body), false
	}
	return base64.StdEncoding.EncodeToString(body), true
}

// parseQuery expands a raw query string into ordered pairs, one pair per
// value. url.Values cannot be used here: its map form loses the order in
// which parameters appeared.
func parseQuery(rawQuery string) []NameValuePair {
	pairs := make([]NameValuePair, 0)
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		if n, err := url.QueryUnescape(name); err == nil {
			name = n
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		pairs = append(pairs, NameValuePair{Name: name, Value: value})
	}
	return pairs
}

// parseCookieHeader expands one Cookie header value into records. A name
// repeated in the header yields one record per value, in wire order.
func parseCookieHeader(value string) []Cookie {
	cookies := make([]Cookie, 0)
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, _ := strings.Cut(part, "=")
		cookies = append(cookies, Cookie{Name: name, Value: val})
	}
	return cookies
}

// parseSetCookie extracts the name/value from a Set-Cookie header along with
// the attributes the HAR cookie record can carry.
func parseSetCookie(value string) (Cookie, bool) {
	parts := strings.Split(value, ";")
	name, val, found := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !found || name == "" {
		return Cookie{}, false
	}
	c := Cookie{Name: name, Value: val}
	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		k, v, _ := strings.Cut(attr, "=")
		switch strings.ToLower(k) {
		case "path":
			c.Path = v
		case "domain":
			c.Domain = v
		case "httponly":
			c.HTTPOnly = true
		case "secure":
			c.Secure = true
		}
	}
	return c, true
}

// requestHeadersSize is the byte length of the headers serialized as
// "Name: Value" lines joined by newline, UTF-8 encoded.
func requestHeadersSize(headers []exchange.Header) int {
	lines := make([]string, len(headers))
	for i, h := range headers {
		lines[i] = h.Name + ": " + h.Value
	}
	return len(strings.Join(lines, "\n"))
}

// responseHeadersSize is the byte length of the full serialized response
// header block as the response layer would write it, one CRLF-terminated
// line per pair, including any synthesized headers present in the snapshot.
func responseHeadersSize(headers []exchange.Header) int {
	size := 0
	for _, h := range headers {
		size += len(h.Name) + len(": ") + len(h.Value) + len("\r\n")
	}
	return size
}

func headerPairs(headers []exchange.Header) []NameValuePair {
	pairs := make([]NameValuePair, len(headers))
	for i, h := range headers {
		pairs[i] = NameValuePair{Name: h.Name, Value: h.Value}
	}
	return pairs
}

func locationHeader(headers []exchange.Header) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Location") {
			return h.Value
		}
	}
	return ""
}

func protoOrDefault(proto string) string {
	if proto == "" {
		return DefaultHTTPVersion
	}
	return proto
}

// emptyCookies normalizes a nil slice so entries always carry a cookies
// array, matching the HAR shape.
func emptyCookies(cookies []Cookie) []Cookie {
	if cookies == nil {
		return []Cookie{}
	}
	return cookies
}
