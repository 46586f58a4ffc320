package har

import "time"

// Version is the HAR format version emitted by this package.
const Version = "1.2"

// Document is the top-level HAR object.
type Document struct {
	Log Log `json:"log"`
}

// Log holds the ordered list of recorded entries plus generator metadata.
type Log struct {
	Version string  `json:"version"`
	Creator Creator `json:"creator"`
	Entries []Entry `json:"entries"`
	Comment string  `json:"comment,omitempty"`
}

// Creator identifies the application that produced the log.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Entry describes one request/response exchange.
type Entry struct {
	// StartedDateTime is the start of the exchange, always rendered in UTC
	// with an explicit offset.
	StartedDateTime time.Time `json:"startedDateTime"`

	// Time is the total elapsed time in milliseconds. This measures elapsed
	// wall-clock time within the calling process, not network latency.
	Time float64 `json:"time"`

	Request  Request  `json:"request"`
	Response Response `json:"response"`

	// Cache is always empty; no cache-state tracking is performed.
	Cache Cache `json:"cache"`

	// Timings carries the elapsed time in the wait component only; no
	// finer-grained timing is observable at this layer.
	Timings Timings `json:"timings"`
}

// Request describes the request side of an entry.
type Request struct {
	Method string `json:"method"`
	// URL is scheme+host+path only; the query string and fragment are
	// stripped and the query expanded into QueryString.
	URL         string          `json:"url"`
	HTTPVersion string          `json:"httpVersion"`
	Cookies     []Cookie        `json:"cookies"`
	Headers     []NameValuePair `json:"headers"`
	QueryString []NameValuePair `json:"queryString"`
	// PostData is nil when the request has no body.
	PostData    *PostData `json:"postData,omitempty"`
	HeadersSize int       `json:"headersSize"`
	// BodySize is the byte length of the text stored in PostData, so the
	// two are self-consistent even for base64-carried payloads.
	BodySize int `json:"bodySize"`
}

// Response describes the response side of an entry.
type Response struct {
	Status      int             `json:"status"`
	StatusText  string          `json:"statusText"`
	HTTPVersion string          `json:"httpVersion"`
	Cookies     []Cookie        `json:"cookies"`
	Headers     []NameValuePair `json:"headers"`
	// Content is nil when the response body is empty.
	Content     *Content `json:"content,omitempty"`
	RedirectURL string   `json:"redirectURL"`
	HeadersSize int      `json:"headersSize"`
	// BodySize is the byte length of the text stored in Content; it differs
	// from Content.Size only for base64-carried payloads.
	BodySize int `json:"bodySize"`
}

// NameValuePair is a single header or query-string record. Repeated names
// produce repeated pairs, never a merged record.
type NameValuePair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie is a single cookie record. A name repeated in the Cookie header
// yields one record per value.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path,omitempty"`
	Domain   string `json:"domain,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
}

// PostData describes a non-empty request body. HAR 1.2 gives postData no
// encoding field, so a body that was not valid UTF-8 carries its base64
// form in Text with Comment set to "base64".
type PostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
	Comment  string `json:"comment,omitempty"`
}

// Content describes a non-empty response body. Size is the byte length of
// the raw payload. Encoding is "base64" when the payload was not valid
// UTF-8 text and Text carries the base64 form.
type Content struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
	Encoding string `json:"encoding,omitempty"`
}

// Cache is intentionally empty.
type Cache struct{}

// Timings breaks the elapsed time down. Only Wait is populated; Send and
// Receive are always zero.
type Timings struct {
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

// NewLog returns an empty log for the given creator.
func NewLog(creator Creator) Log {
	return Log{
		Version: Version,
		Creator: creator,
		Entries: make([]Entry, 0),
	}
}
