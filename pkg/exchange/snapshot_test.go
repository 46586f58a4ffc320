package exchange

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRequest_RearmsBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "/items", strings.NewReader("payload"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	snap, err := SnapshotRequest(req)
	require.NoError(t, err)

	assert.Equal(t, []byte("payload"), snap.Body)
	assert.Equal(t, "text/plain", snap.ContentType)

	// The request body must still be fully readable after snapshotting.
	again, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(again))
}

func TestSnapshotRequest_NoBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/items?q=1", nil)
	require.NoError(t, err)

	snap, err := SnapshotRequest(req)
	require.NoError(t, err)

	assert.Empty(t, snap.Body)
	assert.Equal(t, "/items?q=1", snap.URL)
	assert.Equal(t, http.MethodGet, snap.Method)
}

func TestSnapshotRequest_HeaderRepetition(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Add("X-A", "1")
	req.Header.Add("X-A", "2")
	req.Header.Add("Accept", "text/plain")

	snap, err := SnapshotRequest(req)
	require.NoError(t, err)

	assert.Equal(t, []Header{
		{Name: "Accept", Value: "text/plain"},
		{Name: "X-A", Value: "1"},
		{Name: "X-A", Value: "2"},
	}, snap.Headers)
}

func TestSnapshotResponse_SynthesizesContentLength(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	_, _ = rec.WriteString(`{"ok":true}`)
	resp := rec.Result()

	snap, err := SnapshotResponse(resp)
	require.NoError(t, err)

	found := false
	for _, h := range snap.Headers {
		if h.Name == "Content-Length" {
			found = true
			assert.Equal(t, "11", h.Value)
		}
	}
	assert.True(t, found, "Content-Length should be present in the snapshot")

	// Caller still sees the body.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestSnapshotResponse_ContentLengthFromBody(t *testing.T) {
	// A recorder result reports ContentLength -1 when the handler never set
	// the header; the drained body is then the only length source.
	resp := &http.Response{
		StatusCode:    http.StatusOK,
		Header:        http.Header{},
		Body:          io.NopCloser(strings.NewReader("hello")),
		ContentLength: -1,
	}

	snap, err := SnapshotResponse(resp)
	require.NoError(t, err)

	var got string
	for _, h := range snap.Headers {
		if h.Name == "Content-Length" {
			got = h.Value
		}
	}
	assert.Equal(t, "5", got)
}

func TestSnapshotResponse_ExplicitContentLengthKept(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Length", "5")
	resp := &http.Response{
		StatusCode:    http.StatusOK,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader("hello")),
		ContentLength: 5,
	}

	snap, err := SnapshotResponse(resp)
	require.NoError(t, err)

	count := 0
	for _, h := range snap.Headers {
		if h.Name == "Content-Length" {
			count++
		}
	}
	assert.Equal(t, 1, count, "an explicit header must not be duplicated")
}

func TestSnapshotResponse_StatusTextFallback(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}

	snap, err := SnapshotResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusText(http.StatusTeapot), snap.StatusText)
}

func TestBuildRequest_PrebuiltIsCloned(t *testing.T) {
	orig, err := http.NewRequest(http.MethodGet, "/users", nil)
	require.NoError(t, err)

	base := []Header{{Name: "X-Run", Value: "test"}}
	built, err := BuildRequest(Call{Shape: ShapeRequest, Request: orig}, base)
	require.NoError(t, err)

	assert.Equal(t, "test", built.Header.Get("X-Run"))
	assert.Empty(t, orig.Header.Get("X-Run"), "original request must not be mutated")
}

func TestBuildRequest_PerCallHeaderWins(t *testing.T) {
	orig, err := http.NewRequest(http.MethodGet, "/users", nil)
	require.NoError(t, err)
	orig.Header.Set("X-Run", "per-call")

	base := []Header{{Name: "X-Run", Value: "base"}}
	built, err := BuildRequest(Call{Shape: ShapeRequest, Request: orig}, base)
	require.NoError(t, err)

	assert.Equal(t, "per-call", built.Header.Get("X-Run"))
	assert.Len(t, built.Header.Values("X-Run"), 1)
}

func TestBuildRequest_SpecShape(t *testing.T) {
	call := Call{
		Shape: ShapeSpec,
		Spec: &Spec{
			Method:      http.MethodPut,
			URL:         "/items/7",
			Headers:     []Header{{Name: "If-Match", Value: `"v3"`}},
			Body:        []byte(`{"name":"new"}`),
			ContentType: "application/json",
		},
	}

	built, err := BuildRequest(call, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, built.Method)
	assert.Equal(t, "/items/7", built.URL.Path)
	assert.Equal(t, `"v3"`, built.Header.Get("If-Match"))
	assert.Equal(t, "application/json", built.Header.Get("Content-Type"))

	body, err := io.ReadAll(built.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"new"}`, string(body))
}

func TestBuildRequest_ParamsShapeDefaultsMethod(t *testing.T) {
	built, err := BuildRequest(Call{Shape: ShapeParams, URL: "/ping"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, built.Method)
}

func TestBuildRequest_MissingPayload(t *testing.T) {
	_, err := BuildRequest(Call{Shape: ShapeRequest}, nil)
	require.Error(t, err)

	_, err = BuildRequest(Call{Shape: ShapeSpec}, nil)
	require.Error(t, err)
}

func TestBuildRequest_RepeatedBaseHeaderValues(t *testing.T) {
	// Base headers go through the same merge as everything else, so a name
	// repeated in the base set keeps every value.
	base := []Header{
		{Name: "X-Tag", Value: "1"},
		{Name: "X-Tag", Value: "2"},
	}

	built, err := BuildRequest(Call{Shape: ShapeParams, URL: "/x"}, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, built.Header.Values("X-Tag"))
}

func TestMergeHeaders_Precedence(t *testing.T) {
	base := []Header{
		{Name: "X-Run", Value: "base"},
		{Name: "Accept", Value: "application/json"},
	}
	overrides := []Header{
		{Name: "x-run", Value: "call"},
	}

	merged := MergeHeaders(base, overrides)
	assert.Equal(t, []Header{
		{Name: "Accept", Value: "application/json"},
		{Name: "x-run", Value: "call"},
	}, merged)
}

func TestMergeHeaders_Pure(t *testing.T) {
	base := []Header{{Name: "A", Value: "1"}}
	overrides := []Header{{Name: "B", Value: "2"}}

	_ = MergeHeaders(base, overrides)

	assert.Equal(t, []Header{{Name: "A", Value: "1"}}, base)
	assert.Equal(t, []Header{{Name: "B", Value: "2"}}, overrides)
}
