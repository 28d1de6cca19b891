package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"adp-lms-sync/internal/apperr"
)

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text ..."},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, snippet([]byte(tc.input), tc.max))
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		Method:     "GET",
		URL:        "https://example.com",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}

	assert.Equal(t, "http error: GET https://example.com status=404 body=Not Found", err.Error())
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 8, cfg.MaxAttempts)
	assert.Equal(t, 700*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.True(t, cfg.Retry5xx)
	for _, status := range []int{429, 408, 425, 503, 502, 504} {
		assert.True(t, cfg.RetryStatuses[status], "status %d", status)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	cfg := DefaultRetryConfig()

	for i := 500; i <= 599; i++ {
		assert.True(t, isRetryableStatus(i, cfg), "status %d", i)
	}
	for _, status := range []int{400, 401, 403, 404, 422} {
		assert.False(t, isRetryableStatus(status, cfg), "status %d", status)
	}

	cfg.Retry5xx = false
	assert.False(t, isRetryableStatus(500, cfg))
	assert.True(t, isRetryableStatus(429, cfg))
}

func TestIsRetryableNetErr(t *testing.T) {
	assert.False(t, isRetryableNetErr(context.Canceled))
	assert.True(t, isRetryableNetErr(context.DeadlineExceeded))
	assert.True(t, isRetryableNetErr(&timeoutError{}))
	assert.False(t, isRetryableNetErr(errors.New("some other error")))
}

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}

	resp.Header.Set("Retry-After", "30")
	assert.Equal(t, 30*time.Second, ParseRetryAfter(resp))

	resp.Header.Set("Retry-After", time.Now().Add(-60*time.Second).UTC().Format(http.TimeFormat))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(resp))

	resp.Header.Set("Retry-After", "invalid")
	assert.Equal(t, time.Duration(0), ParseRetryAfter(resp))

	resp.Header.Del("Retry-After")
	assert.Equal(t, time.Duration(0), ParseRetryAfter(resp))
}

func TestReadBodyBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, err := bw.Write([]byte(`{"workers":[]}`))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	resp := newMockResponse(200, buf.String(), map[string]string{"Content-Encoding": "br"})
	data, err := readBody(resp)

	require.NoError(t, err)
	assert.Equal(t, `{"workers":[]}`, string(data))
}

func TestReadBodyGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	resp := newMockResponse(200, buf.String(), map[string]string{"Content-Encoding": "gzip"})
	data, err := readBody(resp)

	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestClassify(t *testing.T) {
	httpErr := func(status int) error {
		return &HTTPError{Method: "GET", URL: exampleURL, StatusCode: status}
	}

	testCases := []struct {
		name string
		err  error
		want apperr.Code
	}{
		{"401", httpErr(401), apperr.CodeAuth},
		{"403", httpErr(403), apperr.CodeAuth},
		{"404", httpErr(404), apperr.CodeNotFound},
		{"409", httpErr(409), apperr.CodeDuplicate},
		{"400", httpErr(400), apperr.CodeValidation},
		{"429", httpErr(429), apperr.CodeTransient},
		{"502", httpErr(502), apperr.CodeTransient},
		{"418", httpErr(418), apperr.CodeUnknown},
		{"token", &oauth2.RetrieveError{Response: &http.Response{StatusCode: 401}}, apperr.CodeAuth},
		{"timeout", &timeoutError{}, apperr.CodeTransient},
		{"deadline", context.DeadlineExceeded, apperr.CodeTransient},
		{"other", errors.New("boom"), apperr.CodeUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify("op", tc.err)
			assert.Equal(t, tc.want, apperr.CodeOf(err))
		})
	}

	assert.NoError(t, Classify("op", nil))
}

type timeoutError struct{}

func (e *timeoutError) Error() string   { return "timeout error" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
