package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func respond(r *http.Request, code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}
}

type okResp struct {
	OK bool `json:"ok"`
}

func TestDoJSON_Retry500Then200(t *testing.T) {
	var calls int
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return respond(r, 500, "err"), nil
		}
		return respond(r, 200, `{"ok": true}`), nil
	}))
	var out okResp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := &Client{HTTP: hc, MaxRetries: 2}
	require.NoError(t, c.DoJSON(ctx, req, &out))
	require.True(t, out.OK)
	require.Equal(t, 2, calls)
}

type tempTimeoutErr struct{}

func (tempTimeoutErr) Error() string   { return "timeout" }
func (tempTimeoutErr) Timeout() bool   { return true }
func (tempTimeoutErr) Temporary() bool { return true }

func TestDoJSON_RetryNetTimeoutThen200(t *testing.T) {
	var calls int
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			var ne net.Error = tempTimeoutErr{}
			return nil, ne
		}
		return respond(r, 200, `{"ok": true}`), nil
	}))
	var out okResp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: hc, MaxRetries: 1}
	require.NoError(t, c.DoJSON(context.Background(), req, &out))
	require.Equal(t, 2, calls)
}

func TestDoJSON_ZeroRetriesIsSingleAttempt(t *testing.T) {
	var calls int
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(r, 503, "unavailable"), nil
	}))
	var out okResp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: hc}
	err := c.DoJSON(context.Background(), req, &out)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStatus)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 503, se.Code)
	require.Equal(t, 1, calls)
}

func TestDoJSON_NoRetryOn400(t *testing.T) {
	var calls int
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(r, 400, "bad"), nil
	}))
	var out any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: hc, MaxRetries: 3}
	err := c.DoJSON(context.Background(), req, &out)
	require.ErrorIs(t, err, ErrStatus)
	require.Equal(t, 1, calls)
}

func TestDoJSON_DecodeError_NoRetry(t *testing.T) {
	var calls int
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString("{x")), Header: make(http.Header), Request: r}, nil
	}))
	var out map[string]any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: hc, MaxRetries: 3}
	err := c.DoJSON(context.Background(), req, &out)
	require.ErrorContains(t, err, "decode")
	require.Equal(t, 1, calls)
}

func TestDoJSON_SetsBearerToken(t *testing.T) {
	hc := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		return respond(r, 200, `{"ok": true}`), nil
	}))
	var out okResp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: hc, Token: "tok"}
	require.NoError(t, c.DoJSON(context.Background(), req, &out))
}

func TestDoJSON_TransportErrorOmitsURLPath(t *testing.T) {
	hc := httpClientRT(rtFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))
	core, logs := observer.New(zapcore.WarnLevel)
	req, _ := http.NewRequest(http.MethodGet, "http://rates.example.com/v6/SECRETKEY/pair/USD/EUR?k=SECRETKEY", nil)
	c := &Client{HTTP: hc, MaxRetries: 1, Log: zap.New(core)}

	err := c.DoJSON(context.Background(), req, new(okResp))
	require.ErrorContains(t, err, "connection refused")
	require.ErrorContains(t, err, "rates.example.com")
	require.NotContains(t, err.Error(), "SECRETKEY")

	require.Equal(t, 1, logs.FilterMessage("http.retry").Len())
	for _, e := range logs.All() {
		for k, v := range e.ContextMap() {
			require.NotContains(t, fmt.Sprint(v), "SECRETKEY", k)
		}
	}
}
