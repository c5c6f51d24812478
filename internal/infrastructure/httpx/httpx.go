package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var ErrStatus = errors.New("unexpected status")

// StatusError carries the response code and a short prefix of the body.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d: %s", e.Code, e.Body) }

func (e *StatusError) Unwrap() error { return ErrStatus }

// Client performs JSON requests. 5xx and transport errors are retried up to MaxRetries
// times with exponential backoff; a zero MaxRetries means exactly one attempt.
type Client struct {
	HTTP       *http.Client
	Token      string
	MaxRetries uint64
	Log        *zap.Logger
}

func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Accept", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	op := func() error {
		resp, err := hc.Do(req.WithContext(ctx))
		if err != nil {
			err = redactURL(err)
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return &StatusError{Code: resp.StatusCode, Body: snippet(resp.Body)}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(&StatusError{Code: resp.StatusCode, Body: snippet(resp.Body)})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("http.retry", zap.String("host", req.URL.Host), zap.Duration("wait", wait), zap.Error(err))
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, c.MaxRetries), ctx)
	return backoff.RetryNotify(op, policy, notify)
}

func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return string(b)
}

// redactURL drops the path and query from transport errors; callers may carry
// credentials in either.
func redactURL(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	host := uerr.URL
	if u, perr := url.Parse(uerr.URL); perr == nil {
		host = u.Host
	}
	return fmt.Errorf("%s %s: %w", uerr.Op, host, uerr.Err)
}
