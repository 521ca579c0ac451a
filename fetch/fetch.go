// Package fetch retrieves stylesheets and font binaries over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/http/httpproxy"
	"golang.org/x/text/encoding"

	"fontget/config"
)

// RetrievalError is returned for every failed retrieval, whether transport
// level or non-2xx response.
type RetrievalError struct {
	URL    string
	Status int // zero when no response was received
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("unable to retrieve %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("unable to retrieve %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Fetcher performs blocking GET requests. It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// New creates Fetcher from configuration.
func New(cfg config.FetchConfig, log *zap.Logger) (*Fetcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if len(cfg.Proxy) > 0 {
		if _, err := url.Parse(string(cfg.Proxy)); err != nil {
			// do not put actual value into error, it may have credentials
			return nil, fmt.Errorf("unable to parse proxy url %s", cfg.Proxy)
		}
		// configured proxy replaces HTTP(S)_PROXY, NO_PROXY is still honored
		pc := httpproxy.FromEnvironment()
		pc.HTTPProxy, pc.HTTPSProxy = string(cfg.Proxy), string(cfg.Proxy)
		proxyFunc := pc.ProxyFunc()
		transport.Proxy = func(req *http.Request) (*url.URL, error) {
			return proxyFunc(req.URL)
		}
	}

	return &Fetcher{
		client:    &http.Client{Transport: transport, Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		log:       log.Named("fetch"),
	}, nil
}

// Text retrieves url and returns response body as UTF-8 text. Charset comes
// from Content-Type header or byte order mark.
func (f *Fetcher) Text(ctx context.Context, url string) (string, error) {
	data, contentType, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}

	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if enc == encoding.Nop || name == "utf-8" {
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &RetrievalError{URL: url, Err: fmt.Errorf("unable to decode %s text: %w", name, err)}
	}
	f.log.Debug("Converted to UTF-8", zap.String("url", url), zap.String("charset", name))
	return string(text), nil
}

// Bytes retrieves url and returns response body.
func (f *Fetcher) Bytes(ctx context.Context, url string) ([]byte, error) {
	data, _, err := f.get(ctx, url)
	return data, err
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &RetrievalError{URL: url, Err: err}
	}
	if len(f.userAgent) > 0 {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", &RetrievalError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so connection could be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "", &RetrievalError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %q", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &RetrievalError{URL: url, Err: fmt.Errorf("unable to read response body: %w", err)}
	}
	contentType := resp.Header.Get("Content-Type")
	f.log.Debug("Retrieved", zap.String("url", url), zap.Int("bytes", len(data)), zap.String("content-type", contentType))
	return data, contentType, nil
}
