// Package adp reads the worker roster from the ADP HR API.
//
// ADP requires mutual TLS on both the token endpoint and the API, so the
// client certificate is installed on the transport that oauth2 uses to
// fetch tokens as well as on the one that carries API calls.
package adp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/config"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/httpx"
)

const (
	workersPath     = "/hr/v2/workers"
	defaultPageSize = 100
	maxPageSize     = 100
)

type Client struct {
	BaseURL  string
	PageSize int
	HTTP     *http.Client
	Retry    httpx.RetryConfig
	Log      zerolog.Logger
}

// New builds an authenticated client from configuration. Tokens are fetched
// lazily on the first request and refreshed by the oauth2 transport.
func New(cfg config.ADPConfig, httpCfg config.HTTPConfig, log zerolog.Logger) (*Client, error) {
	cert, err := loadCertificate(cfg)
	if err != nil {
		return nil, err
	}

	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	}
	if cert != nil {
		tr.TLSClientConfig.Certificates = []tls.Certificate{*cert}
	}
	base := &http.Client{Timeout: httpCfg.Timeout, Transport: tr}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	// The token source keeps this context for refreshes; it must outlive
	// any single call.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	hc := cc.Client(tokenCtx)
	hc.Timeout = httpCfg.Timeout

	c := NewWithHTTPClient(cfg.BaseURL, cfg.PageSize, hc)
	c.Retry = httpx.RetryConfigFor(httpCfg.MaxAttempts)
	c.Log = log
	return c, nil
}

// NewWithHTTPClient skips authentication setup; hc must already add
// credentials to requests.
func NewWithHTTPClient(baseURL string, pageSize int, hc *http.Client) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		PageSize: pageSize,
		HTTP:     hc,
		Retry:    httpx.SingleAttempt(),
		Log:      zerolog.Nop(),
	}
}

func loadCertificate(cfg config.ADPConfig) (*tls.Certificate, error) {
	var (
		cert tls.Certificate
		err  error
	)
	switch {
	case cfg.CertPEM != "" && cfg.KeyPEM != "":
		cert, err = tls.X509KeyPair([]byte(cfg.CertPEM), []byte(cfg.KeyPEM))
	case cfg.CertFile != "" && cfg.KeyFile != "":
		cert, err = tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfig, "adp: load client certificate", err)
	}
	return &cert, nil
}

// ListWorkers pages through every worker, active or not. Paging stops on
// 204 No Content or a short page.
func (c *Client) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	var all []domain.Worker

	for skip, page := 0, 1; ; skip, page = skip+c.PageSize, page+1 {
		pageURL := fmt.Sprintf("%s%s?$top=%d&$skip=%d", c.BaseURL, workersPath, c.PageSize, skip)

		resp, body, err := httpx.DoWithRetry(ctx, c.HTTP, getJSON(pageURL), c.Retry)
		if err != nil {
			return nil, httpx.Classify("adp: list workers", err)
		}
		if resp.StatusCode == http.StatusNoContent {
			break
		}

		var out workersResponse
		if err := httpx.DecodeJSON(body, &out); err != nil {
			return nil, apperr.Wrap(apperr.CodeUnknown, "adp: list workers", err)
		}

		for _, w := range out.Workers {
			all = append(all, toWorker(w))
		}
		c.Log.Debug().Int("page", page).Int("results", len(out.Workers)).Int("total", len(all)).Msg("adp workers page")

		if len(out.Workers) < c.PageSize {
			break
		}
	}

	return all, nil
}

func getJSON(u string) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Accept", "application/json")
		return r, nil
	}
}
