// Package docsapi is the HTTP client for the remote document API.
package docsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/logging"
	"github.com/colonyops/docgrid/internal/core/record"
)

// DefaultBaseURL is the public test deployment of the document API.
const DefaultBaseURL = "https://test.v5.pryaniky.com/"

// AuthHeader carries the session token on every record request.
const AuthHeader = "x-auth"

const (
	pathPrefix = "ru/data/v3/testmethods/docs/"
	pathLogin  = pathPrefix + "login"
	pathList   = pathPrefix + "userdocs/get"
	pathCreate = pathPrefix + "userdocs/create"
	pathSet    = pathPrefix + "userdocs/set/"
	pathDelete = pathPrefix + "userdocs/delete/"
)

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the document API. It implements editing.Syncer.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	tokens    auth.TokenSource
	log       zerolog.Logger
}

var _ editing.Syncer = (*Client)(nil)

// New creates a client. tokens is consulted before every record request;
// it may be nil for a client that only logs in.
func New(cfg Config, tokens auth.TokenSource) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse base url %q: scheme and host required", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if tokens == nil {
		tokens = auth.Static("")
	}

	return &Client{
		base:      base,
		http:      &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		tokens:    tokens,
		log:       logging.Component("docsapi"),
	}, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := loginRequest{Username: username, Password: password}

	var data loginData
	if err := c.do(ctx, http.MethodPost, pathLogin, "", body, &data); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if data.Token == "" {
		return "", fmt.Errorf("login: response carries no token")
	}
	return data.Token, nil
}

// FetchAll returns every record in server order.
func (c *Client) FetchAll(ctx context.Context) ([]record.Record, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	var recs []record.Record
	if err := c.do(ctx, http.MethodGet, pathList, token, nil, &recs); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if recs == nil {
		recs = []record.Record{}
	}
	return recs, nil
}

// CreateRecord creates a record and returns it as stored by the server.
func (c *Client) CreateRecord(ctx context.Context, fields record.Values) (record.Record, error) {
	token, err := c.token(ctx)
	if err != nil {
		return record.Record{}, fmt.Errorf("create record: %w", err)
	}

	var rec record.Record
	if err := c.do(ctx, http.MethodPost, pathCreate, token, record.Payload(fields), &rec); err != nil {
		return record.Record{}, fmt.Errorf("create record: %w", err)
	}
	if rec.ID == "" {
		return record.Record{}, fmt.Errorf("create record: response carries no data.id")
	}
	return rec, nil
}

// UpdateRecord replaces the fields of record id.
func (c *Client) UpdateRecord(ctx context.Context, id string, fields record.Values) error {
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("update record %s: %w", id, err)
	}

	if err := c.do(ctx, http.MethodPost, pathSet+url.PathEscape(id), token, record.Payload(fields), nil); err != nil {
		return fmt.Errorf("update record %s: %w", id, err)
	}
	return nil
}

// DeleteRecord removes record id.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}

	if err := c.do(ctx, http.MethodPost, pathDelete+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// token fails fast, before any I/O, when no credential is available.
func (c *Client) token(ctx context.Context) (string, error) {
	token, ok := c.tokens.Token(ctx)
	if !ok {
		return "", auth.ErrUnauthenticated
	}
	return token, nil
}

// do sends one request and decodes the envelope's data into out. out may be
// nil when the caller only needs success.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	endpoint := c.base.JoinPath(path).String()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AuthHeader, token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("close response body")
		}
	}()

	c.log.Debug().Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Code = env.ErrorCode
			apiErr.Message = env.ErrorMessage
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if env.ErrorCode != 0 {
		return &APIError{Status: resp.StatusCode, Code: env.ErrorCode, Message: env.ErrorMessage}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
