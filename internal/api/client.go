package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the platform's API host
	DefaultBaseURL = "https://aq.fhmooc.com/"

	// DefaultUserAgent is a desktop Chrome user agent. The platform treats
	// requests without a browser-like agent differently.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.149 Safari/537.36"
)

// Config configures a Client
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// HTTPClient overrides the default client built from Timeout
	HTTPClient *http.Client
}

// Client performs one HTTP exchange per platform operation.
// A Client returned by Login carries a Session; the zero-session client can only
// reach the unauthenticated endpoints.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	userAgent string
	session   Session
}

// New creates an unauthenticated client
func New(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	h := cfg.HTTPClient
	if h == nil {
		h = &http.Client{Timeout: cfg.Timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{http: h, baseURL: u, userAgent: ua}, nil
}

// Session returns the credential the client was authenticated with
func (c *Client) Session() Session {
	return c.session
}

// WithSession returns a copy of the client authenticated with s
func (c *Client) WithSession(s Session) *Client {
	cp := *c
	cp.session = s
	return &cp
}

// Login authenticates against the platform and returns a client carrying the session.
// Both the HTTP status and the application code in the body must indicate success.
func (c *Client) Login(ctx context.Context, schoolID, username, password string) (*Client, error) {
	params := url.Values{}
	params.Set("schoolId", schoolID)
	params.Set("userName", username)
	params.Set("userPwd", password)

	res, err := c.do(ctx, pathLogin, params, false)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &AuthenticationError{Status: res.StatusCode}
	}
	session := SessionFromHeaders(res.Header)

	var body struct {
		Code json.Number `json:"code"`
		Msg  string      `json:"msg"`
	}
	if err := decode(opName(pathLogin), res.Body, &body); err != nil {
		return nil, err
	}
	if body.Code.String() != "1" {
		return nil, &AuthenticationError{Status: res.StatusCode, Msg: body.Msg}
	}

	return c.WithSession(session), nil
}

// call issues an operation, enforces a 200 status and decodes the JSON body into out.
// A nil out only checks that the body is valid JSON.
func (c *Client) call(ctx context.Context, p string, params url.Values, out any) error {
	res, err := c.do(ctx, p, params, true)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &TransportError{Op: opName(p), Status: res.StatusCode}
	}
	return decode(opName(p), res.Body, out)
}

// do sends the request without interpreting the response
func (c *Client) do(ctx context.Context, p string, params url.Values, authenticated bool) (*http.Response, error) {
	u := c.baseURL.ResolveReference(&url.URL{Path: p})
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Op: opName(p), Err: err}
	}
	req.Header.Set("Content-Length", "0")
	req.Header.Set("User-Agent", c.userAgent)
	if authenticated && c.session != "" {
		req.Header.Set("Cookie", c.session.String())
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: opName(p), Err: err}
	}
	return res, nil
}

func decode(op string, r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if out == nil {
		if !json.Valid(data) {
			return &ProtocolError{Op: op, Err: fmt.Errorf("body is not JSON")}
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ProtocolError{Op: op, Err: err}
	}
	return nil
}

func opName(p string) string {
	return path.Base(p)
}
