package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 20 * time.Second
	defaultMaxAttempts    = 3
	defaultMaxWait        = 30 * time.Second
	defaultRetryAfter     = time.Second
)

// Client performs JSON calls against one provider API. Calls that come back
// with 429 are retried, waiting as long as Retry-After asks (clamped to
// MaxWait), up to MaxAttempts in total.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	MaxAttempts    int
	MaxWait        time.Duration
	Header         http.Header
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
	// Token is sent as a bearer credential when set.
	Token string
}

// Response is whatever the provider answered. Body is the decoded JSON
// payload, or {"text": raw} when the answer was not JSON.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

func (r Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// Object returns the body as a JSON object, or an empty map.
func (r Response) Object() map[string]any {
	if object, ok := r.Body.(map[string]any); ok {
		return object
	}

	return map[string]any{}
}

// Do returns an error only when no answer could be obtained. Non-2xx
// answers, including a final 429, come back as a Response.
func (c Client) Do(ctx context.Context, req Request) (Response, error) {
	endpoint, err := c.endpoint(req.Path, req.Query)
	if err != nil {
		return Response{}, err
	}

	var payload []byte
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return Response{}, fmt.Errorf("encode request body: %w", err)
		}
	}

	var last Response
	attempt := func() (Response, error) {
		resp, err := c.once(ctx, req, endpoint, payload)
		if err != nil {
			return Response{}, backoff.Permanent(err)
		}
		last = resp
		if resp.Status == http.StatusTooManyRequests {
			return resp, backoff.RetryAfter(c.retryAfterSeconds(resp.Header))
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, attempt,
		backoff.WithMaxTries(uint(c.maxAttempts())),
		backoff.WithBackOff(backoff.NewConstantBackOff(0)),
	)
	if err != nil {
		var retryAfter *backoff.RetryAfterError
		if errors.As(err, &retryAfter) {
			return last, nil
		}
		return Response{}, err
	}

	return resp, nil
}

func (c Client) once(ctx context.Context, req Request, endpoint string, payload []byte) (Response, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return Response{}, fmt.Errorf("create %s request: %w", method, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	copyHeader(httpReq.Header, c.Header)
	copyHeader(httpReq.Header, req.Header)

	httpResp, err := c.clientFor(ctx, req.Token).Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", req.Path, err)
	}

	return Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   decodeBody(raw),
	}, nil
}

// clientFor wraps the configured client in an oauth2 transport so the
// bearer token is attached the same way for every provider.
func (c Client) clientFor(ctx context.Context, token string) *http.Client {
	base := c.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	if strings.TrimSpace(token) == "" {
		return base
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func (c Client) maxAttempts() int {
	if c.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}

	return c.MaxAttempts
}

func (c Client) retryAfterSeconds(header http.Header) int {
	wait := defaultRetryAfter
	if raw := strings.TrimSpace(header.Get("Retry-After")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		}
	}

	maxWait := c.MaxWait
	if maxWait < 0 {
		maxWait = 0
	} else if maxWait == 0 {
		maxWait = defaultMaxWait
	}

	return int(min(wait, maxWait) / time.Second)
}

func (c Client) endpoint(path string, query url.Values) (string, error) {
	endpoint, err := BuildURL(c.BaseURL, path)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return endpoint, nil
	}

	return endpoint + "?" + query.Encode(), nil
}

// BuildURL joins path onto baseURL, keeping any path prefix baseURL carries.
func BuildURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	endpoint, err := parsed.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return map[string]any{"text": string(raw)}
	}

	return decoded
}

func copyHeader(dst, src http.Header) {
	for key, values := range src {
		dst.Del(key)
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
