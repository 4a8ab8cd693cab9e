package wargamer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RawResponse is an HTTP response as returned by a Requester.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

//go:generate go run github.com/matryer/moq@latest -out mocks/requester.go -pkg mocks . Requester

// Requester sends a single request to the remote API.
//
// GET requests carry params in the query string, POST requests as a form
// body. Implementations return an error only when no response was received.
type Requester interface {
	Send(ctx context.Context, rawURL, method string, params url.Values) (*RawResponse, error)
}

// HTTPRequester is the default Requester, backed by net/http.
type HTTPRequester struct {
	client    *http.Client
	userAgent string
}

// NewHTTPRequester returns a Requester using client. A nil client uses
// http.DefaultClient.
func NewHTTPRequester(client *http.Client, userAgent string) *HTTPRequester {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRequester{client: client, userAgent: userAgent}
}

// Send implements Requester.
func (r *HTTPRequester) Send(ctx context.Context, rawURL, method string, params url.Values) (*RawResponse, error) {
	var (
		req *http.Request
		err error
	)

	switch method {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		target := rawURL
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
