// Copyright 2021 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lastwall-public/risc-go/auth"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request/response exchange.
const DefaultTimeout = 5 * time.Second

// Client holds configuration data associated with the HTTP(s) session
type Client struct {
	HTTPClient http.Client
	Auth       auth.IAuthenticator
	Logger     *zap.Logger

	// GetParamsInURL moves GET payloads from the request body to the query
	// string.
	GetParamsInURL bool
}

// NewClient instantiates a new Client using the supplied authenticator. A nil
// authenticator sends unauthenticated requests.
func NewClient(a auth.IAuthenticator) *Client {
	if a == nil {
		a = &auth.NullAuthenticator{}
	}

	return &Client{
		HTTPClient: http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: NoRedirect,
		},
		Auth:   a,
		Logger: zap.NewNop(),
	}
}

// Call performs one signed request and wraps whatever comes back in a
// Response. Transport failures and non-2xx/3xx codes are reported through the
// Response; the returned error is only set when the request could not be
// built or signed.
func (c Client) Call(method, uri string, payload url.Values) (*Response, error) {
	fullURI := uri

	var body io.Reader
	if c.GetParamsInURL && method == http.MethodGet {
		if len(payload) > 0 {
			sep := "?"
			if strings.Contains(uri, "?") {
				sep = "&"
			}
			fullURI = uri + sep + payload.Encode()
		}
	} else if len(payload) > 0 {
		body = strings.NewReader(payload.Encode())
	}

	req, err := http.NewRequest(method, fullURI, body)
	if err != nil {
		return nil, fmt.Errorf("%s %q, request creation failed: %w", method, fullURI, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", auth.FormMediaType)
	}
	req.Header.Set("Accept", "application/json")

	a := c.Auth
	if a == nil {
		a = &auth.NullAuthenticator{}
	}

	signed, err := a.Sign(method, fullURI)
	if err != nil {
		return nil, fmt.Errorf("%s %q, signing failed: %w", method, fullURI, err)
	}

	for k, v := range signed {
		req.Header[k] = v
	}

	log := c.logger().With(zap.String("method", method), zap.String("uri", fullURI))

	hc := &c.HTTPClient
	if hc.CheckRedirect == nil {
		hc.CheckRedirect = NoRedirect
	}

	res, err := hc.Do(req)
	if err != nil {
		log.Warn("no response", zap.Error(err))
		return NewResponse(0, ""), nil
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Warn("reading response body failed", zap.Int("code", res.StatusCode), zap.Error(err))
		return NewResponse(0, ""), nil
	}

	resp := newResponse(res.StatusCode, string(raw), res.Header.Get("Content-Type"))

	log.Debug("exchange complete",
		zap.Int("code", resp.Code()),
		zap.String("status", resp.Status()),
		zap.String("error", resp.Error()),
	)

	return resp, nil
}

// NoRedirect hands 3xx responses back to the caller unfollowed.
func NoRedirect(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

func (c Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
