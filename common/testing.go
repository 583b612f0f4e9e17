// Copyright 2021 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"

	"github.com/lastwall-public/risc-go/auth"
	"go.uber.org/zap"
)

// NewTestingHTTPClient creates an HTTP test server (with a configurable request
// handler), an API Client and connects them together.  The API client and the
// server's shutdown switch are returned. Every request is routed to the test
// server whatever host its URI names.
func NewTestingHTTPClient(handler http.Handler, a auth.IAuthenticator) (cli *Client, closerFn func()) {
	srv := httptest.NewServer(handler)

	if a == nil {
		a = &auth.NullAuthenticator{}
	}

	cli = &Client{
		HTTPClient: http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, network, _ string) (net.Conn, error) {
					return net.Dial(network, srv.Listener.Addr().String())
				},
			},
			CheckRedirect: NoRedirect,
		},
		Auth:   a,
		Logger: zap.NewNop(),
	}

	closerFn = srv.Close

	return
}
