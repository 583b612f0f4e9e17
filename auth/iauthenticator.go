// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import "net/http"

// IAuthenticator produces the credentials attached to an outgoing request.
// Sign is called once per request with the HTTP method and the full request
// URI (including any query string) and returns the headers to set on it.
type IAuthenticator interface {
	Configure(cfg map[string]interface{}) error
	Sign(method, uri string) (http.Header, error)
}
