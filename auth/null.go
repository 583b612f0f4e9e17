// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import "net/http"

type NullAuthenticator struct{}

func (o *NullAuthenticator) Configure(cfg map[string]interface{}) error {
	return nil
}

func (o *NullAuthenticator) Sign(method, uri string) (http.Header, error) {
	return http.Header{}, nil
}
