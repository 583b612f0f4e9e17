// Copyright 2021 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeBaseURI parses an API base URI and makes sure its path ends with a
// slash, so that endpoint names can be joined onto it.
func NormalizeBaseURI(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed URI: %w", err)
	}

	if !u.IsAbs() {
		return nil, fmt.Errorf("URI is not absolute: %q", uri)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u, nil
}
