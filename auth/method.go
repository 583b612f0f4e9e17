// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package auth

import "fmt"

// Method is the enumeration of authentication methods supported by the RISC
// service. It implements the pflag.Value interface.
type Method string

const (
	MethodPassthrough Method = "passthrough"
	MethodBasic       Method = "basic"
	MethodDigest      Method = "digest"
)

// String representation of the Method
func (o *Method) String() string {
	return string(*o)
}

// Set the value of the Method
func (o *Method) Set(v string) error {
	switch v {
	case "none", "passthrough":
		*o = MethodPassthrough
	case "", "basic":
		*o = MethodBasic
	case "digest", "hmac":
		*o = MethodDigest
	default:
		return fmt.Errorf("unexpected Method %q", v)
	}

	return nil
}

// Type returns the string representing the type name (used by pflag).
func (o *Method) Type() string {
	return "Method"
}

// NewAuthenticator returns an unconfigured authenticator for the method.
func NewAuthenticator(m Method) (IAuthenticator, error) {
	switch m {
	case MethodPassthrough:
		return &NullAuthenticator{}, nil
	case MethodBasic, "":
		return &BasicAuthenticator{}, nil
	case MethodDigest:
		return &DigestAuthenticator{}, nil
	default:
		return nil, fmt.Errorf("unexpected Method %q", m)
	}
}
