// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	TokenHeader     = "X-Lastwall-Token"
	TimestampHeader = "X-Lastwall-Timestamp"
	RequestIDHeader = "X-Lastwall-Request-Id"
	SignatureHeader = "X-Lastwall-Signature"

	FormMediaType = "application/x-www-form-urlencoded"
)

// DigestAuthenticator signs each request with an HMAC-SHA1 over the request
// URI, a fresh request id and the current Unix time. This is the RISC
// service's own scheme and is unrelated to RFC 7616 digest authentication.
type DigestAuthenticator struct {
	Token  string
	Secret string

	// ClockSkew is added to the local clock before the timestamp is taken.
	ClockSkew time.Duration

	// Now and RequestID default to time.Now and NewRequestID.
	Now       func() time.Time
	RequestID func() (string, error)
}

func (o *DigestAuthenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		Token     string                 `mapstructure:"token"`
		Secret    string                 `mapstructure:"secret"`
		ClockSkew time.Duration          `mapstructure:"clock_skew"`
		Rest      map[string]interface{} `mapstructure:",remain"`
	}{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &decoded,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(cfg); err != nil {
		return err
	}

	o.Token = decoded.Token
	o.Secret = decoded.Secret
	o.ClockSkew = decoded.ClockSkew

	if err := o.validate(); err != nil {
		return err
	}

	return checkUnexpected(decoded.Rest)
}

// Sign returns the digest headers for a request to uri. The method is not
// part of the signed material.
func (o *DigestAuthenticator) Sign(method, uri string) (http.Header, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	requestID, err := o.requestID()
	if err != nil {
		return nil, err
	}

	timestamp := strconv.FormatInt(o.now().Add(o.ClockSkew).UTC().Unix(), 10)

	h := http.Header{}
	h.Set("Content-Type", FormMediaType)
	h.Set(TokenHeader, o.Token)
	h.Set(TimestampHeader, timestamp)
	h.Set(RequestIDHeader, requestID)
	h.Set(SignatureHeader, Signature(uri, requestID, timestamp, o.Secret))

	return h, nil
}

// Signature computes base64(HMAC-SHA1(uri + requestID + timestamp, secret)).
// The three parts are concatenated without separators.
func Signature(uri, requestID, timestamp, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(uri + requestID + timestamp))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (o *DigestAuthenticator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *DigestAuthenticator) requestID() (string, error) {
	if o.RequestID != nil {
		return o.RequestID()
	}
	return NewRequestID()
}

func (o *DigestAuthenticator) validate() error {
	if o.Token == "" {
		return errors.New("missing token")
	}

	if o.Secret == "" {
		return errors.New("missing secret")
	}

	return nil
}
