// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// BasicAuthenticator authenticates with HTTP Basic credentials built from the
// API token and secret.
type BasicAuthenticator struct {
	Token  string
	Secret string
}

func (o *BasicAuthenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		Token  string                 `mapstructure:"token"`
		Secret string                 `mapstructure:"secret"`
		Rest   map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.Token = decoded.Token
	o.Secret = decoded.Secret

	if err := o.validate(); err != nil {
		return err
	}

	return checkUnexpected(decoded.Rest)
}

func (o *BasicAuthenticator) EncodeHeader() (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}

	credsRaw := fmt.Sprintf("%s:%s", o.Token, o.Secret)
	credsEncoded := base64.StdEncoding.EncodeToString([]byte(credsRaw))
	header := fmt.Sprintf("Basic %s", credsEncoded)

	return header, nil
}

// Sign returns the Authorization header. Method and URI do not take part in
// Basic credentials.
func (o *BasicAuthenticator) Sign(method, uri string) (http.Header, error) {
	header, err := o.EncodeHeader()
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set("Authorization", header)

	return h, nil
}

func (o *BasicAuthenticator) validate() error {
	if o.Token == "" {
		return errors.New("missing token")
	}

	if o.Secret == "" {
		return errors.New("missing secret")
	}

	return nil
}

func checkUnexpected(rest map[string]interface{}) error {
	if len(rest) == 0 {
		return nil
	}

	var unexpected []string
	for k := range rest {
		unexpected = append(unexpected, k)
	}

	return fmt.Errorf("unexpected fields in config: %s",
		strings.Join(unexpected, ", "))
}
