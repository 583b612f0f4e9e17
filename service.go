// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package risc

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/lastwall-public/risc-go/auth"
	"github.com/lastwall-public/risc-go/common"
)

// DefaultBaseURI is the production RISC service.
const DefaultBaseURI = "https://risc.lastwall.com/"

const (
	VerifyPath   = "verify"
	UsersPath    = "users"
	SessionsPath = "sessions"
	ValidatePath = "validate"
	ScriptPath   = "risc/script"
)

// Service is the primary interface to the RISC API.
type Service struct {
	// Client is the underlying client used for HTTP requests.
	Client *common.Client

	// EndPointURI is the top-level service API URL, always ending with a
	// slash. Individual operations endpoints are relative to this.
	EndPointURI *url.URL

	// Token is the public API key.
	Token string

	// Secret is the API secret, also used to decrypt snapshots.
	Secret string
}

// NewService creates a new Service for the given credentials using the
// default HTTP client. An empty uri selects DefaultBaseURI.
func NewService(token, secret string, method auth.Method, uri string) (*Service, error) {
	a, err := auth.NewAuthenticator(method)
	if err != nil {
		return nil, err
	}

	if err := a.Configure(map[string]interface{}{
		"token":  token,
		"secret": secret,
	}); err != nil {
		return nil, err
	}

	s := Service{
		Client: common.NewClient(a),
		Token:  token,
		Secret: secret,
	}

	if uri == "" {
		uri = DefaultBaseURI
	}

	if err := s.SetEndpointURI(uri); err != nil {
		return nil, err
	}

	return &s, nil
}

// SetClient sets the HTTP(s) client connection configuration
func (o *Service) SetClient(client *common.Client) error {
	if client == nil {
		return errors.New("no client supplied")
	}
	o.Client = client
	return nil
}

// SetEndpointURI sets the base URI of the RISC service.
func (o *Service) SetEndpointURI(uri string) error {
	u, err := common.NormalizeBaseURI(uri)
	if err != nil {
		return err
	}

	o.EndPointURI = u

	return nil
}

// Verify checks the API key against the service.
func (o *Service) Verify() (*common.Response, error) {
	return o.call(http.MethodGet, VerifyPath, nil)
}

// ScriptURL returns the base URL of the RISC browser script for this API
// key. It must be postfixed with a user name.
func (o *Service) ScriptURL() string {
	return o.EndPointURI.JoinPath(ScriptPath, o.Token).String() + "/"
}

func (o *Service) call(method, path string, payload url.Values) (*common.Response, error) {
	if o.Client == nil {
		return nil, errors.New("no client supplied")
	}

	if o.EndPointURI == nil {
		return nil, errors.New("no endpoint URI")
	}

	return o.Client.Call(method, o.EndPointURI.JoinPath(path).String(), payload)
}

// form builds a payload from key/value pairs, leaving out empty values.
func form(kv ...string) url.Values {
	v := url.Values{}

	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			v.Set(kv[i], kv[i+1])
		}
	}

	return v
}
