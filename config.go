// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package risc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lastwall-public/risc-go/auth"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Config is the decoded form of a Service configuration map.
type Config struct {
	APIKey         string        `mapstructure:"api_key"`
	APISecret      string        `mapstructure:"api_secret"`
	AuthMethod     string        `mapstructure:"auth_method"`
	APIURL         string        `mapstructure:"api_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	GetParamsInURL bool          `mapstructure:"get_params_in_url"`
	ClockSkew      time.Duration `mapstructure:"clock_skew"`
	CACerts        []string      `mapstructure:"ca_certs"`
	Insecure       bool          `mapstructure:"insecure"`
}

// DecodeConfig decodes a configuration map. Durations may be given as
// strings ("10s") and unknown keys are rejected.
func DecodeConfig(cfg map[string]interface{}) (*Config, error) {
	decoded := struct {
		Config `mapstructure:",squash"`
		Rest   map[string]interface{} `mapstructure:",remain"`
	}{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(decoded.Rest) > 0 {
		var unexpected []string
		for k := range decoded.Rest {
			unexpected = append(unexpected, k)
		}
		sort.Strings(unexpected)
		return nil, fmt.Errorf("unexpected fields in config: %s",
			strings.Join(unexpected, ", "))
	}

	return &decoded.Config, nil
}

// NewServiceFromConfig builds a Service from a configuration map. A nil
// logger disables logging.
func NewServiceFromConfig(cfg map[string]interface{}, logger *zap.Logger) (*Service, error) {
	c, err := DecodeConfig(cfg)
	if err != nil {
		return nil, err
	}

	return c.NewService(logger)
}

// NewService builds a Service from the configuration.
func (c *Config) NewService(logger *zap.Logger) (*Service, error) {
	var method auth.Method
	if err := method.Set(c.AuthMethod); err != nil {
		return nil, err
	}

	if c.ClockSkew != 0 && method != auth.MethodDigest {
		return nil, errors.New("clock_skew requires digest authentication")
	}

	s, err := NewService(c.APIKey, c.APISecret, method, c.APIURL)
	if err != nil {
		return nil, err
	}

	if da, ok := s.Client.Auth.(*auth.DigestAuthenticator); ok {
		da.ClockSkew = c.ClockSkew
	}

	if c.Timeout > 0 {
		s.Client.HTTPClient.Timeout = c.Timeout
	}

	if len(c.CACerts) > 0 || c.Insecure {
		transport, err := auth.NewTLSTransport(c.CACerts, c.Insecure)
		if err != nil {
			return nil, err
		}
		s.Client.HTTPClient.Transport = transport
	}

	s.Client.GetParamsInURL = c.GetParamsInURL

	if logger != nil {
		s.Client.Logger = logger.With(
			zap.String("api_url", s.EndPointURI.String()),
			zap.String("auth_method", method.String()),
		)
	}

	return s, nil
}
