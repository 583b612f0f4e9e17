// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	risc "github.com/lastwall-public/risc-go"
	"github.com/lastwall-public/risc-go/common"
	"github.com/lastwall-public/risc-go/snapshot"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var flagAPIKey = &cli.StringFlag{
	Name:     "api-key",
	EnvVars:  []string{"RISC_API_KEY"},
	Required: true,
	Usage:    "RISC public API key",
}

var flagAPISecret = &cli.StringFlag{
	Name:     "api-secret",
	EnvVars:  []string{"RISC_API_SECRET"},
	Required: true,
	Usage:    "RISC API secret",
}

var flagAuthMethod = &cli.StringFlag{
	Name:    "auth",
	EnvVars: []string{"RISC_AUTH_METHOD"},
	Value:   "basic",
	Usage:   "authentication method: basic or digest",
}

var flagAPIURL = &cli.StringFlag{
	Name:    "api-url",
	EnvVars: []string{"RISC_API_URL"},
	Value:   risc.DefaultBaseURI,
	Usage:   "base URL of the RISC service",
}

var flagTimeout = &cli.DurationFlag{
	Name:    "timeout",
	EnvVars: []string{"RISC_TIMEOUT"},
	Value:   common.DefaultTimeout,
	Usage:   "request timeout",
}

var flagClockSkew = &cli.DurationFlag{
	Name:    "clock-skew",
	EnvVars: []string{"RISC_CLOCK_SKEW"},
	Usage:   "offset added to the local clock when signing digest requests",
}

var flagGetParamsInURL = &cli.BoolFlag{
	Name:  "get-params-in-url",
	Usage: "send GET payloads in the query string instead of the body",
}

var flagCACerts = &cli.StringSliceFlag{
	Name:  "ca-cert",
	Usage: "additional PEM CA certificate to trust (repeatable)",
}

var flagInsecure = &cli.BoolFlag{
	Name:  "insecure",
	Usage: "skip TLS certificate verification",
}

var flagDebug = &cli.BoolFlag{
	Name:    "debug",
	EnvVars: []string{"RISC_DEBUG"},
	Usage:   "log each exchange to stderr",
}

var flagUserID = &cli.StringFlag{Name: "user-id", Required: true}
var flagSessionID = &cli.StringFlag{Name: "session-id", Required: true}
var flagEmail = &cli.StringFlag{Name: "email"}
var flagPhone = &cli.StringFlag{Name: "phone"}
var flagName = &cli.StringFlag{Name: "name"}

var flagSnapshotFile = &cli.StringFlag{
	Name:  "file",
	Value: "-",
	Usage: "encrypted snapshot JSON file, - for stdin",
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "risc",
		Usage: "call the RISC risk scoring API",
		Flags: []cli.Flag{
			flagAPIKey,
			flagAPISecret,
			flagAuthMethod,
			flagAPIURL,
			flagTimeout,
			flagClockSkew,
			flagGetParamsInURL,
			flagCACerts,
			flagInsecure,
			flagDebug,
		},
		Commands: []*cli.Command{
			{
				Name:  "verify",
				Usage: "verify the API key",
				Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
					return s.Verify()
				}),
			},
			{
				Name:  "script-url",
				Usage: "print the base URL of the browser script",
				Action: func(cCtx *cli.Context) error {
					s, _, err := newService(cCtx)
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, s.ScriptURL())
					return nil
				},
			},
			{
				Name:  "user",
				Usage: "manage user accounts",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Flags: []cli.Flag{flagUserID, flagEmail, flagPhone, flagName},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.CreateUser(
								cCtx.String(flagUserID.Name),
								cCtx.String(flagEmail.Name),
								cCtx.String(flagPhone.Name),
								cCtx.String(flagName.Name),
							)
						}),
					},
					{
						Name:  "get",
						Flags: []cli.Flag{flagUserID},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.GetUser(cCtx.String(flagUserID.Name))
						}),
					},
					{
						Name:  "update",
						Flags: []cli.Flag{flagUserID, flagEmail, flagPhone, flagName},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.UpdateUser(
								cCtx.String(flagUserID.Name),
								cCtx.String(flagEmail.Name),
								cCtx.String(flagPhone.Name),
								cCtx.String(flagName.Name),
							)
						}),
					},
					{
						Name:  "delete",
						Flags: []cli.Flag{flagUserID},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.DeleteUser(cCtx.String(flagUserID.Name))
						}),
					},
				},
			},
			{
				Name:  "session",
				Usage: "manage sessions",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Flags: []cli.Flag{flagUserID},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.CreateSession(cCtx.String(flagUserID.Name))
						}),
					},
					{
						Name:  "get",
						Flags: []cli.Flag{flagSessionID},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							return s.GetSession(cCtx.String(flagSessionID.Name))
						}),
					},
				},
			},
			{
				Name:  "snapshot",
				Usage: "decrypt and validate snapshots",
				Subcommands: []*cli.Command{
					{
						Name:  "decrypt",
						Flags: []cli.Flag{flagSnapshotFile},
						Action: func(cCtx *cli.Context) error {
							s, _, err := newService(cCtx)
							if err != nil {
								return err
							}

							snap, err := decryptSnapshotFile(s, cCtx.String(flagSnapshotFile.Name))
							if err != nil {
								return err
							}

							return printJSON(cCtx.App.Writer, snap)
						},
					},
					{
						Name:  "validate",
						Usage: "decrypt a snapshot and check it with the service",
						Flags: []cli.Flag{flagSnapshotFile},
						Action: withService(func(cCtx *cli.Context, s *risc.Service) (*common.Response, error) {
							snap, err := decryptSnapshotFile(s, cCtx.String(flagSnapshotFile.Name))
							if err != nil {
								return nil, err
							}
							return s.ValidateSnapshot(snap)
						}),
					},
				},
			},
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func newService(cCtx *cli.Context) (*risc.Service, *zap.Logger, error) {
	logger, err := newLogger(cCtx.Bool(flagDebug.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	cfg := map[string]interface{}{
		"api_key":           cCtx.String(flagAPIKey.Name),
		"api_secret":        cCtx.String(flagAPISecret.Name),
		"auth_method":       cCtx.String(flagAuthMethod.Name),
		"api_url":           cCtx.String(flagAPIURL.Name),
		"timeout":           cCtx.Duration(flagTimeout.Name),
		"clock_skew":        cCtx.Duration(flagClockSkew.Name),
		"get_params_in_url": cCtx.Bool(flagGetParamsInURL.Name),
		"ca_certs":          cCtx.StringSlice(flagCACerts.Name),
		"insecure":          cCtx.Bool(flagInsecure.Name),
	}

	s, err := risc.NewServiceFromConfig(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return s, logger, nil
}

type serviceAction func(cCtx *cli.Context, s *risc.Service) (*common.Response, error)

// withService runs an API call and prints the response envelope. A response
// carrying an error makes the command fail.
func withService(fn serviceAction) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		s, logger, err := newService(cCtx)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		res, err := fn(cCtx, s)
		if err != nil {
			return err
		}

		if err := printJSON(cCtx.App.Writer, envelope(res)); err != nil {
			return err
		}

		if err := res.Err(); err != nil {
			return cli.Exit(err.Error(), 2)
		}

		if !res.OK() {
			return cli.Exit(fmt.Sprintf("HTTP %d", res.Code()), 2)
		}

		return nil
	}
}

func decryptSnapshotFile(s *risc.Service, path string) (*snapshot.Snapshot, error) {
	var (
		raw []byte
		err error
	)

	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot: %w", err)
	}

	return s.DecryptSnapshot(raw)
}

type responseView struct {
	OK     bool        `json:"ok"`
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Body   interface{} `json:"body"`
}

func envelope(res *common.Response) responseView {
	return responseView{
		OK:     res.OK(),
		Code:   res.Code(),
		Status: res.Status(),
		Error:  res.Error(),
		Body:   res.Body(),
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
