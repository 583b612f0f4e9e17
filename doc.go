// Copyright 2021 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package risc is a client for the Lastwall RISC risk scoring service.

Service

A Service is created from the API key, the API secret, the authentication
method and the base URL of the service (empty for the production default):

	svc, err := risc.NewService(apiKey, apiSecret, auth.MethodDigest, "")
	if err != nil { ... }

With auth.MethodBasic the key and secret travel as HTTP Basic credentials.
With auth.MethodDigest every request carries a fresh request id, a timestamp
and an HMAC-SHA1 signature over the request URL, id and timestamp instead.

Every API call returns a *common.Response. Transport failures, HTTP failures
and errors reported by the service all end up there, not in the returned
error, which is only set when a request could not be built or signed:

	res, err := svc.CreateSession("jdoe")
	if err != nil { ... }
	if !res.OK() || res.Error() != "" {
		log.Printf("%s: %s", res.Status(), res.Error())
	}
	sessionID := res.Get("session_id")

Snapshots

The RISC browser script hands out encrypted snapshots. They are decrypted
with the API secret and should then be checked with the service:

	snap, err := svc.DecryptSnapshot(encrypted)
	if err != nil { ... }

	res, err := svc.ValidateSnapshot(snap)
	if err == nil && res.OK() && res.Error() == "" && snap.Passed { ... }

The base URL is always normalized to end with a slash and endpoint names are
joined onto it, so "https://risc.example/api" and "https://risc.example/api/"
are equivalent.
*/
package risc
