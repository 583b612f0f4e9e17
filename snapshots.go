// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package risc

import (
	"errors"
	"net/http"

	"github.com/lastwall-public/risc-go/common"
	"github.com/lastwall-public/risc-go/snapshot"
)

// DecryptSnapshot decrypts the JSON encrypted snapshot object returned by the
// RISC browser script, using the service's API secret.
func (o *Service) DecryptSnapshot(raw []byte) (*snapshot.Snapshot, error) {
	return snapshot.DecryptJSON(raw, o.Secret)
}

// ValidateSnapshot asks the service to confirm the integrity of a decrypted
// snapshot. Only snapshot_id, browser_id, date, score and status are sent.
func (o *Service) ValidateSnapshot(s *snapshot.Snapshot) (*common.Response, error) {
	if s == nil {
		return nil, errors.New("no snapshot supplied")
	}

	return o.call(http.MethodGet, ValidatePath, s.ValidationValues())
}
