// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRequestID returns a random RFC 4122 version 4 identifier in its
// canonical 36 character form. It is used as the per-request nonce of
// digest-signed requests.
func NewRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating request id: %w", err)
	}

	return id.String(), nil
}
