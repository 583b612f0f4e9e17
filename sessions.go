// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package risc

import (
	"errors"
	"net/http"

	"github.com/lastwall-public/risc-go/common"
)

// CreateSession opens a RISC session for a user.
func (o *Service) CreateSession(userID string) (*common.Response, error) {
	if userID == "" {
		return nil, errors.New("no user id supplied")
	}

	return o.call(http.MethodPost, SessionsPath, form("user_id", userID))
}

// GetSession fetches a session, including its current status.
func (o *Service) GetSession(sessionID string) (*common.Response, error) {
	if sessionID == "" {
		return nil, errors.New("no session id supplied")
	}

	return o.call(http.MethodGet, SessionsPath, form("session_id", sessionID))
}
