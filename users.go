// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package risc

import (
	"errors"
	"net/http"

	"github.com/lastwall-public/risc-go/common"
)

// CreateUser registers a user account. The name is optional and is left out
// of the request when empty.
func (o *Service) CreateUser(userID, email, phone, name string) (*common.Response, error) {
	if userID == "" {
		return nil, errors.New("no user id supplied")
	}

	if email == "" {
		return nil, errors.New("no email supplied")
	}

	if phone == "" {
		return nil, errors.New("no phone supplied")
	}

	return o.call(http.MethodPost, UsersPath, form(
		"user_id", userID,
		"email", email,
		"phone", phone,
		"name", name,
	))
}

// GetUser fetches a user account.
func (o *Service) GetUser(userID string) (*common.Response, error) {
	if userID == "" {
		return nil, errors.New("no user id supplied")
	}

	return o.call(http.MethodGet, UsersPath, form("user_id", userID))
}

// UpdateUser modifies a user account. Only the non-empty fields are sent.
func (o *Service) UpdateUser(userID, email, phone, name string) (*common.Response, error) {
	if userID == "" {
		return nil, errors.New("no user id supplied")
	}

	return o.call(http.MethodPut, UsersPath, form(
		"user_id", userID,
		"email", email,
		"phone", phone,
		"name", name,
	))
}

// DeleteUser removes a user account.
func (o *Service) DeleteUser(userID string) (*common.Response, error) {
	if userID == "" {
		return nil, errors.New("no user id supplied")
	}

	return o.call(http.MethodDelete, UsersPath, form("user_id", userID))
}
