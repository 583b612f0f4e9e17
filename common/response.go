// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	// NoResponseError is the error text of a Response for which the server
	// sent nothing back.
	NoResponseError = "No response from server"

	StatusOK    = "OK"
	StatusError = "Error"
)

// Response is the normalized view of one RISC API exchange.
//
// OK depends on the HTTP code alone. A 2xx response whose body reports
// "status": "Error" is OK and still carries the error text in Error.
type Response struct {
	code int
	raw  string
	body interface{}
	err  string
}

// NewResponse classifies a status code and body text. An empty body means the
// server did not respond.
func NewResponse(statusCode int, body string) *Response {
	return newResponse(statusCode, body, "")
}

func newResponse(statusCode int, body, contentType string) *Response {
	r := &Response{code: statusCode, raw: body}

	if body == "" {
		r.err = NoResponseError
		return r
	}

	r.body = decodeBody(body)

	switch {
	case r.field("status") == StatusError:
		r.err = text(r.field("error"))
	case r.field("error") != nil:
		r.err = text(r.field("error"))
	case !r.OK():
		if prob := problemFromBody(contentType, body); prob != nil {
			r.err = prob.Error()
		} else if s, ok := r.body.(string); ok {
			r.err = s
		} else {
			r.err = body
		}
	}

	return r
}

// OK reports whether the HTTP code is in [200, 400).
func (r *Response) OK() bool {
	return r.code >= 200 && r.code < 400
}

// Code returns the HTTP status code, or 0 if the server did not respond.
func (r *Response) Code() int {
	return r.code
}

// Status returns the body's "status" field when there is one, otherwise "OK"
// or "Error" depending on the HTTP code.
func (r *Response) Status() string {
	if s := r.field("status"); s != nil {
		return text(s)
	}

	if r.OK() {
		return StatusOK
	}

	return StatusError
}

// Error returns the error message, or "" if there was none.
func (r *Response) Error() string {
	return r.err
}

// Err returns the error message as an error value, or nil.
func (r *Response) Err() error {
	if r.err == "" {
		return nil
	}
	return &ResponseError{Code: r.code, Status: r.Status(), Message: r.err}
}

// Body returns the JSON-decoded body, or nil when there was none or it was
// not valid JSON. Numbers are decoded as json.Number.
func (r *Response) Body() interface{} {
	return r.body
}

// RawResponse returns the unparsed body text.
func (r *Response) RawResponse() string {
	return r.raw
}

// Get returns the value of a top-level body field, or nil if the body is not
// an object or the key is absent.
func (r *Response) Get(key string) interface{} {
	return r.field(key)
}

// Decode maps the decoded body onto v, which must be a pointer. Struct fields
// are matched using their json tags.
func (r *Response) Decode(v interface{}) error {
	if r.body == nil {
		return errors.New("empty body")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(r.body); err != nil {
		return fmt.Errorf("failure decoding response body: %w", err)
	}

	return nil
}

func (r *Response) field(key string) interface{} {
	m, ok := r.body.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// ResponseError is the error form of a Response carrying an error message.
type ResponseError struct {
	Code    int
	Status  string
	Message string
}

func (o *ResponseError) Error() string {
	return fmt.Sprintf("%s (%d): %s", o.Status, o.Code, o.Message)
}

func decodeBody(body string) interface{} {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	// trailing garbage makes the whole body invalid
	if _, err := dec.Token(); err != io.EOF {
		return nil
	}

	return v
}

func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
