// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

// Package snapshot decrypts the risk assessment snapshots handed out by the
// RISC browser script.
package snapshot

import (
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	StatusPassed = "passed"
	StatusRisky  = "risky"
	StatusFailed = "failed"
)

// Encrypted is the snapshot object handed out by the RISC browser script.
type Encrypted struct {
	// Ix is the offset into the doubled API secret at which the key
	// material starts.
	Ix int `json:"ix"`

	// IV is the hex encoded AES initialisation vector.
	IV string `json:"iv"`

	// Data is the base64 encoded AES-128-CBC ciphertext.
	Data string `json:"data"`
}

// Snapshot is a decrypted risk assessment.
type Snapshot struct {
	SnapshotID Text        `json:"snapshot_id"`
	BrowserID  Text        `json:"browser_id"`
	Date       Text        `json:"date"`
	Score      json.Number `json:"score"`
	Status     string      `json:"status"`

	// Passed, Risky and Failed are derived from Status by Classify. At most
	// one of them is true.
	Passed bool `json:"passed"`
	Risky  bool `json:"risky"`
	Failed bool `json:"failed"`
}

// Classify sets Passed, Risky and Failed from Status.
func (o *Snapshot) Classify() {
	o.Passed = o.Status == StatusPassed
	o.Risky = o.Status == StatusRisky
	o.Failed = o.Status == StatusFailed
}

// ValidationValues returns the fields the validate endpoint checks. Nothing
// else from the snapshot is sent back to the server.
func (o *Snapshot) ValidationValues() url.Values {
	return url.Values{
		"snapshot_id": {o.SnapshotID.String()},
		"browser_id":  {o.BrowserID.String()},
		"date":        {o.Date.String()},
		"score":       {o.Score.String()},
		"status":      {o.Status},
	}
}

// Text is a snapshot field the server may send either as a JSON string or as
// a JSON number. Numbers keep their literal text, so the value round-trips
// unchanged to the validate endpoint.
type Text string

func (o Text) String() string {
	return string(o)
}

func (o *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expecting string or number, got %s", b)
	}
	*o = Text(n)

	return nil
}
