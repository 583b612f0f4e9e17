package common

import (
	"encoding/json"
	"fmt"
	"mime"

	"github.com/moogar0880/problems"
)

type ProblemError struct {
	problems.DefaultProblem
}

func (o *ProblemError) Error() string {
	return fmt.Sprintf("%d %s: %s", o.ProblemStatus(), o.ProblemTitle(), o.Detail)
}

// problemFromBody returns the RFC 7807 problem carried by a response, or nil
// if the content type is not problem+json or the body does not decode.
func problemFromBody(contentType, body string) *ProblemError {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt != problems.ProblemMediaType {
		return nil
	}

	var prob ProblemError
	if err := json.Unmarshal([]byte(body), &prob.DefaultProblem); err != nil {
		return nil
	}

	return &prob
}
