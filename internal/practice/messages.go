package practice

import (
	"errors"

	"worddee/internal/apiclient"
)

// submissionMessage maps a sentence validation failure to the text shown to
// the learner
func submissionMessage(err error) string {
	var statusErr *apiclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.Detail != "" {
			return "Validation failed: " + statusErr.Detail
		}
		return MsgValidationFailed
	case errors.Is(err, apiclient.ErrUnavailable):
		return MsgValidationFailed
	default:
		return MsgUnexpected
	}
}
