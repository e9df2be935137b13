package calls

import (
	"errors"
	"fmt"
)

// ErrPhoneRequired rejects call initiation before any remote side effect.
var ErrPhoneRequired = errors.New("calls: phone number is required")

// ProfileError reports missing fields in a call profile. Profiles are all or
// nothing; partial profiles never reach the remote platform.
type ProfileError struct {
	Missing []string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("calls: profile missing required fields: %v", e.Missing)
}

// RemoteError wraps a failure talking to the calling platform. The message is
// passed through to API clients, so it must stay free of credentials.
type RemoteError struct {
	Op     string // "create" or "fetch"
	CallID string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.CallID != "" {
		return fmt.Sprintf("calls: %s %s: %v", e.Op, e.CallID, e.Err)
	}
	return fmt.Sprintf("calls: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsValidation reports whether err should surface as a client error (400)
// rather than a remote failure (500).
func IsValidation(err error) bool {
	var pe *ProfileError
	return errors.Is(err, ErrPhoneRequired) || errors.As(err, &pe)
}
