package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// rejectionReason is the nested rejection object in a 2xx creation response
// whose business status is REJECTED.
type rejectionReason struct {
	RejectionCode    string `json:"rejectionCode"`
	RejectionMessage string `json:"rejectionMessage"`
}

// failureReason is the nested failure object on FAILED transactions.
type failureReason struct {
	FailureCode    string `json:"failureCode"`
	FailureMessage string `json:"failureMessage"`
}

// flatten renders the failure as the single human-readable string the
// domain model carries.
func (f *failureReason) flatten() string {
	if f == nil {
		return ""
	}
	if f.FailureMessage == "" {
		return f.FailureCode
	}
	if f.FailureCode == "" {
		return f.FailureMessage
	}
	return fmt.Sprintf("%s: %s", f.FailureCode, f.FailureMessage)
}

// unwrapStatusList extracts the single current status entry from a status
// check response. The provider returns status history as a list with the
// most recent entry first; this accessor isolates every caller from that
// surface quirk.
func unwrapStatusList(raw json.RawMessage) (json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode status list: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("provider returned an empty status list")
	}
	return list[0], nil
}

// parseCreated parses the provider's creation timestamp. A missing value is
// tolerated on initial accept responses; a present but malformed one is not.
func parseCreated(created string) (time.Time, error) {
	if created == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created timestamp %q: %w", created, err)
	}
	return t, nil
}
