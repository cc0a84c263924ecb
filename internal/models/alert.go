package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AlertType enumerates the pattern-detection rules that can fire.
type AlertType string

const (
	// AlertConsecutiveLow fires after a run of low-mood days reaches the
	// user's intervention threshold.
	AlertConsecutiveLow AlertType = "consecutive_low"
	// AlertSuddenDrop fires when a positive day is immediately followed
	// by a negative one.
	AlertSuddenDrop AlertType = "sudden_drop"
)

// De-duplication windows per alert type. An alert of a type suppresses
// new alerts of that type within its window; dismissal does not reset
// the window.
const (
	ConsecutiveLowDedupWindow = 7 * 24 * time.Hour
	SuddenDropDedupWindow     = 3 * 24 * time.Hour
)

// AlertDetail is the type-specific payload of a PatternAlert. Each
// alert type has exactly one detail variant, so rendering code can
// switch exhaustively instead of poking at an untyped blob.
type AlertDetail interface {
	AlertType() AlertType
}

// ConsecutiveLowDetail records the run that triggered a consecutive_low
// alert. Field names are part of the persisted payload contract.
type ConsecutiveLowDetail struct {
	ConsecutiveDays int      `json:"consecutiveDays"`
	Dates           []string `json:"dates"`
	Emojis          []string `json:"emojis"`
}

func (ConsecutiveLowDetail) AlertType() AlertType { return AlertConsecutiveLow }

// SuddenDropDetail records the positive-to-negative transition that
// triggered a sudden_drop alert.
type SuddenDropDetail struct {
	FromEmoji string `json:"fromEmoji"`
	ToEmoji   string `json:"toEmoji"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
}

func (SuddenDropDetail) AlertType() AlertType { return AlertSuddenDrop }

// PatternAlert is a persisted alert raised by the pattern detector.
// Dismissal is the only terminal transition; alerts never auto-expire.
type PatternAlert struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	AlertType   AlertType   `json:"alert_type"`
	Detail      AlertDetail `json:"detail"`
	DetectedAt  time.Time   `json:"detected_at"`
	Dismissed   bool        `json:"dismissed"`
	DismissedAt *time.Time  `json:"dismissed_at,omitempty"`
	EntryID     string      `json:"entry_id"`
}

// patternAlertJSON mirrors PatternAlert with the detail kept raw so the
// variant can be selected by alert_type during decoding.
type patternAlertJSON struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	AlertType   AlertType       `json:"alert_type"`
	Detail      json.RawMessage `json:"detail"`
	DetectedAt  time.Time       `json:"detected_at"`
	Dismissed   bool            `json:"dismissed"`
	DismissedAt *time.Time      `json:"dismissed_at,omitempty"`
	EntryID     string          `json:"entry_id"`
}

// UnmarshalJSON decodes the detail payload into the variant matching
// alert_type.
func (a *PatternAlert) UnmarshalJSON(data []byte) error {
	var raw patternAlertJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ID = raw.ID
	a.UserID = raw.UserID
	a.AlertType = raw.AlertType
	a.DetectedAt = raw.DetectedAt
	a.Dismissed = raw.Dismissed
	a.DismissedAt = raw.DismissedAt
	a.EntryID = raw.EntryID

	if len(raw.Detail) == 0 {
		a.Detail = nil
		return nil
	}

	switch raw.AlertType {
	case AlertConsecutiveLow:
		var detail ConsecutiveLowDetail
		if err := json.Unmarshal(raw.Detail, &detail); err != nil {
			return fmt.Errorf("failed to decode consecutive_low detail: %w", err)
		}
		a.Detail = detail
	case AlertSuddenDrop:
		var detail SuddenDropDetail
		if err := json.Unmarshal(raw.Detail, &detail); err != nil {
			return fmt.Errorf("failed to decode sudden_drop detail: %w", err)
		}
		a.Detail = detail
	default:
		return fmt.Errorf("unknown alert type %q", raw.AlertType)
	}

	return nil
}
