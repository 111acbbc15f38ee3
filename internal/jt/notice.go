package jt

import (
	"errors"
	"fmt"
)

// Action names a user-visible operation in notices.
type Action string

const (
	ActionCreateApplication  Action = "add application"
	ActionUpdateApplication  Action = "update application"
	ActionDeleteApplication  Action = "delete application"
	ActionArchiveApplication Action = "archive application"
	ActionAddStage           Action = "add stage"
	ActionRemoveStage        Action = "remove stage"
	ActionToggleStage        Action = "update stage"
	ActionSaveCompany        Action = "save company"
	ActionDeleteCompany      Action = "delete company"
	ActionSaveContact        Action = "save contact"
	ActionDeleteContact      Action = "delete contact"
)

// Notice is a failure phrased for the user. Error() hides internal detail;
// Unwrap keeps the cause for logs and errors.Is.
type Notice struct {
	Action Action
	Err    error
}

func NewNotice(action Action, err error) *Notice {
	return &Notice{Action: action, Err: err}
}

func (n *Notice) Error() string {
	var verr *ValidationError
	if errors.As(n.Err, &verr) {
		return fmt.Sprintf("Cannot %s: %s.", n.Action, verr.Error())
	}
	if errors.Is(n.Err, ErrLastStage) {
		return fmt.Sprintf("Cannot %s: an application needs at least one stage.", n.Action)
	}
	if errors.Is(n.Err, ErrStageIndexOutOfRange) {
		return fmt.Sprintf("Cannot %s: no such stage.", n.Action)
	}
	return fmt.Sprintf("Failed to %s. Please try again.", n.Action)
}

func (n *Notice) Unwrap() error { return n.Err }
