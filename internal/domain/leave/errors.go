package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request has already been processed")
	ErrOverlappingLeave             = errors.New("you already have approved leave during this period")
	ErrInsufficientNotice           = errors.New("leave request does not meet the notice period")
)
