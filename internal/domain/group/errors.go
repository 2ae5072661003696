package group

import "errors"

var (
	ErrGroupNotFound          = errors.New("attendance group not found")
	ErrGroupNameExists        = errors.New("attendance group with this name already exists")
	ErrEmployeeInAnotherGroup = errors.New("employee already belongs to another active attendance group")
	ErrShiftNotFound          = errors.New("work shift not found")
	ErrNoActiveShift          = errors.New("attendance group has no active work shift")
	ErrNoGroupForEmployee     = errors.New("employee does not belong to any active attendance group")
)
