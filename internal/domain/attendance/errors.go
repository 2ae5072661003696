package attendance

import "errors"

// Code is the stable numeric identifier of an attendance error kind.
type Code int

const (
	CodeInvalidCheckIn           Code = 1001
	CodeDuplicateCheckIn         Code = 1002
	CodeInvalidLocation          Code = 1003
	CodeOutsideWorkTime          Code = 1004
	CodeNoAttendanceGroup        Code = 1005
	CodeInsufficientLeaveBalance Code = 1006
	CodeLeaveConflict            Code = 1007
	CodeExceedPatchLimit         Code = 1008
	CodeInvalidOvertime          Code = 1009
	CodeRecordNotFound           Code = 1010
)

// Error is a coded domain failure. Kinds are the ten base errors below;
// specializations declared with New match their kind through errors.Is.
type Error struct {
	Code    Code
	Message string
	kind    bool
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the kind this error belongs to.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind && t.Code == e.Code
}

func newKind(code Code, message string) *Error {
	return &Error{Code: code, Message: message, kind: true}
}

// New declares a specialization of the kind identified by code.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the code from the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

var (
	ErrInvalidCheckIn           = newKind(CodeInvalidCheckIn, "invalid check-in")
	ErrDuplicateCheckIn         = newKind(CodeDuplicateCheckIn, "you have already checked in today")
	ErrInvalidLocation          = newKind(CodeInvalidLocation, "you are outside the allowed check-in locations")
	ErrOutsideWorkTime          = newKind(CodeOutsideWorkTime, "check-in is outside of working time")
	ErrNoAttendanceGroup        = newKind(CodeNoAttendanceGroup, "employee does not belong to any attendance group")
	ErrInsufficientLeaveBalance = newKind(CodeInsufficientLeaveBalance, "insufficient leave balance")
	ErrLeaveConflict            = newKind(CodeLeaveConflict, "leave application conflicts with an existing one")
	ErrExceedPatchLimit         = newKind(CodeExceedPatchLimit, "monthly attendance patch limit exceeded")
	ErrInvalidOvertime          = newKind(CodeInvalidOvertime, "invalid overtime application")
	ErrRecordNotFound           = newKind(CodeRecordNotFound, "attendance record not found")
)

var (
	ErrNotCheckedIn      = New(CodeInvalidCheckIn, "you have not checked in yet")
	ErrAlreadyCheckedOut = New(CodeInvalidCheckIn, "you have already checked out")
	ErrCheckOutBeforeIn  = New(CodeInvalidCheckIn, "check-out time must be after check-in time")
)
