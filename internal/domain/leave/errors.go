package leave

import "github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"

// Leave application failures specialize the attendance error kinds and carry their codes.
var (
	ErrInvalidDateRange           = attendance.New(attendance.CodeLeaveConflict, "leave end date must be after start date")
	ErrDateInPast                 = attendance.New(attendance.CodeLeaveConflict, "leave cannot start in the past")
	ErrOverlappingLeave           = attendance.New(attendance.CodeLeaveConflict, "leave overlaps an existing pending or approved application")
	ErrCannotModifyApprovedLeave  = attendance.New(attendance.CodeLeaveConflict, "leave application has already been processed")
	ErrCannotCancelProcessedLeave = attendance.New(attendance.CodeLeaveConflict, "rejected or cancelled leave cannot be cancelled")
	ErrCannotCancelStartedLeave   = attendance.New(attendance.CodeLeaveConflict, "approved leave that has already started cannot be cancelled")
	ErrExceedsMaximumDuration     = attendance.New(attendance.CodeLeaveConflict, "leave exceeds the maximum duration allowed by the attendance group")
	ErrRequiresAdvanceNotice      = attendance.New(attendance.CodeLeaveConflict, "leave requires more advance notice")

	ErrInsufficientLeaveBalance = attendance.ErrInsufficientLeaveBalance

	ErrLeaveApplicationNotFound = attendance.New(attendance.CodeRecordNotFound, "leave application not found")
)
