package overtime

import "github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"

// Overtime failures specialize attendance.ErrInvalidOvertime and carry its code.
var (
	ErrInvalidTimeRange              = attendance.New(attendance.CodeInvalidOvertime, "overtime end time must be after start time")
	ErrImplausibleDuration           = attendance.New(attendance.CodeInvalidOvertime, "overtime duration must be positive and at most 24 hours")
	ErrExceedsMaximumDuration        = attendance.New(attendance.CodeInvalidOvertime, "overtime exceeds the maximum duration allowed by the attendance group")
	ErrOverlappingOvertime           = attendance.New(attendance.CodeInvalidOvertime, "overtime overlaps an existing pending or approved application")
	ErrOverlapsShift                 = attendance.New(attendance.CodeInvalidOvertime, "workday overtime cannot overlap the regular shift")
	ErrCannotModifyProcessedOvertime = attendance.New(attendance.CodeInvalidOvertime, "overtime application has already been processed")
	ErrCannotCancelProcessedOvertime = attendance.New(attendance.CodeInvalidOvertime, "rejected or cancelled overtime cannot be cancelled")
	ErrCannotCancelStartedOvertime   = attendance.New(attendance.CodeInvalidOvertime, "approved overtime that has already started cannot be cancelled")

	ErrOvertimeApplicationNotFound = attendance.New(attendance.CodeRecordNotFound, "overtime application not found")
)
