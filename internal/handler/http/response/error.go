package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type codedStatus struct {
	status int
	name   string
}

var codedStatuses = map[attendance.Code]codedStatus{
	attendance.CodeInvalidCheckIn:           {http.StatusBadRequest, "INVALID_CHECK_IN"},
	attendance.CodeDuplicateCheckIn:         {http.StatusConflict, "DUPLICATE_CHECK_IN"},
	attendance.CodeInvalidLocation:          {http.StatusBadRequest, "INVALID_LOCATION"},
	attendance.CodeOutsideWorkTime:          {http.StatusBadRequest, "OUTSIDE_WORK_TIME"},
	attendance.CodeNoAttendanceGroup:        {http.StatusForbidden, "NO_ATTENDANCE_GROUP"},
	attendance.CodeInsufficientLeaveBalance: {http.StatusBadRequest, "INSUFFICIENT_LEAVE_BALANCE"},
	attendance.CodeLeaveConflict:            {http.StatusConflict, "LEAVE_CONFLICT"},
	attendance.CodeExceedPatchLimit:         {http.StatusTooManyRequests, "EXCEED_PATCH_LIMIT"},
	attendance.CodeInvalidOvertime:          {http.StatusBadRequest, "INVALID_OVERTIME"},
	attendance.CodeRecordNotFound:           {http.StatusNotFound, "RECORD_NOT_FOUND"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if errors.Is(err, approval.ErrVersionConflict) {
		Conflict(w, err.Error())
		return
	}

	// Attendance, leave and overtime errors carry a numeric code
	if code, ok := attendance.CodeOf(err); ok {
		cs, known := codedStatuses[code]
		if !known {
			cs = codedStatus{http.StatusBadRequest, "BAD_REQUEST"}
		}
		Coded(w, cs.status, cs.name, int(code), err.Error())
		return
	}

	switch {
	case errors.Is(err, approval.ErrInvalidTransition):
		Conflict(w, err.Error())

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Attendance group not found")
	case errors.Is(err, group.ErrShiftNotFound):
		NotFound(w, "Work shift not found")
	case errors.Is(err, group.ErrGroupNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, group.ErrEmployeeInAnotherGroup):
		Conflict(w, err.Error())
	case errors.Is(err, group.ErrNoGroupForEmployee):
		NotFound(w, err.Error())
	case errors.Is(err, group.ErrNoActiveShift):
		NotFound(w, err.Error())

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange), errors.Is(err, report.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
