package attendance

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_SpecializationMatchesKind(t *testing.T) {
	assert.True(t, errors.Is(ErrNotCheckedIn, ErrInvalidCheckIn))
	assert.False(t, errors.Is(ErrNotCheckedIn, ErrDuplicateCheckIn))
	assert.False(t, errors.Is(ErrInvalidCheckIn, ErrNotCheckedIn))

	wrapped := fmt.Errorf("check-out failed: %w", ErrAlreadyCheckedOut)
	assert.True(t, errors.Is(wrapped, ErrInvalidCheckIn))
	assert.True(t, errors.Is(wrapped, ErrAlreadyCheckedOut))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("x: %w", ErrExceedPatchLimit))
	assert.True(t, ok)
	assert.Equal(t, CodeExceedPatchLimit, code)
	assert.Equal(t, Code(1008), code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorCodes_AreStable(t *testing.T) {
	kinds := []*Error{
		ErrInvalidCheckIn, ErrDuplicateCheckIn, ErrInvalidLocation, ErrOutsideWorkTime,
		ErrNoAttendanceGroup, ErrInsufficientLeaveBalance, ErrLeaveConflict,
		ErrExceedPatchLimit, ErrInvalidOvertime, ErrRecordNotFound,
	}
	for i, k := range kinds {
		assert.Equal(t, Code(1001+i), k.Code, k.Message)
	}
}
