package attendance

import (
	"context"
	"time"
)

// Service defines business logic for attendance operations
type Service interface {
	// CheckIn records the first punch of the day and derives the initial status
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut records the last punch of the day and finalizes the status
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// Patch lets a manager correct a missing or wrong punch, subject to the monthly limit
	Patch(ctx context.Context, req PatchRequest) (RecordResponse, error)

	GetRecord(ctx context.Context, id int64) (RecordResponse, error)

	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)

	// MarkAbsent creates absent/leave records for members without a record on workDate
	MarkAbsent(ctx context.Context, workDate time.Time) (int, error)
}
