package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusNormal   Status = "normal"
	StatusLate     Status = "late"
	StatusEarly    Status = "early"
	StatusAbsent   Status = "absent"
	StatusLeave    Status = "leave"
	StatusOvertime Status = "overtime"
	StatusHoliday  Status = "holiday"
)

var StatusValues = []string{
	string(StatusNormal),
	string(StatusLate),
	string(StatusEarly),
	string(StatusAbsent),
	string(StatusLeave),
	string(StatusOvertime),
	string(StatusHoliday),
}

type CheckInType string

const (
	CheckInCard        CheckInType = "card"
	CheckInFingerprint CheckInType = "fingerprint"
	CheckInFace        CheckInType = "face"
	CheckInApp         CheckInType = "app"
	CheckInWifi        CheckInType = "wifi"
	CheckInBluetooth   CheckInType = "bluetooth"
	CheckInQRCode      CheckInType = "qr_code"
	CheckInManual      CheckInType = "manual"
)

var CheckInTypeValues = []string{
	string(CheckInCard),
	string(CheckInFingerprint),
	string(CheckInFace),
	string(CheckInApp),
	string(CheckInWifi),
	string(CheckInBluetooth),
	string(CheckInQRCode),
	string(CheckInManual),
}

type Meta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusMeta = map[Status]Meta{
	StatusNormal:   {Label: "Normal", Color: "success"},
	StatusLate:     {Label: "Late", Color: "warning"},
	StatusEarly:    {Label: "Left early", Color: "warning"},
	StatusAbsent:   {Label: "Absent", Color: "danger"},
	StatusLeave:    {Label: "On leave", Color: "info"},
	StatusOvertime: {Label: "Overtime", Color: "primary"},
	StatusHoliday:  {Label: "Holiday", Color: "secondary"},
}

var checkInTypeMeta = map[CheckInType]Meta{
	CheckInCard:        {Label: "Card", Color: "primary"},
	CheckInFingerprint: {Label: "Fingerprint", Color: "primary"},
	CheckInFace:        {Label: "Face recognition", Color: "primary"},
	CheckInApp:         {Label: "Mobile app", Color: "info"},
	CheckInWifi:        {Label: "Wi-Fi", Color: "info"},
	CheckInBluetooth:   {Label: "Bluetooth", Color: "info"},
	CheckInQRCode:      {Label: "QR code", Color: "info"},
	CheckInManual:      {Label: "Manual patch", Color: "warning"},
}

func (s Status) Label() string      { return statusMeta[s].Label }
func (s Status) Color() string      { return statusMeta[s].Color }
func (t CheckInType) Label() string { return checkInTypeMeta[t].Label }
func (t CheckInType) Color() string { return checkInTypeMeta[t].Color }

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusMeta[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

// Record is one employee's attendance on one work date.
// At most one record exists per (EmployeeID, WorkDate).
type Record struct {
	ID               int64
	EmployeeID       int64
	WorkDate         time.Time
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CheckInType      CheckInType
	CheckInLocation  *string
	CheckOutLocation *string
	Status           Status
	AbnormalReason   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkedMinutes is check-out minus check-in. ok is false when either end is
// missing or the pair is not increasing.
func (r Record) WorkedMinutes() (minutes int, ok bool) {
	if r.CheckInTime == nil || r.CheckOutTime == nil {
		return 0, false
	}
	if !r.CheckOutTime.After(*r.CheckInTime) {
		return 0, false
	}
	return int(r.CheckOutTime.Sub(*r.CheckInTime).Minutes()), true
}

// DateOnly returns the wall-clock date of t as midnight UTC, the form DATE
// columns scan into.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
