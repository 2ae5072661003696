package holiday

import "time"

type Type string

const (
	TypeNational Type = "national"
	TypeCompany  Type = "company"
	TypeSpecial  Type = "special"
)

var TypeValues = []string{
	string(TypeNational),
	string(TypeCompany),
	string(TypeSpecial),
}

type Meta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var typeMeta = map[Type]Meta{
	TypeNational: {Label: "National holiday", Color: "danger"},
	TypeCompany:  {Label: "Company holiday", Color: "primary"},
	TypeSpecial:  {Label: "Special day", Color: "info"},
}

func (t Type) Label() string { return typeMeta[t].Label }
func (t Type) Color() string { return typeMeta[t].Color }

// Config is a configured holiday. An empty ApplicableDepartments applies to everyone.
type Config struct {
	ID                    int64
	Name                  string
	HolidayDate           time.Time
	Type                  Type
	Description           *string
	IsPaid                bool
	IsMandatory           bool
	ApplicableDepartments []int64
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AppliesTo reports whether the holiday covers an employee of departmentID.
// A nil departmentID only matches company-wide holidays.
func (c Config) AppliesTo(departmentID *int64) bool {
	if !c.IsActive {
		return false
	}
	if len(c.ApplicableDepartments) == 0 {
		return true
	}
	if departmentID == nil {
		return false
	}
	for _, id := range c.ApplicableDepartments {
		if id == *departmentID {
			return true
		}
	}
	return false
}

// SameDay compares calendar dates, ignoring time and location offsets.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Find returns the first holiday in configs that falls on date and applies to departmentID.
func Find(configs []Config, date time.Time, departmentID *int64) (Config, bool) {
	for _, c := range configs {
		if SameDay(c.HolidayDate, date) && c.AppliesTo(departmentID) {
			return c, true
		}
	}
	return Config{}, false
}
