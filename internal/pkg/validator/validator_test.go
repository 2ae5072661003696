package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{"00:00": 0, "09:30": 570, "23:59": 1439}
	for s, want := range cases {
		got, ok := ParseClock(s)
		if !ok || got != want {
			t.Errorf("ParseClock(%q) = %d, %v, want %d", s, got, ok, want)
		}
	}
	for _, s := range []string{"24:00", "9:30", "09:60", "0930", ""} {
		if _, ok := ParseClock(s); ok {
			t.Errorf("ParseClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidCoordinate(t *testing.T) {
	if lat, lng := IsValidCoordinate(31.23, 121.47); !lat || !lng {
		t.Errorf("IsValidCoordinate(shanghai) = %v, %v", lat, lng)
	}
	if lat, lng := IsValidCoordinate(-91, 181); lat || lng {
		t.Errorf("IsValidCoordinate(out of range) = %v, %v", lat, lng)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"pending", "approved"}
	if !IsInSlice("pending", slice) {
		t.Errorf("IsInSlice(pending) = false, want true")
	}
	if IsInSlice("cancelled", slice) {
		t.Errorf("IsInSlice(cancelled) = true, want false")
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", "10:30", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestParseDateOrDateTime(t *testing.T) {
	got, ok := ParseDateOrDateTime("2024-03-01")
	if !ok || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDateOrDateTime(date) = %v, %v", got, ok)
	}
	got, ok = ParseDateOrDateTime("2024-03-01T12:00:00Z")
	if !ok || got.Hour() != 12 {
		t.Errorf("ParseDateOrDateTime(datetime) = %v, %v", got, ok)
	}
	if _, ok := ParseDateOrDateTime("March 1"); ok {
		t.Errorf("ParseDateOrDateTime(garbage) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "required"},
		{Field: "reason", Message: "required"},
	}
	if errs.Error() != "start_date: required; reason: required" {
		t.Errorf("Error() = %q", errs.Error())
	}
	if m := errs.ToMap(); len(m) != 2 || m["reason"] != "required" {
		t.Errorf("ToMap() = %v", m)
	}
}
