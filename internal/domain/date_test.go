package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-12-09")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !d.Equal(NewDate(2022, time.December, 9)) {
		t.Errorf("Unexpected date %s", d)
	}

	for _, s := range []string{"", "today", "09-12-2022", "2022-13-01", "2022-02-30", "2022-12-09T10:00:00Z"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want %v", s, err, ErrInvalidDate)
		}
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3:30", 3*3600+1800)
	late := time.Date(2024, time.June, 30, 23, 50, 0, 0, loc)

	d := DateOf(late)
	if d.String() != "2024-06-30" {
		t.Errorf("Expected local calendar day 2024-06-30, got %s", d)
	}
	if !d.Equal(DateOf(time.Date(2024, time.June, 30, 0, 1, 0, 0, loc))) {
		t.Error("Expected two times on the same day to yield equal dates")
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2023, time.January, 13)
	b := NewDate(2023, time.January, 14)

	if !a.Before(b) || a.After(b) || a.Equal(b) {
		t.Errorf("Unexpected ordering between %s and %s", a, b)
	}
	if (Date{}).String() != "" || !(Date{}).IsZero() {
		t.Error("Expected zero date to be empty")
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Deadline Date `json:"deadline"`
	}

	out, err := json.Marshal(payload{Deadline: NewDate(2023, time.January, 13)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"deadline":"2023-01-13"}` {
		t.Errorf("Unexpected JSON %s", out)
	}

	var in payload
	if err := json.Unmarshal([]byte(`{"deadline":"2022-12-09"}`), &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if in.Deadline.String() != "2022-12-09" {
		t.Errorf("Unexpected deadline %s", in.Deadline)
	}

	if err := json.Unmarshal([]byte(`{"deadline":"12/09/2022"}`), &in); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Expected %v, got %v", ErrInvalidDate, err)
	}

	in = payload{}
	if err := json.Unmarshal([]byte(`{"deadline":null}`), &in); err != nil || !in.Deadline.IsZero() {
		t.Errorf("Expected null to decode to zero date, got %s (err %v)", in.Deadline, err)
	}
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, time.January, 13, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) failed: %v", err)
	}
	if d.String() != "2023-01-13" {
		t.Errorf("Unexpected scanned date %s", d)
	}

	if err := d.Scan([]byte("2022-12-09")); err != nil || d.String() != "2022-12-09" {
		t.Errorf("Scan([]byte) = %s, %v", d, err)
	}

	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("Scan(nil) = %s, %v", d, err)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Expected error scanning an int")
	}

	v, err := NewDate(2023, time.January, 13).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if tv, ok := v.(time.Time); !ok || !tv.Equal(time.Date(2023, time.January, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected driver value %v", v)
	}

	if v, _ := (Date{}).Value(); v != nil {
		t.Errorf("Expected nil driver value for zero date, got %v", v)
	}
}
