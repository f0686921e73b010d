package daykey

import (
	"testing"
	"time"
)

func TestFromTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want DayKey
	}{
		{
			name: "utc time",
			t:    time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC),
			want: "20260901",
		},
		{
			name: "local evening crosses into next utc day",
			t:    time.Date(2026, 9, 1, 20, 0, 0, 0, time.FixedZone("UTC-8", -8*3600)),
			want: "20260902",
		},
		{
			name: "local early morning is previous utc day",
			t:    time.Date(2026, 9, 1, 2, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			want: "20260831",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTime(tt.t); got != tt.want {
				t.Errorf("FromTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("20260901")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}

	if _, err := Parse("2026-09-01"); err == nil {
		t.Error("Parse() expected error for dashed format")
	}
	if _, err := Parse(""); err == nil {
		t.Error("Parse() expected error for empty key")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		key  DayKey
		want bool
	}{
		{"20260901", true},
		{"20261301", false},
		{"garbage", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.key.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2026, 9, 1, 18, 45, 59, 0, loc)

	if got := MinuteOfDay(at); got != 18*60+45 {
		t.Errorf("MinuteOfDay() = %d, want %d", got, 18*60+45)
	}
}
