package clock

import (
	"testing"
	"time"
)

func TestToday_UsesLocalDay(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	// 2024-01-14 20:30 UTC is already the 15th in KST.
	now := time.Date(2024, 1, 14, 20, 30, 0, 0, time.UTC).In(loc)

	if got := Today(Fixed(now)); got != "20240115" {
		t.Fatalf("Today = %q, want 20240115", got)
	}
}

func TestKey_ZeroPads(t *testing.T) {
	got := Key(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "20240305" {
		t.Fatalf("Key = %q, want 20240305", got)
	}
}

func TestValidKey(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"20240115", true},
		{"2024011", false},
		{"2024-01-15", false},
		{"20241315", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ValidKey(tc.in); got != tc.want {
				t.Fatalf("ValidKey(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestUntilNextDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 59, 30, 0, time.UTC)
	if got := UntilNextDay(Fixed(now)); got != 30*time.Second {
		t.Fatalf("UntilNextDay = %v, want 30s", got)
	}
}
