package schedfa

import (
	"errors"
	"testing"
	"time"
)

func TestResolveWindow(t *testing.T) {
	testCases := []struct {
		name string
		mode WindowMode
		year int
		want Range
	}{
		{
			"calendar", Calendar, 2024,
			Range{From: NewDate(2023, time.January, 1), To: NewDate(2023, time.December, 31)},
		},
		{
			"financial", Financial, 2024,
			Range{From: NewDate(2023, time.April, 1), To: NewDate(2024, time.March, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveWindow(tc.mode, tc.year)
			if err != nil {
				t.Fatalf("ResolveWindow() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("ResolveWindow(%s, %d) = %v, want %v", tc.mode, tc.year, got, tc.want)
			}
		})
	}

	if _, err := ResolveWindow(WindowMode(42), 2024); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("ResolveWindow(unknown) error = %v, want ErrUnsupportedMode", err)
	}
}

func TestParseWindowMode(t *testing.T) {
	for in, want := range map[string]WindowMode{"calendar": Calendar, "Financial": Financial} {
		got, err := ParseWindowMode(in)
		if err != nil {
			t.Fatalf("ParseWindowMode(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseWindowMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseWindowMode("fortnightly"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("ParseWindowMode(unknown) error = %v, want ErrUnsupportedMode", err)
	}
}

func TestReferenceDate(t *testing.T) {
	if got, want := ReferenceDate(2024), NewDate(2022, time.December, 31); got != want {
		t.Errorf("ReferenceDate(2024) = %v, want %v", got, want)
	}
}
