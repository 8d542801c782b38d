package period

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantLatest   string
		wantPrevious string
	}{
		{
			"Two dates across quarters",
			"Results for the quarter ended 15-03-2024 compared with 10-12-2023.",
			"Q1 2024", "Q4 2023",
		},
		{
			"Slash separators",
			"Approved on 30/06/2024, prior period 31/03/2024.",
			"Q2 2024", "Q1 2024",
		},
		{
			"Two-digit years",
			"Board meeting 05-11-23 and 02-08-23.",
			"Q4 2023", "Q3 2023",
		},
		{
			"Single date",
			"Quarter ended 30-09-2024 (unaudited).",
			"Q3 2024", "",
		},
		{
			"Duplicate latest date still yields a previous",
			"Quarter ended 30-09-2024. As at 30-09-2024.",
			"Q3 2024", "Q3 2024",
		},
		{"No parsable dates", "Figures in Lakhs unless stated otherwise.", "", ""},
		{"Empty text", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest, previous := Resolve(tt.text)

			got := ""
			if latest != nil {
				got = latest.Label()
			}
			if got != tt.wantLatest {
				t.Errorf("latest = %q, want %q", got, tt.wantLatest)
			}

			got = ""
			if previous != nil {
				got = previous.Label()
			}
			if got != tt.wantPrevious {
				t.Errorf("previous = %q, want %q", got, tt.wantPrevious)
			}
		})
	}
}

func TestResolveKeepsFirstSuccessfulLayout(t *testing.T) {
	// 05-04-2024 is ambiguous between day-first and month-first readings.
	// The day-first layout parses first and the candidate is never
	// re-interpreted, so the month is April (Q2), not May.
	latest, _ := Resolve("as of 05-04-2024")
	if latest == nil {
		t.Fatal("expected a period")
	}
	if latest.Label() != "Q2 2024" {
		t.Errorf("latest = %q, want %q", latest.Label(), "Q2 2024")
	}
}
