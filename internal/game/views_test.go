package game

import (
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{10_000, "$10,000"},
		{1_234_567, "$1,234,567"},
		{-5_000, "-$5,000"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1_500, "1.5K"},
		{2_300_000, "2.3M"},
	}
	for _, tc := range cases {
		if got := FormatCompact(tc.in); got != tc.want {
			t.Fatalf("FormatCompact(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestViewsAreIdempotent(t *testing.T) {
	state := NewGameState("Ada Vale", "Nova", "pop")
	state.Fanbase.Total = 1_000
	state.Fanbase.Hardcore = 50
	state.Songs = append(state.Songs, Song{Streams: 500, Earnings: 2_000})
	state.Merchandise = append(state.Merchandise, Merchandise{UnitsSold: 10, Revenue: 300})
	state.Tours = append(state.Tours, Tour{Revenue: 8_000})

	first := Summarize(state)
	second := Summarize(state)
	if first != second {
		t.Fatalf("summaries diverged: %+v vs %+v", first, second)
	}
	if TotalStreams(state) != 500 || TotalSongEarnings(state) != 2_000 {
		t.Fatalf("song totals wrong")
	}
	if TotalMerchRevenue(state) != 300 || TotalMerchUnits(state) != 10 {
		t.Fatalf("merch totals wrong")
	}
	if TotalTourRevenue(state) != 8_000 {
		t.Fatalf("tour totals wrong")
	}
}

func TestFanBucketsDoNotAssumePartition(t *testing.T) {
	state := NewGameState("Ada Vale", "Nova", "pop")
	// Counters drift apart through normal play; the accessor reports
	// them raw.
	state.Fanbase.Total = 1_000
	state.Fanbase.Hardcore = 10
	state.Fanbase.Casual = 20
	state.Fanbase.Haters = 5

	total, hardcore, casual, haters := FanBuckets(state)
	if total != 1_000 || hardcore != 10 || casual != 20 || haters != 5 {
		t.Fatalf("buckets = %d/%d/%d/%d", total, hardcore, casual, haters)
	}
	if hardcore+casual+haters == total {
		t.Fatalf("fixture should not sum to total")
	}
}

func TestDemographicShares(t *testing.T) {
	state := NewGameState("Ada Vale", "Nova", "pop")
	if shares := DemographicShares(state); len(shares) != 0 {
		t.Fatalf("zeroed demographics produced shares: %v", shares)
	}

	state.Fanbase.Demographics.AgeGroups["18-24"] = 30
	state.Fanbase.Demographics.AgeGroups["25-34"] = 10
	shares := DemographicShares(state)
	if shares["18-24"] != 0.75 || shares["25-34"] != 0.25 {
		t.Fatalf("shares = %v", shares)
	}
}

func TestCanPlayVenue(t *testing.T) {
	state := NewGameState("Ada Vale", "Nova", "pop")
	if !CanPlayVenue(state, VenueTypeClub) {
		t.Fatalf("fresh artist cannot play a club")
	}
	if CanPlayVenue(state, VenueTypeStadium) {
		t.Fatalf("fresh artist can book a stadium")
	}
	state.Fanbase.Total = StadiumFanThreshold
	state.Artist.Energy = PerformEnergyCost - 1
	if CanPlayVenue(state, VenueTypeStadium) {
		t.Fatalf("exhausted artist can book a stadium")
	}
}

func TestMonthlyPayroll(t *testing.T) {
	state := NewGameState("Ada Vale", "Nova", "pop")
	state.Team.Manager = &TeamMember{Role: RoleManager, Salary: 8_000}
	state.Team.TourManager = &TeamMember{Role: RoleTourManager, Salary: 5_000}
	if got := MonthlyPayroll(state); got != 13_000 {
		t.Fatalf("payroll = %d, want 13000", got)
	}
	if got := TeamSize(state); got != 2 {
		t.Fatalf("team size = %d, want 2", got)
	}
}
