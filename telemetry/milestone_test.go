package telemetry

import (
	"testing"

	"github.com/pthm-cable/lue/population"
)

func timelineOf(totals ...population.Count) *population.Timeline {
	t := population.NewTimeline(0, len(totals))
	for _, n := range totals {
		t.Append(population.TimelineData{Males: n / 2, Females: n - n/2})
	}
	return t
}

func TestDetectMilestones(t *testing.T) {
	tl := timelineOf(100, 120, 90, 50, 30, 0)
	got := DetectMilestones(tl, 1.0/3.0)

	want := []struct {
		typ  MilestoneType
		year population.Year
		pop  population.Count
	}{
		{MilestonePeak, 1, 120},
		{MilestoneHalved, 3, 50},
		{MilestoneCollapse, 4, 30},
		{MilestoneExtinct, 5, 0},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d milestones, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Type != w.typ || got[i].Year != w.year || got[i].Population != w.pop {
			t.Errorf("milestone %d = %+v, want %v at %d with %d", i, got[i], w.typ, w.year, w.pop)
		}
		if got[i].Description == "" {
			t.Errorf("milestone %d has no description", i)
		}
	}
}

func TestDetectMilestonesGrowingPopulation(t *testing.T) {
	got := DetectMilestones(timelineOf(10, 20, 40), 1.0/3.0)
	if len(got) != 1 || got[0].Type != MilestonePeak || got[0].Year != 2 {
		t.Errorf("milestones = %+v, want only the final peak", got)
	}
}

func TestDetectMilestonesEmpty(t *testing.T) {
	if got := DetectMilestones(population.NewTimeline(0, 0), 0.5); got != nil {
		t.Errorf("milestones = %+v, want nil", got)
	}
}
