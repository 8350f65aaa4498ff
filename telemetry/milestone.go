package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/lue/population"
)

// MilestoneType identifies the kind of milestone.
type MilestoneType string

const (
	MilestonePeak     MilestoneType = "peak"
	MilestoneHalved   MilestoneType = "halved"
	MilestoneCollapse MilestoneType = "collapse"
	MilestoneExtinct  MilestoneType = "extinct"
)

// Milestone marks a notable year in a projection.
type Milestone struct {
	Type        MilestoneType    `csv:"type"`
	Year        population.Year  `csv:"year"`
	Population  population.Count `csv:"population"`
	Description string           `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"year", m.Year,
		"population", m.Population,
		"description", m.Description,
	)
}

// DetectMilestones scans a timeline. Halved and collapse are measured
// against the year-0 population; collapse uses collapseRatio.
// Milestones come back in the order peak, halved, collapse, extinct,
// omitting those that never happen.
func DetectMilestones(t *population.Timeline, collapseRatio float64) []Milestone {
	if t == nil || t.Len() == 0 {
		return nil
	}

	first, _ := t.YearRange()
	initial := float64(t.Sum(first))

	var peak, halved, collapse, extinct *Milestone
	t.Each(func(y population.Year, d population.TimelineData) {
		n := d.Sum()
		if peak == nil || n > peak.Population {
			peak = &Milestone{Type: MilestonePeak, Year: y, Population: n}
		}
		if initial == 0 {
			return
		}
		if halved == nil && float64(n) <= initial/2 {
			halved = &Milestone{Type: MilestoneHalved, Year: y, Population: n}
		}
		if collapse == nil && float64(n) <= initial*collapseRatio {
			collapse = &Milestone{Type: MilestoneCollapse, Year: y, Population: n}
		}
		if extinct == nil && n == 0 {
			extinct = &Milestone{Type: MilestoneExtinct, Year: y, Population: 0}
		}
	})

	peak.Description = fmt.Sprintf("population peaks at %d", peak.Population)
	out := []Milestone{*peak}
	if halved != nil {
		halved.Description = "population below half of the initial"
		out = append(out, *halved)
	}
	if collapse != nil {
		collapse.Description = fmt.Sprintf("population at or below %.0f%% of the initial", collapseRatio*100)
		out = append(out, *collapse)
	}
	if extinct != nil {
		extinct.Description = "no one left"
		out = append(out, *extinct)
	}
	return out
}
