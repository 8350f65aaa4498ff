package game

import (
	"fmt"
	"math"

	"github.com/pthm-cable/lue/population"
	"github.com/pthm-cable/lue/telemetry"
	"github.com/pthm-cable/lue/ui"
)

// summaryView is what the summary panel shows.
type summaryView struct {
	Summary    telemetry.Summary
	Milestones []telemetry.Milestone
}

func summaryOf(d any) telemetry.Summary { return d.(summaryView).Summary }

// milestoneOf returns the milestone of type t, if the projection reached it.
func milestoneOf(d any, t telemetry.MilestoneType) (telemetry.Milestone, bool) {
	for _, m := range d.(summaryView).Milestones {
		if m.Type == t {
			return m, true
		}
	}
	return telemetry.Milestone{}, false
}

// milestoneField shows the year a milestone was reached, hidden until it is.
func milestoneField(t telemetry.MilestoneType, label string) ui.FieldDescriptor {
	return ui.FieldDescriptor{
		ID:     string(t),
		Label:  label,
		Widget: ui.WidgetText,
		Visible: func(d any) bool {
			_, ok := milestoneOf(d, t)
			return ok
		},
		TextGetter: func(d any) string {
			m, _ := milestoneOf(d, t)
			return fmt.Sprintf("%s (%s)", ui.Humanize(float64(m.Population)), ui.FormatYear(int(m.Year)))
		},
	}
}

// summaryPanel describes the headline figures of a projection.
var summaryPanel = ui.PanelDescriptor{
	ID:    "summary",
	Title: "At the end of the projection",
	Sections: []ui.SectionDescriptor{
		{
			ID: "population",
			Fields: []ui.FieldDescriptor{
				{ID: "final_population", Label: "Population", Widget: ui.WidgetText,
					TextGetter: func(d any) string { return ui.FormatCount(summaryOf(d).FinalPopulation) }},
				{ID: "actual_fertility", Label: "Actual fertility", Widget: ui.WidgetText,
					TextGetter: func(d any) string { return ui.FormatFixed(summaryOf(d).ActualFertility, 3) }},
				{ID: "fertility_bar", Label: "Children per woman", Widget: ui.WidgetBar,
					Range:   ui.FieldRange{Min: 0, Max: 3},
					Visible: func(d any) bool { return !math.IsNaN(summaryOf(d).ActualFertility) },
					Getter:  func(d any) float64 { return summaryOf(d).ActualFertility }},
				{ID: "median_age", Label: "Median age", Widget: ui.WidgetText,
					TextGetter: func(d any) string { return ui.FormatRatio(summaryOf(d).MedianAge) }},
				{ID: "sex_ratio", Label: "Males per 100 females", Widget: ui.WidgetText,
					TextGetter: func(d any) string { return ui.FormatRatio(summaryOf(d).MalesPer100Females) }},
			},
		},
		{
			ID: "milestones",
			Fields: []ui.FieldDescriptor{
				{Widget: ui.WidgetSpacer},
				{Label: "Milestones", Widget: ui.WidgetSection},
				{ID: "peak", Label: "Peak population", Widget: ui.WidgetText,
					TextGetter: func(d any) string {
						s := summaryOf(d)
						return fmt.Sprintf("%s (%s)", ui.Humanize(float64(s.PeakPopulation)), ui.FormatYear(int(s.PeakYear)))
					}},
				milestoneField(telemetry.MilestoneHalved, "Halved"),
				milestoneField(telemetry.MilestoneCollapse, "Collapsed"),
				milestoneField(telemetry.MilestoneExtinct, "Extinct"),
			},
		},
	},
}

// summaryView returns the current summary panel data.
func (a *App) summaryView() summaryView {
	return summaryView{Summary: a.Summary(), Milestones: a.Milestones()}
}

// extrapolationView is what the extrapolation panel shows.
type extrapolationView struct {
	State  population.State
	Rates  population.Rates
	Speed  float64
	Paused bool
}

func extrapolationOf(d any) extrapolationView { return d.(extrapolationView) }

// extrapolationPanel describes the live extrapolation past the horizon.
var extrapolationPanel = ui.PanelDescriptor{
	ID:    "extrapolation",
	Title: "Beyond the horizon",
	Sections: []ui.SectionDescriptor{
		{
			ID: "state",
			Fields: []ui.FieldDescriptor{
				{ID: "year", Label: "Year", Widget: ui.WidgetText, Format: "%.0f",
					Getter: func(d any) float64 { return extrapolationOf(d).State.ElapsedTime }},
				{ID: "population", Label: "Population", Widget: ui.WidgetText,
					TextGetter: func(d any) string { return ui.Humanize(extrapolationOf(d).State.Population) }},
				{ID: "growth", Label: "Growth per year", Widget: ui.WidgetText, Format: "%+.3f%%",
					Getter: func(d any) float64 { return 100 * extrapolationOf(d).State.GrowthRate }},
			},
		},
		{
			ID:    "rates",
			Title: "Crude rates per 1000",
			Fields: []ui.FieldDescriptor{
				{ID: "birth_rate", Label: "Births", Widget: ui.WidgetText, Format: "%.2f",
					Getter: func(d any) float64 { return 1000 * extrapolationOf(d).Rates.BirthRate }},
				{ID: "death_rate", Label: "Deaths", Widget: ui.WidgetText, Format: "%.2f",
					Getter: func(d any) float64 { return 1000 * extrapolationOf(d).Rates.DeathRate }},
			},
		},
		{
			ID:      "paused",
			Visible: func(d any) bool { return extrapolationOf(d).Paused },
			Fields: []ui.FieldDescriptor{
				{ID: "status", Label: "Status", Widget: ui.WidgetText,
					TextGetter: func(any) string { return "paused" }},
			},
		},
	},
}

// extrapolation returns the current extrapolation panel data.
func (a *App) extrapolation() extrapolationView {
	return extrapolationView{
		State:  a.extrapolator.Snapshot(),
		Rates:  a.extrapolator.Rates(),
		Speed:  a.Speed(),
		Paused: a.Paused(),
	}
}
