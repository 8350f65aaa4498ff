package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize maps v from [lo, hi] onto [0, 1], clamping. An empty range maps to 0.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo || math.IsNaN(v) {
		return 0
	}
	return Clamp((v-lo)/(hi-lo), 0, 1)
}

// Downsample averages values into at most n buckets of near-equal width.
// Shorter inputs are returned as a copy.
func Downsample(values []uint64, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		out := make([]uint64, len(values))
		copy(out, values)
		return out
	}
	out := make([]uint64, n)
	for i := range out {
		from := i * len(values) / n
		to := (i + 1) * len(values) / n
		var sum float64
		for _, v := range values[from:to] {
			sum += float64(v)
		}
		out[i] = uint64(sum/float64(to-from) + 0.5)
	}
	return out
}

// PeakSum returns the largest a[i]+b[i]. Missing entries count as 0.
func PeakSum(a, b []uint64) uint64 {
	n := max(len(a), len(b))
	var peak uint64
	for i := 0; i < n; i++ {
		var s uint64
		if i < len(a) {
			s += a[i]
		}
		if i < len(b) {
			s += b[i]
		}
		peak = max(peak, s)
	}
	return peak
}

// Peak returns the largest value across all series.
func Peak(series ...[]uint64) uint64 {
	var peak uint64
	for _, s := range series {
		for _, v := range s {
			peak = max(peak, v)
		}
	}
	return peak
}

// chartArea draws the chart frame and title and returns the plotting area.
func (r *Renderer) chartArea(bounds rl.Rectangle, title, peakLabel string) rl.Rectangle {
	t := r.Theme
	r.DrawPanel(int32(bounds.X), int32(bounds.Y), int32(bounds.Width), int32(bounds.Height))
	rl.DrawText(title, int32(bounds.X)+t.Padding, int32(bounds.Y)+t.Padding/2, t.HeaderFontSize, t.SectionHeader)
	if peakLabel != "" {
		w := rl.MeasureText(peakLabel, t.FontSize)
		rl.DrawText(peakLabel, int32(bounds.X+bounds.Width)-t.Padding-w, int32(bounds.Y)+t.Padding/2, t.FontSize, t.LabelColor)
	}

	top := float32(t.Padding/2 + t.HeaderFontSize + t.Padding)
	bottom := float32(t.FontSize + t.Padding)
	area := rl.Rectangle{
		X:      bounds.X + float32(t.Padding),
		Y:      bounds.Y + top,
		Width:  bounds.Width - float32(2*t.Padding),
		Height: bounds.Height - top - bottom,
	}
	rl.DrawLine(int32(area.X), int32(area.Y+area.Height), int32(area.X+area.Width), int32(area.Y+area.Height), t.Axis)
	return area
}

// axisLabels draws text under the left and right ends of the plotting area.
func (r *Renderer) axisLabels(area rl.Rectangle, left, right string) {
	t := r.Theme
	y := int32(area.Y+area.Height) + 4
	rl.DrawText(left, int32(area.X), y, t.FontSize, t.LabelColor)
	w := rl.MeasureText(right, t.FontSize)
	rl.DrawText(right, int32(area.X+area.Width)-w, y, t.FontSize, t.LabelColor)
}

// AgeChart draws one pair of male and female bars per age, ages ascending
// left to right, scaled to the largest single cohort.
func (r *Renderer) AgeChart(bounds rl.Rectangle, title string, males, females []uint64) {
	peak := Peak(males, females)
	area := r.chartArea(bounds, title, "max "+Humanize(float64(peak)))
	ages := max(len(males), len(females))
	if ages == 0 || peak == 0 {
		return
	}
	r.axisLabels(area, "0", FormatCount(uint64(ages-1)))

	slot := area.Width / float32(ages)
	barW := slot / 2
	for a := 0; a < ages; a++ {
		x := area.X + float32(a)*slot
		for g, series := range [2][]uint64{males, females} {
			if a >= len(series) || series[a] == 0 {
				continue
			}
			h := area.Height * float32(float64(series[a])/float64(peak))
			rl.DrawRectangleRec(rl.Rectangle{
				X:      x + float32(g)*barW,
				Y:      area.Y + area.Height - h,
				Width:  barW,
				Height: h,
			}, r.Theme.GenderColor(g == 1))
		}
	}
}

// TimelineChart draws total population per year as stacked male and female
// bars, averaged down to one bar per pixel column.
func (r *Renderer) TimelineChart(bounds rl.Rectangle, title string, males, females []uint64, firstYear, lastYear int) {
	columns := int(bounds.Width) - int(2*r.Theme.Padding)
	m := Downsample(males, columns)
	f := Downsample(females, columns)
	peak := PeakSum(m, f)

	area := r.chartArea(bounds, title, "max "+Humanize(float64(peak)))
	if len(m) == 0 || peak == 0 {
		return
	}
	r.axisLabels(area, FormatYear(firstYear), FormatYear(lastYear))

	barW := area.Width / float32(len(m))
	for i := range m {
		x := area.X + float32(i)*barW
		hm := area.Height * float32(float64(m[i])/float64(peak))
		hf := area.Height * float32(float64(f[i])/float64(peak))
		base := area.Y + area.Height
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: base - hm, Width: barW, Height: hm}, r.Theme.Male)
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: base - hm - hf, Width: barW, Height: hf}, r.Theme.Female)
	}
}

// Legend draws the male and female color keys at (x, y).
func (r *Renderer) Legend(x, y int32) {
	t := r.Theme
	size := t.FontSize - 4
	rl.DrawRectangle(x, y+2, size, size, t.Male)
	rl.DrawText("male", x+size+4, y, t.FontSize, t.LabelColor)
	x += size + 4 + rl.MeasureText("male", t.FontSize) + 12
	rl.DrawRectangle(x, y+2, size, size, t.Female)
	rl.DrawText("female", x+size+4, y, t.FontSize, t.LabelColor)
}
