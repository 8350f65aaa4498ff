package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lue/population"
	"github.com/pthm-cable/lue/ui"
)

// action is a button press recorded while drawing and applied on the next Update.
type action int

const (
	actionNone action = iota
	actionStabilize
	actionReset
	actionSave
	actionRestart
)

// pending holds GUI edits made during the last Draw.
type pending struct {
	params *population.Parameters
	action action
}

// Layout
const (
	margin       = 20
	columnGap    = 20
	controlWidth = 760
	chartHeight  = 200
	footerHeight = 30
)

// Update applies the last frame's GUI edits and advances the extrapolation.
func (a *App) Update() {
	a.handleInput()
	a.applyPending()
	a.Advance(float64(rl.GetFrameTime()))
}

// applyPending applies parameter edits and button presses from the last Draw.
// The status line shows the outcome of the latest edit or action.
func (a *App) applyPending() {
	p := a.pending
	a.pending = pending{}

	if p.params != nil {
		a.report(a.SetParameters(*p.params), "")
	}

	switch p.action {
	case actionStabilize:
		a.report(a.Stabilize(), "")
	case actionReset:
		a.report(a.Reset(), "")
	case actionSave:
		a.report(a.Save(a.outFile.Text), "saved "+a.outFile.Text)
	case actionRestart:
		a.RestartExtrapolation()
	}
}

// report sets the status line to err, or to ok when err is nil.
func (a *App) report(err error, ok string) {
	if err != nil {
		a.status = err.Error()
		return
	}
	a.status = ok
}

// Draw renders one frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.renderer.Theme.Background)

	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())

	bottom := a.drawControls(margin, margin, controlWidth)

	right := float32(margin + controlWidth + columnGap)
	panelWidth := int32(width - right - margin)
	y := a.renderer.DrawPanelDescriptor(int32(right), margin, panelWidth, summaryPanel, a.summaryView())
	a.drawExtrapolation(right, float32(y+10), float32(panelWidth))

	a.drawCharts(margin, bottom+10, width-2*margin, height-footerHeight-bottom-20)
	a.drawFooter(int32(height) - footerHeight + 6)

	rl.EndDrawing()
}

// drawControls draws the parameter sliders and buttons and returns the Y below them.
func (a *App) drawControls(x, y, width float32) float32 {
	r := a.renderer
	y = float32(r.DrawTitle(int32(x), int32(y), a.cfg.Screen.Title))

	if a.controls == nil {
		a.controls = ui.NewControls(r, x, y, width)
	}
	c := a.controls
	c.Begin()

	p := a.params
	s := a.cfg.Sliders
	d := a.cfg.Derived

	logPop := math.Log10(math.Max(float64(p.InitialPopulation), 1))
	if v, ok := c.Slider("Initial population", ui.FormatCount(p.InitialPopulation),
		logPop, float64(d.MinLogPopSlide), float64(d.MaxLogPopSlide)); ok {
		p.InitialPopulation = uint64(math.Round(math.Pow(10, v)))
	}
	if v, ok := c.Stepper("Years", strconv.Itoa(p.Years),
		float64(p.Years), s.Years.Min, s.Years.Max, 1); ok {
		p.Years = int(math.Round(v))
	}
	if v, ok := c.Slider("Males per 100 females", strconv.Itoa(p.MalesPer100Females),
		float64(p.MalesPer100Females), s.MalesPer100.Min, s.MalesPer100.Max); ok {
		p.MalesPer100Females = int(math.Round(v))
	}
	if v, ok := c.Slider("Infant mortality rate", fmt.Sprintf("%.4f", p.InfantMortality),
		p.InfantMortality, s.InfantMortality.Min, s.InfantMortality.Max); ok {
		p.InfantMortality = v
	}
	v, ok, solve := c.SliderButton("Target fertility rate", fmt.Sprintf("%.5f", p.TargetTFR),
		p.TargetTFR, s.TargetTFR.Min, s.TargetTFR.Max, "Stabilize")
	if ok {
		p.TargetTFR = v
	}

	if p != a.params {
		a.pending.params = &p
	}
	if solve {
		a.pending.action = actionStabilize
	}

	c.Space(4)
	if c.Buttons("Reset parameters") == 0 {
		a.pending.action = actionReset
	}
	if c.TextField("Output file", &a.outFile, "Save") {
		a.pending.action = actionSave
	}
	if a.status != "" {
		r.DrawLabel(int32(x), int32(c.Cursor()), a.status)
		c.Space(float32(r.Theme.LineHeight))
	}
	return c.Cursor()
}

// drawExtrapolation draws the live extrapolation panel with its playback controls.
func (a *App) drawExtrapolation(x, y, width float32) {
	r := a.renderer
	view := a.extrapolation()
	bottom := r.DrawPanelDescriptor(int32(x), int32(y), int32(width), extrapolationPanel, view)

	c := ui.NewControls(r, x, float32(bottom)+10, width)
	s := a.cfg.Sliders.PlaybackSpeed
	if v, ok := c.Slider("Years per second", fmt.Sprintf("%.0f", a.speed), a.speed, s.Min, s.Max); ok {
		a.SetSpeed(v)
	}

	pause := "Pause"
	if a.Paused() {
		pause = "Resume"
	}
	switch c.Buttons(pause, "Restart") {
	case 0:
		a.TogglePause()
	case 1:
		a.pending.action = actionRestart
	}
}

// drawCharts draws the final age distribution and the population timeline.
func (a *App) drawCharts(x, y, width, height float32) {
	if height < 2*60 {
		return
	}
	r := a.renderer
	chartH := math.Min(chartHeight, float64(height-10)/2)

	final := a.result.Final
	ages := int(a.params.MaxAge) + 1
	males := make([]uint64, ages)
	females := make([]uint64, ages)
	for age := 0; age < ages; age++ {
		males[age] = final.CountAgeGender(population.Age(age), population.Male)
		females[age] = final.CountAgeGender(population.Age(age), population.Female)
	}
	ageBounds := rl.Rectangle{X: x, Y: y, Width: width, Height: float32(chartH)}
	r.AgeChart(ageBounds, "Age distribution at the end", males, females)

	tl := a.result.Timeline
	males = make([]uint64, 0, tl.Len())
	females = make([]uint64, 0, tl.Len())
	tl.Each(func(_ population.Year, d population.TimelineData) {
		males = append(males, d.Males)
		females = append(females, d.Females)
	})
	first, last := tl.YearRange()
	timeBounds := rl.Rectangle{X: x, Y: y + float32(chartH) + 10, Width: width, Height: float32(chartH)}
	r.TimelineChart(timeBounds, "Population over time", males, females, int(first), int(last))
	r.Legend(int32(x+width/2)-60, int32(y)+5)
}

// drawFooter draws the key legend and the project link.
func (a *App) drawFooter(y int32) {
	r := a.renderer
	r.DrawLabel(margin, y, "space: pause   r: restart extrapolation   f11: fullscreen")
	if a.perf != nil {
		a.perf.RecordFrame()
		line := a.perfLine()
		r.DrawValue(margin+460, y, line)
		if r.Hovered(margin+460, y, line) {
			r.Tooltip(margin+460, y-4, a.perfTooltip())
		}
	}
	if url := a.cfg.Screen.Homepage; url != "" {
		w := rl.MeasureText(url, r.Theme.FontSize)
		r.Hyperlink(int32(rl.GetScreenWidth())-margin-w, y, url, url)
	}
}

// perfLine summarizes the phase timing of the last projection.
func (a *App) perfLine() string {
	stats := a.perf.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "%.0f fps  %.0f years/s", stats.FPS, stats.TicksPerSecond)
	for _, id := range a.registry.IDs() {
		fmt.Fprintf(&b, "  %s %.0f%%", a.registry.GetName(id), stats.PhasePct[id])
	}
	return b.String()
}

// perfTooltip describes each timed phase.
func (a *App) perfTooltip() []string {
	infos := a.registry.All()
	lines := make([]string, len(infos))
	for i, info := range infos {
		lines[i] = info.Name + ": " + info.Description
	}
	return lines
}
