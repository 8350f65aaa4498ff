package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	valueWidth  = 120
	buttonWidth = 30
	rowHeight   = 22
	rowGap      = 8
)

// Controls lays out labeled raygui controls in rows, top to bottom.
type Controls struct {
	renderer *Renderer
	x, y     float32
	width    float32
	cursor   float32
}

// NewControls creates a control column at (x, y).
func NewControls(r *Renderer, x, y, width float32) *Controls {
	return &Controls{renderer: r, x: x, y: y, width: width, cursor: y}
}

// Begin resets the row cursor to the top of the column.
func (c *Controls) Begin() {
	c.cursor = c.y
}

// Cursor returns the Y position below the last row.
func (c *Controls) Cursor() float32 {
	return c.cursor
}

// Space skips vertical space.
func (c *Controls) Space(h float32) {
	c.cursor += h
}

// row draws the label and value text and returns the bounds left for the widget.
func (c *Controls) row(label, valueText string, trailing float32) rl.Rectangle {
	r := c.renderer
	y := c.cursor
	r.DrawLabel(int32(c.x), int32(y)+3, label)
	r.DrawValue(int32(c.x+c.width-valueWidth), int32(y)+3, valueText)

	left := c.x + float32(r.Theme.LabelWidth)
	bounds := rl.Rectangle{
		X:      left,
		Y:      y,
		Width:  c.x + c.width - valueWidth - 10 - trailing - left,
		Height: rowHeight,
	}
	c.cursor += rowHeight + rowGap
	return bounds
}

// slider draws a raygui slider bar and reports whether the user moved it.
// The comparison is in float32 so an untouched slider never reports a change.
func slider(bounds rl.Rectangle, value, lo, hi float64) (float64, bool) {
	current := float32(value)
	next := gui.SliderBar(bounds, "", "", current, float32(lo), float32(hi))
	if next == current {
		return value, false
	}
	return float64(next), true
}

// Slider draws a labeled slider row.
func (c *Controls) Slider(label, valueText string, value, lo, hi float64) (float64, bool) {
	return slider(c.row(label, valueText, 0), value, lo, hi)
}

// Stepper draws a slider row with - and + buttons moving the value by step.
func (c *Controls) Stepper(label, valueText string, value, lo, hi, step float64) (float64, bool) {
	bounds := c.row(label, valueText, 2*(buttonWidth+4))

	next, changed := slider(bounds, value, lo, hi)

	minus := rl.Rectangle{X: bounds.X + bounds.Width + 4, Y: bounds.Y, Width: buttonWidth, Height: rowHeight}
	plus := minus
	plus.X += buttonWidth + 4
	if gui.Button(minus, "-") {
		next, changed = Clamp(value-step, lo, hi), true
	}
	if gui.Button(plus, "+") {
		next, changed = Clamp(value+step, lo, hi), true
	}
	return next, changed
}

// SliderButton draws a slider row followed by a button.
func (c *Controls) SliderButton(label, valueText string, value, lo, hi float64, button string) (next float64, changed, pressed bool) {
	const width = 90
	bounds := c.row(label, valueText, width+4)
	next, changed = slider(bounds, value, lo, hi)
	pressed = gui.Button(rl.Rectangle{X: bounds.X + bounds.Width + 4, Y: bounds.Y, Width: width, Height: rowHeight}, button)
	return next, changed, pressed
}

// Buttons draws a row of equally wide buttons and returns the index of the
// pressed one, or -1.
func (c *Controls) Buttons(labels ...string) int {
	pressed := -1
	if len(labels) == 0 {
		return pressed
	}
	const gap = 8
	width := (c.width - gap*float32(len(labels)-1)) / float32(len(labels))
	for i, label := range labels {
		bounds := rl.Rectangle{X: c.x + float32(i)*(width+gap), Y: c.cursor, Width: width, Height: rowHeight + 4}
		if gui.Button(bounds, label) {
			pressed = i
		}
	}
	c.cursor += rowHeight + 4 + rowGap
	return pressed
}

// TextInput is an editable text box with a button to its right.
type TextInput struct {
	Text    string
	MaxLen  int
	editing bool
}

// Editing reports whether the box has keyboard focus.
func (t *TextInput) Editing() bool {
	return t.editing
}

// TextField draws a labeled text box with a button and reports whether the
// button was pressed.
func (c *Controls) TextField(label string, in *TextInput, button string) bool {
	const width = 90
	r := c.renderer
	y := c.cursor
	r.DrawLabel(int32(c.x), int32(y)+3, label)

	left := c.x + float32(r.Theme.LabelWidth)
	box := rl.Rectangle{X: left, Y: y, Width: c.x + c.width - width - 4 - left, Height: rowHeight + 2}
	maxLen := in.MaxLen
	if maxLen <= 0 {
		maxLen = 128
	}
	if gui.TextBox(box, &in.Text, maxLen, in.editing) {
		in.editing = !in.editing
	}

	pressed := gui.Button(rl.Rectangle{X: box.X + box.Width + 4, Y: y, Width: width, Height: rowHeight + 2}, button)
	c.cursor += rowHeight + 2 + rowGap
	return pressed
}
