package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawTitle draws a large heading and returns the new Y position.
func (r *Renderer) DrawTitle(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.TitleFontSize, r.Theme.Heading)
	return y + r.Theme.TitleFontSize + r.Theme.Padding
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 4
}

// DrawLabel draws a text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawValue draws a value text.
func (r *Renderer) DrawValue(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float64, rng FieldRange, width int32) int32 {
	ratio := float32(Normalize(value, rng.Min, rng.Max))

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 60

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+3, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+3, int32(float32(barWidth)*ratio), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, fieldText(fd, data))

	case WidgetBar:
		var value float64
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// fieldText formats a text field's value.
func fieldText(fd FieldDescriptor, data any) string {
	if fd.TextGetter != nil {
		return fd.TextGetter(data)
	}
	if fd.Getter != nil {
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return ""
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + 4 // Small gap after section
}

// PanelHeight returns the height DrawPanelDescriptor needs for data.
func (r *Renderer) PanelHeight(pd PanelDescriptor, data any) int32 {
	h := r.Theme.Padding * 2
	if pd.Title != "" {
		h += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			h += r.Theme.LineHeight + 4
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			switch fd.Widget {
			case WidgetSection:
				h += r.Theme.LineHeight + 4
			case WidgetSpacer:
				h += 6
			default:
				h += r.Theme.LineHeight
			}
		}
		h += 4
	}
	return h
}

// DrawPanelDescriptor draws a bordered panel with all its sections and
// returns the Y position below it.
func (r *Renderer) DrawPanelDescriptor(x, y, width int32, pd PanelDescriptor, data any) int32 {
	height := r.PanelHeight(pd, data)
	r.DrawPanel(x, y, width, height)

	inner := x + r.Theme.Padding
	cy := y + r.Theme.Padding
	if pd.Title != "" {
		cy = r.DrawSectionHeader(inner, cy, pd.Title)
	}
	for _, sd := range pd.Sections {
		cy = r.DrawSection(inner, cy, sd, data, width-r.Theme.Padding*2)
	}
	return y + height
}

// Hyperlink draws text that opens url when clicked.
func (r *Renderer) Hyperlink(x, y int32, text, url string) {
	width := rl.MeasureText(text, r.Theme.FontSize)
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.FontSize)}

	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LinkColor)
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds) {
		rl.DrawLine(x, y+r.Theme.FontSize, x+width, y+r.Theme.FontSize, r.Theme.LinkColor)
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			rl.OpenURL(url)
		}
	}
}

// Hovered reports whether the mouse is over text drawn at x, y.
func (r *Renderer) Hovered(x, y int32, text string) bool {
	width := rl.MeasureText(text, r.Theme.FontSize)
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.FontSize)}
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
}

// Tooltip draws lines in a panel whose bottom-left corner is at x, bottom.
func (r *Renderer) Tooltip(x, bottom int32, lines []string) {
	if len(lines) == 0 {
		return
	}
	var width int32
	for _, l := range lines {
		width = max(width, rl.MeasureText(l, r.Theme.FontSize))
	}
	width += r.Theme.Padding * 2
	height := int32(len(lines))*r.Theme.LineHeight + r.Theme.Padding*2
	y := bottom - height

	r.DrawPanel(x, y, width, height)
	for i, l := range lines {
		r.DrawValue(x+r.Theme.Padding, y+r.Theme.Padding+int32(i)*r.Theme.LineHeight, l)
	}
}
