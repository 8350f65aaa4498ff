// Package ui provides a descriptor-driven UI system for the simulator.
// Panels are described by metadata (labels, formats, getters) so the
// layout can change without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for numeric fields (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float64 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
}

// Theme holds UI styling constants.
type Theme struct {
	Background     rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Heading        rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	LinkColor      rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Male           rl.Color
	Female         rl.Color
	Axis           rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 245, G: 245, B: 245, A: 255},
		PanelBg:        rl.Color{R: 255, G: 255, B: 255, A: 255},
		PanelBorder:    rl.Color{R: 200, G: 200, B: 200, A: 255},
		Heading:        rl.Color{R: 30, G: 30, B: 30, A: 255},
		SectionHeader:  rl.Color{R: 60, G: 60, B: 60, A: 255},
		LabelColor:     rl.Gray,
		ValueColor:     rl.DarkGray,
		LinkColor:      rl.Color{R: 40, G: 90, B: 200, A: 255},
		BarBg:          rl.Color{R: 225, G: 225, B: 225, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Male:           rl.Color{R: 70, G: 160, B: 80, A: 255},
		Female:         rl.Color{R: 200, G: 70, B: 70, A: 255},
		Axis:           rl.Color{R: 150, G: 150, B: 150, A: 255},
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     190,
		BarHeight:      12,
		FontSize:       16,
		HeaderFontSize: 18,
		TitleFontSize:  24,
	}
}

// GenderColor returns the chart color for females or males.
func (t Theme) GenderColor(female bool) rl.Color {
	if female {
		return t.Female
	}
	return t.Male
}
