// Package style provides the shared colors and icons used by CLI output.
package style

// Color is a hex color string consumable by termenv.RGBColor.
type Color string

const (
	Slate  Color = "#667085"
	Green  Color = "#22A06B"
	Red    Color = "#D93025"
	Yellow Color = "#F59E0B"
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)
