package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used by the menu.
const (
	ColorAccent    = "86"  // Cyan/green - trigger label
	ColorHighlight = "205" // Magenta - active item, list border
	ColorMuted     = "241" // Gray - hints
	ColorText      = "252" // Light gray - items
)

// Styles contains the menu's style definitions.
var Styles = struct {
	Trigger        lipgloss.Style // Collapsed, unfocused trigger
	TriggerFocused lipgloss.Style // Trigger with input focus
	List           lipgloss.Style // Bordered list box
	ListFocused    lipgloss.Style // List box with input focus
	Item           lipgloss.Style
	ItemActive     lipgloss.Style
	Empty          lipgloss.Style // Shown in place of an empty list
	Hint           lipgloss.Style
}{
	Trigger: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	TriggerFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true).
		Reverse(true).
		Padding(0, 1),
	List: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	ListFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	ItemActive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
