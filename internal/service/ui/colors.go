package ui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// ANSI colours keep the help output readable on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	PanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	FocusStyle = PanelStyle.BorderForeground(lipgloss.Color("6"))

	UserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// categoryColors matches the dashboard palette of the six store categories.
var categoryColors = map[string]lipgloss.Color{
	"Aquatic Tuberous Veg.": "#1E90FF",
	"Cabbage":               "#32CD32",
	"Capsicum":              "#FF4500",
	"Edible Mushroom":       "#D2B48C",
	"Flower/Leaf/Veg.":      "#9ACD32",
	"Solanum":               "#6A5ACD",
}

var fallbackColors = []lipgloss.Color{"#E377C2", "#17BECF", "#BCBD22", "#7F7F7F"}

// CategoryColor is stable for unknown categories too.
func CategoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(category))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}

func CategoryStyle(category string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CategoryColor(category))
}
