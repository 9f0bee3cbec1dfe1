package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Header = lipgloss.NewStyle().
		Foreground(Sapphire).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Surface1)

	Title    = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Muted    = lipgloss.NewStyle().Foreground(Subtext0)
	Selected = lipgloss.NewStyle().Background(Surface1).Foreground(Text).Bold(true)
	Positive = lipgloss.NewStyle().Foreground(Green)
	Hot      = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)
