package output

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorDanger  = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("#767676")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(26)

	positiveStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	negativeStyle = lipgloss.NewStyle().Foreground(colorDanger)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)
)

// statusStyle picks the success or danger style for a pass/fail value
func statusStyle(ok bool) lipgloss.Style {
	if ok {
		return positiveStyle
	}
	return negativeStyle
}
