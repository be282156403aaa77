package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	spotStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(4)
)

// Text renders the day-by-day list view of a plan.
func Text(plan types.TravelPlan) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d일 여행", plan.City, plan.Days)))
	b.WriteString("\n")

	for _, day := range plan.Schedule {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(day.Color)).
			Padding(0, 1).
			Render(fmt.Sprintf("Day %d", day.Day))
		b.WriteString(header)
		b.WriteString("\n")

		badge := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(day.Color))
		for i, spot := range day.Spots {
			fmt.Fprintf(&b, "  %s %s\n", badge.Render(fmt.Sprintf("%d.", i+1)), spotStyle.Render(spot.Name))
			if spot.Description != "" {
				b.WriteString(detailStyle.Render(spot.Description))
				b.WriteString("\n")
			}
			if spot.Address != "" {
				b.WriteString(detailStyle.Render(spot.Address))
				b.WriteString("\n")
			}
			if spot.Phone != "" {
				b.WriteString(detailStyle.Render(spot.Phone))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
