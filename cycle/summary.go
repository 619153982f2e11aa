package cycle

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"steamcycle/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Width(14)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Summary renders the cycle figures and the state table.
func Summary(r *Result) string {
	lines := []string{
		titleStyle.Render("Cycle Summary for: " + r.Name),
		figure("Efficiency", fmt.Sprintf("%0.3f%%", r.Efficiency)),
		figure("Turbine Eff", fmt.Sprintf("%0.2f", r.TurbineEfficiency)),
		figure("Turbine Work", fmt.Sprintf("%0.3f kJ/kg", r.TurbineWork)),
		figure("Pump Work", fmt.Sprintf("%0.3f kJ/kg", r.PumpWork)),
		figure("Heat Added", fmt.Sprintf("%0.3f kJ/kg", r.HeatAdded)),
		figure("Back Work", fmt.Sprintf("%0.4f", r.BackWorkRatio)),
	}
	head := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, "", StateTable(r.States())))
}

func figure(name, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(name), value)
}

// StateTable lays states out one per row.
func StateTable(states []model.State) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("state", "p (kPa)", "T (°C)", "h (kJ/kg)", "s (kJ/kg·K)", "v (m³/kg)", "x", "phase")
	for _, s := range states {
		x := "-"
		if q, ok := s.X(); ok {
			x = fmt.Sprintf("%.4f", q)
		}
		t.Row(
			s.Label,
			fmt.Sprintf("%.2f", s.Pressure),
			fmt.Sprintf("%.2f", s.Temperature),
			fmt.Sprintf("%.2f", s.SpecificEnthalpy),
			fmt.Sprintf("%.4f", s.SpecificEntropy),
			fmt.Sprintf("%.6f", s.SpecificVolume),
			x,
			strings.ToLower(s.Phase.String()),
		)
	}
	return t.String()
}
