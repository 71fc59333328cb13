package viz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/species"
)

// Summary renders the conditions, metrics and final state of a run. runErr
// is the error Run returned, if any.
func Summary(cond ignition.Conditions, params ignition.Params, res *sim.Result, runErr error) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Octane-air autoignition") + "\n\n")
	sb.WriteString(row("initial temp", fmt.Sprintf("%.1f K", cond.Temp)) + "\n")
	sb.WriteString(row("pressure", fmt.Sprintf("%.4g Pa (%.4g bar)", cond.Pressure, cond.PressureBar)) + "\n")
	sb.WriteString(row("dt / tau", fmt.Sprintf("%.3g s / %.3g s", params.Dt, params.Tau)) + "\n")

	if res != nil {
		sb.WriteString(row("steps", fmt.Sprintf("%d of %d", res.StepsTaken, params.Steps())) + "\n")
		if t, temp, ok := res.History.Final(); ok {
			sb.WriteString(row("final time", fmt.Sprintf("%.4g s", t)) + "\n")
			sb.WriteString(row("final temp", fmt.Sprintf("%.2f K", temp)) + "\n")
		}

		if len(res.Metrics) > 0 {
			sb.WriteString("\n" + Subtle.Render("metrics") + "\n")
			names := make([]string, 0, len(res.Metrics))
			for name := range res.Metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				sb.WriteString(row(name, fmt.Sprintf("%.6g", res.Metrics[name])) + "\n")
			}
		}
	}

	sb.WriteString("\n")
	switch {
	case runErr == nil:
		sb.WriteString(StatusRunning.Render("completed"))
	default:
		sb.WriteString(StatusFailed.Render("failed: " + describeError(runErr)))
	}

	return Panel.Render(sb.String())
}

func describeError(err error) string {
	var se *ignition.StepError
	switch {
	case errors.Is(err, ignition.ErrNegativeConcentration) && errors.As(err, &se):
		return fmt.Sprintf("%s went negative at step %d, reduce dt", se.Species, se.Step)
	default:
		return err.Error()
	}
}

// SpeciesTable lists every species of the set in insertion order.
func SpeciesTable(set *species.Set) string {
	rows := make([][]string, 0, set.Len())
	set.Each(func(key string, g species.Group, sp *species.Species) {
		rows = append(rows, []string{
			key,
			sp.Name,
			g.String(),
			fmt.Sprintf("%g", sp.Mol),
			fmt.Sprintf("%.4f", sp.MolFrac),
			fmt.Sprintf("%.6e", sp.MolConc),
			fmt.Sprintf("%.4e", sp.W),
			fmt.Sprintf("%g", sp.EnthalpyF),
			fmt.Sprintf("%g", sp.Cp),
		})
	})

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers("KEY", "NAME", "GROUP", "MOL", "X", "CONC", "W", "HF", "CP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return groupStyle(set, rows[row][0])
		})

	return t.Render()
}

var (
	reactantCell = lipgloss.NewStyle().Foreground(lipgloss.Color("#88ccff")).Padding(0, 1)
	productCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa66")).Padding(0, 1)
)

func groupStyle(set *species.Set, key string) lipgloss.Style {
	if g, ok := set.GroupOf(key); ok && g == species.Product {
		return productCell
	}
	return reactantCell
}
