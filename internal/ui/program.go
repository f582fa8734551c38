package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

func runProgram(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model).Run()
}

func runProgramWithIO(model tea.Model, in io.Reader, out io.Writer, altScreen bool) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(model, opts...).Run()
}
