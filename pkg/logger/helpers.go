package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const IconSuccess = "✅"

// SetNoColor disables every helper in this file's use of fatih/color,
// mirroring the --no-color CLI flag. color.NoColor is also honored
// automatically when stdout is not a TTY.
func SetNoColor(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Success logs a success message with a green checkmark.
func Success(args ...interface{}) {
	message := fmt.Sprint(args...)
	defaultLogger.Info(IconSuccess + " " + message)
}

// Successf logs a formatted success message.
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

var (
	sectionColor = color.New(color.FgCyan)
	titleColor   = color.New(color.FgCyan, color.Bold)
)

// LogSection prints a visual section separator.
func LogSection(title string) {
	line := strings.Repeat("=", 50)
	sectionColor.Println(line)
	titleColor.Println(title)
	sectionColor.Println(line)
}

// Table is a simple fixed-width table, used to print the run summary
// at the end of a simulation.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Print prints the table.
func (t *Table) Print() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range t.headers {
		fmt.Printf("%-*s  ", widths[i], h)
	}
	fmt.Println()

	for i := range t.headers {
		fmt.Print(strings.Repeat("-", widths[i]) + "  ")
	}
	fmt.Println()

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Printf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println()
	}
}
