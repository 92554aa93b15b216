// Package display renders human-facing output: the banner, byte sizes, and
// the discovered-channel table.
package display

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// ChannelRow is one line of the channel table.
type ChannelRow struct {
	Name     string
	Category string
	Variance string
	Shape    string
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// ChannelTable renders rows as a bordered table with an index column.
func ChannelTable(rows []ChannelRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "CHANNEL", "CATEGORY", "VARIANCE", "OUTPUT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, r := range rows {
		t.Row(strconv.Itoa(i+1), r.Name, r.Category, r.Variance, r.Shape)
	}
	return t.String()
}
