package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RenderTable renders query results as a bordered text table.
func RenderTable(title string, columns []string, rows [][]string) string {
	var buf strings.Builder

	if title != "" {
		buf.WriteString(color.CyanString(title))
		buf.WriteString("\n")
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(columns)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range rows {
		table.Append(row)
	}

	table.Render()

	if len(rows) == 0 {
		buf.WriteString(color.YellowString("(no rows)\n"))
	} else {
		buf.WriteString(fmt.Sprintf("%d row(s)\n", len(rows)))
	}

	return buf.String()
}

// RenderAudit renders a pre-load source audit line per table.
func RenderAudit(table string, rows, missing, duplicates int) string {
	status := color.GreenString("clean")
	if missing > 0 || duplicates > 0 {
		status = color.YellowString(fmt.Sprintf("%d missing, %d duplicate", missing, duplicates))
	}
	return fmt.Sprintf("  %-14s %6d rows  %s", table, rows, status)
}
