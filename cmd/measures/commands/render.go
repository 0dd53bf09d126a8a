package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/langlichong/sonarqube/internal/replay"
	"github.com/langlichong/sonarqube/pkg/component"
	"github.com/langlichong/sonarqube/pkg/measure"
)

// Row is one rendered measure: a component's raw value for a metric,
// flagged when it differs from its initial snapshot.
type Row struct {
	Component string `json:"component"`
	Type      string `json:"type"`
	Metric    string `json:"metric"`
	Dimension string `json:"dimension,omitempty"`
	Value     any    `json:"value"`
	Added     bool   `json:"added"`
}

// collectRows walks the session tree in pre-order and flattens every raw
// measure into a row, metric keys sorted per component.
func collectRows(session *replay.Session, addedOnly bool) ([]Row, error) {
	var rows []Row

	limit := component.ReportDepth(component.File).WithViewsDepth(component.ProjectView)

	crawlErr := component.Crawl(session.Root, limit, func(c *component.Component) error {
		raw := session.Repo.GetRawMeasures(c)
		added := session.Repo.GetAddedRawMeasures(c)

		metricKeys := make([]string, 0, len(raw))
		for key := range raw {
			metricKeys = append(metricKeys, key)
		}

		sort.Strings(metricKeys)

		for _, key := range metricKeys {
			for _, ms := range raw[key] {
				isAdded := containsMeasure(added[key], ms)
				if addedOnly && !isAdded {
					continue
				}

				rows = append(rows, Row{
					Component: c.Reference(),
					Type:      c.Type.String(),
					Metric:    key,
					Dimension: dimensionLabel(ms.Dimension()),
					Value:     ms.Value(),
					Added:     isAdded,
				})
			}
		}

		return nil
	})
	if crawlErr != nil {
		return nil, crawlErr
	}

	return rows, nil
}

// containsMeasure reports whether measures holds an entry with the same
// dimension and a deeply equal value.
func containsMeasure(measures []measure.Measure, ms measure.Measure) bool {
	for _, candidate := range measures {
		if candidate.Dimension() == ms.Dimension() && candidate.EqualValue(ms) {
			return true
		}
	}

	return false
}

// dimensionLabel renders a dimension for display, empty when absent.
func dimensionLabel(d measure.Dimension) string {
	if !d.Scoped() {
		return ""
	}

	return d.String()
}

// renderTable formats rows as a table using go-pretty. Added measures are
// marked and highlighted unless colors are disabled.
func renderTable(rows []Row, noColor bool, w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Component", "Type", "Metric", "Dimension", "Value", ""})

	green := color.New(color.FgGreen)

	for _, row := range rows {
		marker := ""
		if row.Added {
			marker = "+"
			if !noColor {
				marker = green.Sprint(marker)
			}
		}

		tbl.AppendRow(table.Row{row.Component, row.Type, row.Metric, row.Dimension, fmt.Sprintf("%v", row.Value), marker})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %s measures", humanize.Comma(int64(len(rows))))})
	tbl.Render()
}

// renderJSON formats rows as an indented JSON array.
func renderJSON(rows []Row, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(rows)
}
