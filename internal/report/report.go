// Package report turns resolved tags into the table printed on stdout.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"git.home.luguber.info/inful/avtag/internal/catalog"
	"git.home.luguber.info/inful/avtag/internal/resolver"
)

// DefaultWidth is the table width used when none is given.
const DefaultWidth = 80

// Row is one repository line of the report.
type Row struct {
	Name         string
	BuiltVersion string
	Tags         []string
}

// Report holds rows ordered by repository path.
type Report struct {
	withCatalog bool
	rows        []Row
}

// Assemble builds a report from resolver results. Failed repositories and
// repositories without tags get no row. A non-nil catalog adds the
// "Built version" column.
func Assemble(results []resolver.Result, cat *catalog.Catalog) *Report {
	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b resolver.Result) int {
		return a.Repository.Compare(b.Repository)
	})

	r := &Report{withCatalog: cat != nil}
	for _, res := range ordered {
		if res.Err != nil || len(res.Tags) == 0 {
			continue
		}
		row := Row{Name: res.Repository.DisplayName(), Tags: res.Tags}
		if cat != nil {
			row.BuiltVersion, _ = cat.BuiltVersion(res.Repository.BinPackageName())
		}
		r.rows = append(r.rows, row)
	}
	return r
}

// Headers returns the column titles.
func (r *Report) Headers() []string {
	if r.withCatalog {
		return []string{"Name", "Built version", "Tags"}
	}
	return []string{"Name", "Tags"}
}

// Rows returns the report rows.
func (r *Report) Rows() []Row {
	return r.rows
}

// Options controls rendering.
type Options struct {
	ASCII bool // only ASCII characters in borders
	Width int  // total table width, DefaultWidth when zero
}

var asciiBorder = lipgloss.Border{
	Top:          "-",
	Bottom:       "-",
	Left:         "|",
	Right:        "|",
	TopLeft:      "+",
	TopRight:     "+",
	BottomLeft:   "+",
	BottomRight:  "+",
	MiddleLeft:   "+",
	MiddleRight:  "+",
	Middle:       "+",
	MiddleTop:    "+",
	MiddleBottom: "+",
}

// Render writes the table to w. The header is printed even without rows.
func (r *Report) Render(w io.Writer, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	border := lipgloss.NormalBorder()
	if opts.ASCII {
		border = asciiBorder
	}

	t := table.New().
		Border(border).
		BorderRow(true).
		Headers(r.Headers()...).
		Width(width).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, row := range r.rows {
		cells := []string{row.Name}
		if r.withCatalog {
			cells = append(cells, row.BuiltVersion)
		}
		cells = append(cells, strings.Join(row.Tags, " "))
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
