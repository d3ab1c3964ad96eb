// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/snapdiff/snapdiff/internal/config"
)

// Formats accepted by Spit.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// shortHash is how many hash characters the table shows.
const shortHash = 12

// Options controls how a Summary is rendered.
type Options struct {
	Format  string
	Color   bool
	Titles  bool
	Padding int
	Sort    string
	// Config supplies colors.title, colors.even and colors.odd overrides.
	Config config.Type
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Spit writes s to w in the requested format. Text output is a count block
// followed by a table of changes. If w is nil, os.Stdout is used.
func Spit(w io.Writer, s Summary, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	SortRows(s.Rows, opts.Sort)

	switch opts.Format {
	case FormatJSON:
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		return textWriter(w, s, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func textWriter(w io.Writer, s Summary, opts Options) error {
	if len(s.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No image differences found!")
		return err
	}

	c := s.Counts
	fmt.Fprintf(w, "Comparison results against %s:\n", s.Target)
	fmt.Fprintf(w, "  Changed images: %d\n", c.Changed)
	fmt.Fprintf(w, "  Added tests:    %d\n", c.AddedTests)
	fmt.Fprintf(w, "  Added images:   %d\n", c.AddedImages)
	fmt.Fprintf(w, "  Removed tests:  %d\n", c.RemovedTests)
	fmt.Fprintf(w, "  Removed images: %d\n", c.RemovedImages)
	fmt.Fprintln(w)

	TableWriter(w, s.Rows, opts)

	if s.Report != "" {
		fmt.Fprintf(w, "\nWrote report to %s\n", s.Report)
	}
	return nil
}

// tableColumns are the Row fields shown in text output.
var tableColumns = []string{"kind", "test", "expected", "actual", "pixels", "error"}

// TableWriter renders rows in a tabular form honoring color, titles and
// padding options.
func TableWriter(w io.Writer, rows []Row, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors(opts.Config, "colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var data [][]string
	for _, r := range rows {
		row := make([]string, 0, len(tableColumns))
		for _, col := range tableColumns {
			v := InterfaceToString(r.Field(col), "-")
			if (col == "expected" || col == "actual") && len(v) > shortHash {
				v = v[:shortHash]
			}
			row = append(row, v)
		}
		data = append(data, row)
	}

	pad := max(opts.Padding, 1)
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(data...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(tableColumns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering. Defaults
// depend on the terminal background so output stays readable on light and
// dark themes.
func getColors(cfg config.Type, key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if colorCfg, err := cfg.GetString(key); err == nil {
			return lipgloss.Color(colorCfg)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
