package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"pincer/internal/model"
)

// 输出格式
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

var style = table.Style{
	Name:    "StylePincer",
	Box:     table.StyleBoxDefault,
	Color:   table.ColorOptionsDefault,
	HTML:    table.DefaultHTMLOptions,
	Options: table.OptionsDefault,
	Title:   table.TitleOptionsDefault,
	Format: table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	},
}

// Write 按格式输出改写结果
func Write(w io.Writer, format string, result *model.RewriteResult) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		writeTable(w, result)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeTable(w io.Writer, result *model.RewriteResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRows([]table.Row{
		{"simplified_text", result.SimplifiedText},
		{"bullet_version", joinLines(result.BulletVersion)},
		{"step_version", joinLines(result.StepVersion)},
		{"literal_version", result.LiteralVersion},
		{"actions_detected", joinLines(result.ActionsDetected)},
		{"deadlines_detected", joinLines(result.DeadlinesDetected)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "value", WidthMax: 80},
	})
	t.SuppressTrailingSpaces()
	t.Render()
}

func joinLines(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
