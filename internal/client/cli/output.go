package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/term"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// useJSON resolves "auto": tables on a terminal, JSON when piped.
func (a *App) useJSON() (bool, error) {
	switch a.output {
	case "json":
		return true, nil
	case "table":
		return false, nil
	case "auto", "":
		f, ok := a.out.(*os.File)
		return !ok || !term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown output format %q", a.output)
	}
}

// render prints v as indented JSON, or as the table rows() returns.
func (a *App) render(v any, header []string, rows func() [][]string) error {
	asJSON, err := a.useJSON()
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	writeRow(tw, header)
	for _, r := range rows() {
		writeRow(tw, r)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cols []string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}
