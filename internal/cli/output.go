package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pfrederiksen/powerball-results/internal/draw"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func parseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
	}
}

// Summary is what a run reports
type Summary struct {
	RunID        string            `json:"run_id" yaml:"run_id"`
	Success      bool              `json:"success" yaml:"success"`
	Attempts     int               `json:"attempts" yaml:"attempts"`
	Draw         *draw.DrawResult  `json:"sorteo,omitempty" yaml:"sorteo,omitempty"`
	Next         *draw.NextDraw    `json:"proximo_sorteo,omitempty" yaml:"proximo_sorteo,omitempty"`
	UpdatedText  string            `json:"fecha_actualizacion,omitempty" yaml:"fecha_actualizacion,omitempty"`
	Error        string            `json:"error,omitempty" yaml:"error,omitempty"`
	LatestFile   string            `json:"latest_file" yaml:"latest_file"`
	HistoryFile  string            `json:"history_file" yaml:"history_file"`
	HistoryCount int               `json:"history_count" yaml:"history_count"`
	Added        bool              `json:"added_to_history" yaml:"added_to_history"`
	Diagnostics  []draw.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func (s *Summary) setSnapshot(snap draw.Snapshot) {
	d := snap.Draw
	s.Draw = &d
	s.Next = snap.Next
	s.UpdatedText = snap.UpdatedText
}

// WriteSummary writes the run summary in the specified format
func WriteSummary(w io.Writer, s *Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatText:
		return writeText(w, s)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

// writeText outputs the summary deck
func writeText(w io.Writer, s *Summary) error {
	var b strings.Builder

	if !s.Success || s.Draw == nil {
		fmt.Fprintf(&b, "\n%s\n", heavyRule)
		b.WriteString("ERROR: No se pudieron obtener los resultados\n")
		fmt.Fprintf(&b, "%s\n", heavyRule)
		if s.Error != "" {
			fmt.Fprintf(&b, "Detalle: %s\n", s.Error)
		}
		writeDiagnostics(&b, s.Diagnostics)
		_, err := io.WriteString(w, b.String())
		return err
	}

	d := s.Draw
	fmt.Fprintf(&b, "\n%s\n", heavyRule)
	b.WriteString("RESULTADOS DEL POWERBALL\n")
	fmt.Fprintf(&b, "%s\n", heavyRule)
	fmt.Fprintf(&b, "Fecha: %s\n", d.Date)
	fmt.Fprintf(&b, "Números blancos: %s\n", draw.FormatNumbers(d.Numbers))
	if d.Special != nil {
		fmt.Fprintf(&b, "Powerball: %d\n", *d.Special)
	}
	if d.Multiplier != nil {
		fmt.Fprintf(&b, "Power Play: %dx\n", *d.Multiplier)
	} else {
		b.WriteString("Power Play: N/A\n")
	}
	switch {
	case d.JackpotWon && d.WinnerRegion != "":
		fmt.Fprintf(&b, "Premio Mayor: Ganado (%s)\n", d.WinnerRegion)
	case d.JackpotWon:
		b.WriteString("Premio Mayor: Ganado\n")
	default:
		b.WriteString("Premio Mayor: Sin ganador\n")
	}

	var estimated, cash *int64
	nextDate := ""
	if s.Next != nil {
		estimated, cash, nextDate = s.Next.Estimated, s.Next.Cash, s.Next.Date
	}
	if nextDate != "" {
		fmt.Fprintf(&b, "Próximo Sorteo: %s\n", nextDate)
	}
	fmt.Fprintf(&b, "Premio Estimado: %s\n", amountOrNA(estimated))
	fmt.Fprintf(&b, "Premio Efectivo: %s\n", amountOrNA(cash))

	fmt.Fprintf(&b, "\nActualizado: %s\n", s.UpdatedText)
	fmt.Fprintf(&b, "%s\n", lightRule)
	fmt.Fprintf(&b, "📁 Archivo actual: %s\n", s.LatestFile)
	fmt.Fprintf(&b, "📚 Histórico: %s (%d sorteos)\n", s.HistoryFile, s.HistoryCount)
	if s.Added {
		b.WriteString("✨ Nuevo sorteo agregado al histórico\n")
	}
	fmt.Fprintf(&b, "%s\n", heavyRule)
	writeDiagnostics(&b, s.Diagnostics)

	_, err := io.WriteString(w, b.String())
	return err
}

func amountOrNA(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return draw.FormatAmount(*v)
}

func writeDiagnostics(b *strings.Builder, diags []draw.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	b.WriteString("\nDiagnósticos:\n")
	for _, d := range diags {
		fmt.Fprintf(b, "  %s\n", d)
	}
}
