package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pfrederiksen/powerball-results/internal/draw"
	"gopkg.in/yaml.v3"
)

func sampleSummary() *Summary {
	return &Summary{
		RunID:    "run-1",
		Success:  true,
		Attempts: 1,
		Draw: &draw.DrawResult{
			Date:    "2026-02-07",
			Numbers: []int{3, 17, 26, 48, 64},
			Special: draw.IntPtr(21),
		},
		Next: &draw.NextDraw{
			Date:      "2026-02-09",
			Estimated: draw.AmountPtr(1_250_000_000),
		},
		UpdatedText:  "Sábado, 7 de Febrero de 2026 - 11:15 PM ET",
		LatestFile:   "resultados_actuales.json",
		HistoryFile:  "historico_resultados.json",
		HistoryCount: 12,
	}
}

func TestWriteSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Power Play: N/A",
		"Premio Mayor: Sin ganador",
		"Próximo Sorteo: 2026-02-09",
		"Premio Estimado: $1,250,000,000",
		"Premio Efectivo: N/A",
		"Actualizado: Sábado, 7 de Febrero de 2026 - 11:15 PM ET",
		"📚 Histórico: historico_resultados.json (12 sorteos)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Diagnósticos") {
		t.Error("diagnostics should only appear when present")
	}
}

func TestWriteSummary_TextFailure(t *testing.T) {
	s := &Summary{
		Error:       "unexpected status code: 503",
		Diagnostics: []draw.Diagnostic{{Level: draw.LevelError, Field: "scrape", Message: "unexpected status code: 503"}},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ERROR: No se pudieron obtener los resultados") {
		t.Errorf("missing failure banner\n%s", out)
	}
	if !strings.Contains(out, "Detalle: unexpected status code: 503") {
		t.Errorf("missing detail\n%s", out)
	}
	if !strings.Contains(out, "Diagnósticos:") {
		t.Errorf("missing diagnostics\n%s", out)
	}
}

func TestWriteSummary_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatYAML); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	sorteo, ok := got["sorteo"].(map[string]any)
	if !ok || sorteo["fecha"] != "2026-02-07" {
		t.Errorf("sorteo = %v", got["sorteo"])
	}
	if got["history_count"] != 12 {
		t.Errorf("history_count = %v", got["history_count"])
	}
}

func TestWriteSummary_UnknownFormat(t *testing.T) {
	if err := WriteSummary(&bytes.Buffer{}, sampleSummary(), OutputFormat("csv")); err == nil {
		t.Error("expected error for unknown format")
	}
}
