package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/powerball-results/internal/draw"
)

// FormatDraw formats a draw and the next drawing projection as a Telegram message
func FormatDraw(snap *draw.Snapshot) string {
	var msg strings.Builder
	d := snap.Draw

	msg.WriteString("🎱 <b>Resultados del Powerball</b>\n\n")

	if d.Date != "" {
		msg.WriteString(fmt.Sprintf("📅 %s\n", html.EscapeString(d.Date)))
	}
	msg.WriteString(fmt.Sprintf("⚪ <b>%s</b>\n", draw.FormatNumbers(d.Numbers)))
	if d.Special != nil {
		msg.WriteString(fmt.Sprintf("🔴 Powerball: <b>%d</b>\n", *d.Special))
	}
	if d.Multiplier != nil {
		msg.WriteString(fmt.Sprintf("✖️ Power Play: %dx\n", *d.Multiplier))
	}

	if d.JackpotWon {
		if d.WinnerRegion != "" {
			msg.WriteString(fmt.Sprintf("🏆 Premio mayor ganado en <b>%s</b>\n", html.EscapeString(d.WinnerRegion)))
		} else {
			msg.WriteString("🏆 Premio mayor ganado\n")
		}
	} else {
		msg.WriteString("Sin ganador del premio mayor\n")
	}

	if next := snap.Next; next != nil {
		msg.WriteString("\n<b>Próximo sorteo</b>")
		if next.Date != "" {
			msg.WriteString(fmt.Sprintf(" %s", html.EscapeString(next.Date)))
		}
		msg.WriteString("\n")
		if next.Estimated != nil {
			msg.WriteString(fmt.Sprintf("💰 Premio estimado: %s\n", draw.FormatAmount(*next.Estimated)))
		}
		if next.Cash != nil {
			msg.WriteString(fmt.Sprintf("💵 Premio en efectivo: %s\n", draw.FormatAmount(*next.Cash)))
		}
	}

	if snap.UpdatedText != "" {
		msg.WriteString(fmt.Sprintf("\n<i>Actualizado: %s</i>", html.EscapeString(snap.UpdatedText)))
	}

	return msg.String()
}
