package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventline-bot/eventline/internal/models"
)

const dayLayout = "2006/01/02"

// buildMessage renders a query result summary. Single-day ranges omit the
// end date from the header.
func buildMessage(start, end time.Time, events []*models.Event) string {
	var b strings.Builder

	b.WriteString("📅 ")
	b.WriteString(start.UTC().Format(dayLayout))
	b.WriteString(" ")
	if !sameDay(start, end) {
		b.WriteString("到 ")
		b.WriteString(end.UTC().Format(dayLayout))
		b.WriteString(" ")
	}

	if len(events) == 0 {
		b.WriteString("沒有找到任何活動")
		return b.String()
	}

	fmt.Fprintf(&b, "的活動（共 %d 項）：\n\n", len(events))

	for _, ev := range events {
		fmt.Fprintf(&b, "%s     %s (%s)\n", ev.Name, ev.Time.UTC().Format("2006/01/02 15:04"), ev.Importance)
		fmt.Fprintf(&b, "[%s]", ev.Category)
		if ev.Notes != "" {
			b.WriteString(" ")
			b.WriteString(ev.Notes)
		}
		b.WriteString("\n\n")
	}

	return b.String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
