package tracker

import (
	"fmt"
	"strings"
	"time"

	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/schedule"
)

type DayStatus string

const (
	DayFull    DayStatus = "full"
	DayPartial DayStatus = "partial"
	DayNone    DayStatus = "none"
	DayEmpty   DayStatus = "empty" // sin tomas programadas
)

type DayStat struct {
	Date   string    `json:"date"`
	Total  int       `json:"total"`
	Taken  int       `json:"taken"`
	Status DayStatus `json:"status"`
}

type WeekStats struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Days     []DayStat `json:"days"`
	FullDays int       `json:"full_days"`
	Percent  int       `json:"percent"`
}

// Weekly calcula la adherencia de los 7 días que terminan en end (inclusive).
// Percent = días completos / días con tomas programadas.
func Weekly(meds []medicines.Medicine, end time.Time, completed schedule.CompletedFunc) WeekStats {
	start := end.AddDate(0, 0, -6)
	out := WeekStats{
		From: schedule.DateString(start),
		To:   schedule.DateString(end),
		Days: make([]DayStat, 0, 7),
	}

	scheduledDays := 0
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		occ := schedule.Expand(meds, day, completed)

		st := DayStat{Date: schedule.DateString(day), Total: len(occ)}
		for _, o := range occ {
			if o.Completed {
				st.Taken++
			}
		}

		switch {
		case st.Total == 0:
			st.Status = DayEmpty
		case st.Taken == st.Total:
			st.Status = DayFull
			out.FullDays++
		case st.Taken > 0:
			st.Status = DayPartial
		default:
			st.Status = DayNone
		}
		if st.Total > 0 {
			scheduledDays++
		}
		out.Days = append(out.Days, st)
	}

	if scheduledDays > 0 {
		out.Percent = out.FullDays * 100 / scheduledDays
	}
	return out
}

// Summary arma el texto del resumen semanal (🟩 completo, 🟨 parcial, 🟥 nada, ⬜ sin tomas).
func (w WeekStats) Summary() string {
	var bar strings.Builder
	for _, d := range w.Days {
		switch d.Status {
		case DayFull:
			bar.WriteString("🟩")
		case DayPartial:
			bar.WriteString("🟨")
		case DayNone:
			bar.WriteString("🟥")
		default:
			bar.WriteString("⬜")
		}
	}
	return fmt.Sprintf("Weekly adherence %s to %s\n%s\nFully completed days: %d (%d%%)",
		w.From, w.To, bar.String(), w.FullDays, w.Percent)
}
