package schedule

import (
	"fmt"
	"sort"
	"time"

	"med-reminder/internal/domain/medicines"
)

const (
	// DefaultTime se usa cuando un medicamento no tiene horarios: nunca se omite del día.
	DefaultTime = "08:00"

	DateLayout = "2006-01-02"
)

// Occurrence es una toma concreta (medicamento, horario, fecha). Derivada, no se persiste.
type Occurrence struct {
	MedicineID   string            `json:"medicine_id"`
	MedicineName string            `json:"medicine_name"`
	Type         medicines.Type    `json:"type"`
	Dose         medicines.Dose    `json:"dose"`
	TimeIndex    int               `json:"time_index"`
	TimeID       string            `json:"time_id,omitempty"`
	Time         string            `json:"time"`
	Dosage       string            `json:"dosage,omitempty"`
	Date         string            `json:"date"`
	Weekday      medicines.Weekday `json:"weekday"`
	Completed    bool              `json:"completed"`
}

// Key es la clave del ledger: medicamento + índice de horario + fecha.
func (o Occurrence) Key() string {
	return CompletionKey(o.MedicineID, o.TimeIndex, o.Date)
}

func CompletionKey(medicineID string, timeIndex int, date string) string {
	return fmt.Sprintf("%s-%d-%s", medicineID, timeIndex, date)
}

// Minutes devuelve el horario en minutos desde medianoche.
func (o Occurrence) Minutes() (int, error) {
	return medicines.ParseClock(o.Time)
}

// CompletedFunc consulta el ledger por clave.
type CompletedFunc func(key string) bool

// WeekdayOf mapea la fecha a su tag de día.
func WeekdayOf(date time.Time) medicines.Weekday {
	switch date.Weekday() {
	case time.Monday:
		return medicines.Monday
	case time.Tuesday:
		return medicines.Tuesday
	case time.Wednesday:
		return medicines.Wednesday
	case time.Thursday:
		return medicines.Thursday
	case time.Friday:
		return medicines.Friday
	case time.Saturday:
		return medicines.Saturday
	default:
		return medicines.Sunday
	}
}

func DateString(date time.Time) string { return date.Format(DateLayout) }

// ParseDate interpreta "YYYY-MM-DD" en loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// Expand proyecta el horario semanal de cada medicamento sobre date.
//   - Schedule nil => todos los días.
//   - SelectedDays vacío => ningún día.
//   - Times vacío => una toma sintética a las 08:00.
//
// Orden: pendientes antes que completadas; dentro de cada grupo, HH:MM ascendente.
func Expand(meds []medicines.Medicine, date time.Time, completed CompletedFunc) []Occurrence {
	day := WeekdayOf(date)
	dateStr := DateString(date)

	out := make([]Occurrence, 0)
	for _, m := range meds {
		if m.Schedule != nil && !m.Schedule.HasDay(day) {
			continue
		}

		times := []medicines.ScheduleTime{{Time: DefaultTime}}
		if m.Schedule != nil && len(m.Schedule.Times) > 0 {
			times = m.Schedule.Times
		}

		for i, t := range times {
			o := Occurrence{
				MedicineID:   m.ID,
				MedicineName: m.Name,
				Type:         m.Type,
				Dose:         m.Dose,
				TimeIndex:    i,
				TimeID:       t.ID,
				Time:         t.Time,
				Dosage:       t.Dosage,
				Date:         dateStr,
				Weekday:      day,
			}
			if completed != nil {
				o.Completed = completed(o.Key())
			}
			out = append(out, o)
		}
	}

	Sort(out)
	return out
}

// Sort aplica el orden de la vista del día (estable).
func Sort(list []Occurrence) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Completed != list[j].Completed {
			return !list[i].Completed
		}
		return list[i].Time < list[j].Time
	})
}

// Find busca la toma (medicamento, índice) del día date.
func Find(meds []medicines.Medicine, medicineID string, timeIndex int, date time.Time, completed CompletedFunc) (Occurrence, bool) {
	for _, o := range Expand(meds, date, completed) {
		if o.MedicineID == medicineID && o.TimeIndex == timeIndex {
			return o, true
		}
	}
	return Occurrence{}, false
}
