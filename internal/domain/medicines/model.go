package medicines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeCapsule Type = "capsule"
	TypePill    Type = "pill"
	TypeBottle  Type = "bottle"
	TypeSyringe Type = "syringe"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCapsule, TypePill, TypeBottle, TypeSyringe:
		return true
	}
	return false
}

type DoseUnit string

const (
	UnitMg      DoseUnit = "mg"
	UnitG       DoseUnit = "g"
	UnitMcg     DoseUnit = "mcg"
	UnitMl      DoseUnit = "ml"
	UnitIU      DoseUnit = "IU"
	UnitDrops   DoseUnit = "drops"
	UnitTablet  DoseUnit = "tablet"
	UnitCapsule DoseUnit = "capsule"
	UnitPuff    DoseUnit = "puff"
	UnitUnit    DoseUnit = "unit"
)

func (u DoseUnit) Valid() bool {
	switch u {
	case UnitMg, UnitG, UnitMcg, UnitMl, UnitIU, UnitDrops, UnitTablet, UnitCapsule, UnitPuff, UnitUnit:
		return true
	}
	return false
}

// Weekday es el tag de día que usa el calendario semanal.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays en orden lunes..domingo.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normaliza "Monday", " MONDAY " y similares al tag en minúsculas.
func ParseWeekday(s string) Weekday {
	return Weekday(strings.ToLower(strings.TrimSpace(s)))
}

// UnmarshalJSON normaliza los días que llegan del backend o de disco.
func (d *Weekday) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("weekday: %w", err)
	}
	*d = ParseWeekday(s)
	return nil
}

func (d Weekday) Valid() bool {
	for _, w := range AllWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

type Dose struct {
	Amount float64  `json:"amount"`
	Unit   DoseUnit `json:"unit"`
}

func (d Dose) String() string {
	return strconv.FormatFloat(d.Amount, 'f', -1, 64) + " " + string(d.Unit)
}

type ScheduleTime struct {
	Time   string `json:"time"` // "HH:MM" 24h, con cero a la izquierda
	Dosage string `json:"dosage"`
	ID     string `json:"id"`
}

// Schedule semanal. SelectedDays vacío => ningún día (distinto de Schedule nil => todos los días).
type Schedule struct {
	SelectedDays []Weekday      `json:"selectedDays"`
	Times        []ScheduleTime `json:"times"`
}

func (s *Schedule) HasDay(d Weekday) bool {
	d = ParseWeekday(string(d))
	for _, x := range s.SelectedDays {
		if ParseWeekday(string(x)) == d {
			return true
		}
	}
	return false
}

type Medicine struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     Type      `json:"type"`
	Dose     Dose      `json:"dose"`
	Schedule *Schedule `json:"schedule,omitempty"`
}

// CatalogEntry es un medicamento del catálogo público (búsqueda/alta rápida).
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ParseClock convierte "HH:MM" (24h, dos dígitos cada parte) a minutos desde medianoche.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	// Atoi acepta signos: "+8:00" no es una hora válida.
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
		}
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// NormalizeClock acepta "8:00" / " 08:00 " y devuelve "08:00".
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i == 1 {
		s = "0" + s
	}
	if _, err := ParseClock(s); err != nil {
		return "", err
	}
	return s, nil
}
