package sideeffects

import "time"

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Entry es un efecto secundario registrado por el usuario.
type Entry struct {
	ID           string    `json:"id"`
	MedicineID   string    `json:"medicineId,omitempty"`
	MedicineName string    `json:"medicineName"`
	Description  string    `json:"description"`
	Severity     Severity  `json:"severity"`
	RecordedAt   time.Time `json:"recordedAt"`
}

type CreateInput struct {
	MedicineID   string   `json:"medicineId"`
	MedicineName string   `json:"medicineName"`
	Description  string   `json:"description"`
	Severity     Severity `json:"severity"`
}
