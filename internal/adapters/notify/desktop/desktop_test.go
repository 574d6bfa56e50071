package desktop

import (
	"context"
	"errors"
	"testing"

	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/tracker"
)

func TestNotifier_UsesBeeep(t *testing.T) {
	var alerts, notes, beeps []string
	n := &Notifier{
		alert:  func(title, msg, _ string) error { alerts = append(alerts, title+"|"+msg); return nil },
		notify: func(title, msg, _ string) error { notes = append(notes, title); return nil },
		beep:   func(float64, int) error { beeps = append(beeps, "beep"); return errors.New("no sound device") },
	}

	a := tracker.Alert{Key: "asp@08:00", Occurrence: schedule.Occurrence{
		MedicineName: "Aspirin",
		Dose:         medicines.Dose{Amount: 500, Unit: medicines.UnitMg},
		Time:         "08:00",
		Dosage:       "1 tablet",
	}}

	if err := n.Alert(context.Background(), a); err != nil {
		t.Fatalf("alert: %v", err)
	}
	if len(alerts) != 1 || alerts[0] != "Time to take Aspirin|Aspirin 500 mg at 08:00 (1 tablet)" {
		t.Fatalf("unexpected alert %v", alerts)
	}
	if err := n.Ring(context.Background(), a); err == nil || len(beeps) != 1 {
		t.Fatalf("ring must surface beep errors")
	}
	_ = n.Notify(context.Background(), "Weekly", "summary")
	if len(notes) != 1 || notes[0] != "Weekly" {
		t.Fatalf("unexpected notes %v", notes)
	}
}
