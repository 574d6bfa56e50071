package push

import (
	"context"
	"errors"
	"testing"

	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/tracker"

	"firebase.google.com/go/v4/messaging"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", f.err
}

func TestAlertAndRing(t *testing.T) {
	s := &fakeSender{}
	n := New(s, "device-token", nil)
	a := tracker.Alert{Key: "asp@08:00", Occurrence: schedule.Occurrence{MedicineID: "asp", MedicineName: "Aspirin", Time: "08:00", Date: "2024-06-03"}}

	if err := n.Alert(context.Background(), a); err != nil {
		t.Fatalf("alert: %v", err)
	}
	if err := n.Ring(context.Background(), a); err != nil {
		t.Fatalf("ring: %v", err)
	}
	if len(s.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.sent))
	}
	first := s.sent[0]
	if first.Token != "device-token" || first.Notification == nil || first.Data["alert_key"] != "asp@08:00" {
		t.Fatalf("unexpected alert message %+v", first)
	}
	if s.sent[1].Notification != nil || s.sent[1].Data["type"] != "dose_ring" {
		t.Fatalf("ring must be data-only")
	}
}

func TestSendError(t *testing.T) {
	n := New(&fakeSender{err: errors.New("unregistered")}, "t", nil)
	if err := n.Notify(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := NewFCM(context.Background(), "", "", nil); err == nil {
		t.Fatalf("expected error without credentials")
	}
}
