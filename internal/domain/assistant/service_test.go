package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/ports/backend"
)

type fakeGateway struct {
	reply string
	err   error
}

func (f fakeGateway) SendMessage(context.Context, string) (string, error) { return f.reply, f.err }
func (f fakeGateway) BMIAnalysis(context.Context) (string, error) { return f.reply, f.err }
func (f fakeGateway) InteractionAnalysis(context.Context) (string, error) { return f.reply, f.err }

type staticMeds []medicines.Medicine

func (s staticMeds) Current() []medicines.Medicine { return s }

type staticProfile struct{ p health.Profile }

func (s staticProfile) Health(context.Context) (health.Profile, error) { return s.p, nil }

func TestChat(t *testing.T) {
	ctx := context.Background()

	svc := NewService(fakeGateway{reply: "hi"}, nil, nil, nil)
	out, err := svc.Chat(ctx, "hello")
	if err != nil || out.Source != SourceAssistant || out.Reply != "hi" {
		t.Fatalf("unexpected %+v %v", out, err)
	}

	if _, err := svc.Chat(ctx, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Chat(ctx, strings.Repeat("a", maxMessageLength+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long message, got %v", err)
	}

	down := NewService(fakeGateway{err: backend.ErrUnavailable}, nil, nil, nil)
	out, err = down.Chat(ctx, "hello")
	if err != nil || out.Source != SourceFallback {
		t.Fatalf("expected fallback, got %+v %v", out, err)
	}

	limited := NewService(fakeGateway{err: backend.ErrRateLimited}, nil, nil, nil)
	if _, err := limited.Chat(ctx, "hello"); !errors.Is(err, backend.ErrRateLimited) {
		t.Fatalf("rate limit must surface, got %v", err)
	}
}

func TestBMIAnalysis_FallsBackToTemplate(t *testing.T) {
	svc := NewService(
		fakeGateway{err: &backend.APIError{Status: 503, Message: "down"}},
		nil,
		staticProfile{health.Profile{HeightCm: 170, WeightKg: 72.25}},
		nil,
	)
	out, err := svc.BMIAnalysis(context.Background())
	if err != nil {
		t.Fatalf("bmi analysis: %v", err)
	}
	if out.Source != SourceFallback || !strings.Contains(out.Reply, "25.0") || !strings.Contains(out.Reply, "ideal") {
		t.Fatalf("unexpected fallback %+v", out)
	}

	missing := NewService(fakeGateway{err: backend.ErrUnavailable}, nil, staticProfile{}, nil)
	out, err = missing.BMIAnalysis(context.Background())
	if err != nil || !strings.Contains(out.Reply, "height and weight") {
		t.Fatalf("expected hint to complete profile, got %+v %v", out, err)
	}
}

func TestInteractionAnalysis_FallbackListsMedicines(t *testing.T) {
	meds := staticMeds{{Name: "Aspirin"}, {Name: "Ibuprofen"}}
	svc := NewService(fakeGateway{err: backend.ErrUnavailable}, meds, nil, nil)

	out, err := svc.InteractionAnalysis(context.Background())
	if err != nil {
		t.Fatalf("interactions: %v", err)
	}
	if out.Source != SourceFallback || !strings.Contains(out.Reply, "Aspirin, Ibuprofen") {
		t.Fatalf("unexpected fallback %+v", out)
	}

	if got := InteractionFallback(nil); !strings.Contains(got, "no medicines") {
		t.Fatalf("unexpected empty fallback %q", got)
	}
}

func TestUnavailable(t *testing.T) {
	if !Unavailable(&backend.APIError{Status: 500}) || Unavailable(&backend.APIError{Status: 400}) {
		t.Fatalf("5xx must be unavailable, 4xx must not")
	}
	if Unavailable(backend.ErrUnauthorized) {
		t.Fatalf("401 must surface")
	}
}
