package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/backend"
)

const maxMessageLength = 2000

var ErrInvalidInput = errors.New("invalid input")

// Gateway son los endpoints de chat/análisis del backend.
type Gateway interface {
	SendMessage(ctx context.Context, message string) (string, error)
	BMIAnalysis(ctx context.Context) (string, error)
	InteractionAnalysis(ctx context.Context) (string, error)
}

type MedicineSource interface {
	Current() []medicines.Medicine
}

type ProfileSource interface {
	Health(ctx context.Context) (health.Profile, error)
}

type Source string

const (
	SourceAssistant Source = "assistant"
	SourceFallback  Source = "fallback"
)

type Reply struct {
	Reply  string `json:"reply"`
	Source Source `json:"source"`
}

type Service struct {
	gw      Gateway
	meds    MedicineSource
	profile ProfileSource
	log     logger.Logger
}

func NewService(gw Gateway, meds MedicineSource, profile ProfileSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gw: gw, meds: meds, profile: profile, log: log.With(map[string]any{"component": "assistant"})}
}

func (s *Service) Chat(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > maxMessageLength {
		return Reply{}, ErrInvalidInput
	}
	text, err := s.gw.SendMessage(ctx, message)
	if err == nil && strings.TrimSpace(text) != "" {
		return Reply{Reply: text, Source: SourceAssistant}, nil
	}
	if err != nil && !Unavailable(err) {
		return Reply{}, err
	}
	s.log.Warn("chat unavailable, using fallback", map[string]any{"error": err})
	return Reply{
		Reply:  "The assistant is not available right now. Please try again in a few minutes. For urgent questions about your medication, contact your doctor or pharmacist.",
		Source: SourceFallback,
	}, nil
}

// BMIAnalysis usa el texto plantilla local si el backend no responde.
func (s *Service) BMIAnalysis(ctx context.Context) (Reply, error) {
	text, err := s.gw.BMIAnalysis(ctx)
	if err == nil && strings.TrimSpace(text) != "" {
		return Reply{Reply: text, Source: SourceAssistant}, nil
	}
	if err != nil && !Unavailable(err) {
		return Reply{}, err
	}
	if s.profile == nil {
		return Reply{}, err
	}

	p, perr := s.profile.Health(ctx)
	if perr != nil {
		return Reply{}, perr
	}
	res, berr := health.Evaluate(p.WeightKg, p.HeightCm)
	if berr != nil {
		return Reply{
			Reply:  "Complete your height and weight in your profile to get a BMI analysis.",
			Source: SourceFallback,
		}, nil
	}
	s.log.Warn("bmi analysis unavailable, using template", map[string]any{"error": err})
	return Reply{Reply: res.Text, Source: SourceFallback}, nil
}

func (s *Service) InteractionAnalysis(ctx context.Context) (Reply, error) {
	text, err := s.gw.InteractionAnalysis(ctx)
	if err == nil && strings.TrimSpace(text) != "" {
		return Reply{Reply: text, Source: SourceAssistant}, nil
	}
	if err != nil && !Unavailable(err) {
		return Reply{}, err
	}
	s.log.Warn("interaction analysis unavailable, using template", map[string]any{"error": err})

	var names []string
	if s.meds != nil {
		for _, m := range s.meds.Current() {
			names = append(names, m.Name)
		}
	}
	return Reply{Reply: InteractionFallback(names), Source: SourceFallback}, nil
}

// InteractionFallback arma la respuesta local con los nombres de los medicamentos actuales.
func InteractionFallback(names []string) string {
	switch len(names) {
	case 0:
		return "You have no medicines registered yet, so there are no interactions to check."
	case 1:
		return fmt.Sprintf("You are currently taking only %s. Before adding any other medicine or supplement, ask your pharmacist about possible interactions.", names[0])
	}
	return fmt.Sprintf(
		"You are currently taking %s. The interaction check is not available right now; please consult your pharmacist or doctor before combining them.",
		strings.Join(names, ", "),
	)
}

// Unavailable indica si el error amerita respuesta local (backend caído o mal configurado).
func Unavailable(err error) bool {
	if errors.Is(err, backend.ErrUnavailable) || errors.Is(err, backend.ErrNotConfigured) {
		return true
	}
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError
}
