package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestBMI_Rounding(t *testing.T) {
	got, err := BMI(70, 175)
	if err != nil {
		t.Fatalf("bmi: %v", err)
	}
	if got != 22.9 {
		t.Fatalf("expected 22.9, got %v", got)
	}
	if _, err := BMI(70, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero height, got %v", err)
	}
	if _, err := BMI(-1, 170); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative weight, got %v", err)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want Band
	}{
		{18.4, BandUnderweight},
		{18.5, BandIdeal},
		{24.9, BandIdeal},
		{25.0, BandIdeal},
		{25.1, BandOverweight},
		{29.9, BandOverweight},
		{30.0, BandObese},
	}
	for _, tt := range tests {
		if got := Classify(tt.bmi); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.bmi, got, tt.want)
		}
	}
}

func TestEvaluate_ExactBoundariesFromMeasurements(t *testing.T) {
	// 72.25 / 1.7^2 = 25.0
	res, err := Evaluate(72.25, 170)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.BMI != 25.0 || res.Band != BandIdeal {
		t.Fatalf("expected 25.0 ideal, got %v %s", res.BMI, res.Band)
	}

	// 53.465 / 1.7^2 = 18.5
	res, _ = Evaluate(53.465, 170)
	if res.BMI != 18.5 || res.Band != BandIdeal {
		t.Fatalf("expected 18.5 ideal, got %v %s", res.BMI, res.Band)
	}
	if !strings.Contains(res.Text, "18.5") {
		t.Fatalf("text should mention the value: %q", res.Text)
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name string
		step Step
		in   StepInput
		ok   bool
	}{
		{"account ok", StepAccount, StepInput{Email: "ana@example.com", Password: "secret123"}, true},
		{"bad email", StepAccount, StepInput{Email: "ana", Password: "secret123"}, false},
		{"short password", StepAccount, StepInput{Email: "ana@example.com", Password: "123"}, false},
		{"age ok", StepAge, StepInput{Age: 30}, true},
		{"age zero", StepAge, StepInput{Age: 0}, false},
		{"age high", StepAge, StepInput{Age: 121}, false},
		{"height ok", StepHeight, StepInput{HeightCm: 170}, true},
		{"height low", StepHeight, StepInput{HeightCm: 40}, false},
		{"weight ok", StepWeight, StepInput{WeightKg: 70}, true},
		{"weight high", StepWeight, StepInput{WeightKg: 401}, false},
		{"gender ok", StepGender, StepInput{Gender: GenderOther}, true},
		{"gender bad", StepGender, StepInput{Gender: "x"}, false},
		{"unknown step", Step(9), StepInput{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStep(tt.step, tt.in)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProfile_ValidatePartial(t *testing.T) {
	if err := (Profile{WeightKg: 80}).ValidatePartial(); err != nil {
		t.Fatalf("partial update with weight only: %v", err)
	}
	if err := (Profile{HeightCm: 10}).ValidatePartial(); err == nil {
		t.Fatalf("expected error for invalid height")
	}
	if err := (Profile{Age: 30, HeightCm: 170, WeightKg: 70}).Validate(); err == nil {
		t.Fatalf("full validation requires gender")
	}
}

func TestBMIHandler(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bmi?weight_kg=72.25&height_cm=170", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Band != BandIdeal {
		t.Fatalf("expected ideal, got %s", res.Band)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bmi?weight_kg=70&height_cm=0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/onboarding/steps/2", strings.NewReader(`{"age":0}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid age, got %d", rec.Code)
	}
}
