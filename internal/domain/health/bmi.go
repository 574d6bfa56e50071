package health

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid input")

type Band string

const (
	BandUnderweight Band = "underweight"
	BandIdeal       Band = "ideal"
	BandOverweight  Band = "overweight"
	BandObese       Band = "obese"
)

// BMI calcula el índice redondeado a un decimal.
func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || math.IsNaN(weightKg) || math.IsNaN(heightCm) ||
		math.IsInf(weightKg, 0) || math.IsInf(heightCm, 0) {
		return 0, ErrInvalidInput
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10, nil
}

// Classify: 18.5 y 25.0 caen en ideal.
func Classify(bmi float64) Band {
	switch {
	case bmi < 18.5:
		return BandUnderweight
	case bmi <= 25.0:
		return BandIdeal
	case bmi < 30:
		return BandOverweight
	default:
		return BandObese
	}
}

type Result struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	BMI      float64 `json:"bmi"`
	Band     Band    `json:"band"`
	Text     string  `json:"text"`
}

func Evaluate(weightKg, heightCm float64) (Result, error) {
	bmi, err := BMI(weightKg, heightCm)
	if err != nil {
		return Result{}, err
	}
	band := Classify(bmi)
	return Result{
		WeightKg: weightKg,
		HeightCm: heightCm,
		BMI:      bmi,
		Band:     band,
		Text:     Describe(bmi, band),
	}, nil
}

// Describe es el texto plantilla que se muestra cuando el asistente no responde.
func Describe(bmi float64, band Band) string {
	var advice string
	switch band {
	case BandUnderweight:
		advice = "This is below the healthy range. Consider talking to a doctor or nutritionist about a balanced diet to gain weight safely."
	case BandIdeal:
		advice = "This is within the healthy range. Keep up a balanced diet and regular physical activity."
	case BandOverweight:
		advice = "This is above the healthy range. Small changes in diet and daily activity can help; a professional can guide you."
	default:
		advice = "This is in the obesity range. It is recommended to consult a doctor to build a plan that fits you."
	}
	return fmt.Sprintf("Your BMI is %.1f (%s). %s", bmi, band, advice)
}
