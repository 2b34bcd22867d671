package risk

import (
	"math"
	"strings"

	"github.com/vitalboard/platform/pkg/common/models"
	"github.com/vitalboard/platform/pkg/normalizer"
)

// Engine computes the composite 0-100 risk score for a canonical record.
// Scoring is pure: no I/O, no mutation of the input, identical output for
// identical input. Partial sums are real-valued and never clamped; rounding
// and clamping happen once at the end.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

func (e *Engine) Weights() Weights {
	return e.weights
}

func (e *Engine) Score(rec models.Record) int {
	w := e.weights
	score := 0.0

	// Age, highest band wins. Leading-integer parsing, matching the manual
	// entry gate, so "45 years" lands in the same band as "45". An age with
	// no leading integer counts as 0.
	age, _ := normalizer.ParseAge(rec.Age)
	switch {
	case age > 60:
		score += w.Age.Over60
	case age > 45:
		score += w.Age.Over45
	case age > 30:
		score += w.Age.Over30
	}

	switch rec.Genetics {
	case models.GeneticsModerate:
		score += w.Genetics.Moderate
	case models.GeneticsHigh:
		score += w.Genetics.High
	}

	// Environment flags are independently additive, not mutually exclusive.
	// Membership checks, so a duplicated flag still counts once.
	if contains(rec.Environment, models.EnvPolluted) {
		score += w.Env.Polluted
	}
	if contains(rec.Environment, models.EnvUrban) {
		score += w.Env.Urban
	}
	if contains(rec.Environment, models.EnvGreen) {
		score += w.Env.Green
	}
	if contains(rec.Environment, models.EnvRural) {
		score += w.Env.Rural
	}

	// Diet free text; the bad and good checks are independent and may both
	// apply to the same description.
	diet := strings.ToLower(rec.Diet)
	if strings.Contains(diet, "fast") || strings.Contains(diet, "soda") || strings.Contains(diet, "fried") {
		score += w.Diet.Bad
	}
	if strings.Contains(diet, "veget") || strings.Contains(diet, "mediterr") {
		score += w.Diet.Good
	}

	switch rec.Smoking {
	case models.SmokingCurrent:
		score += w.Smoking.Current
	case models.SmokingFormer:
		score += w.Smoking.Former
	case models.SmokingNone:
		score += w.Smoking.None
	}

	if alcohol := normalizer.ParseNumber(rec.Alcohol); !math.IsNaN(alcohol) {
		if alcohol > 14 {
			score += w.Alcohol.High
		} else if alcohol >= 7 {
			score += w.Alcohol.Mild
		}
	}

	switch rec.Activity {
	case models.ActivityLow:
		score += w.Activity.Low
	case models.ActivityModerate:
		score += w.Activity.Moderate
	case models.ActivityHigh:
		score += w.Activity.High
	}

	if sleep := normalizer.ParseNumber(rec.Sleep); !math.IsNaN(sleep) {
		if sleep < 6 {
			score += w.Sleep.Short
		} else if sleep > 9 {
			score += w.Sleep.Long
		}
	}

	bmi := normalizer.DeriveBMI(normalizer.ParseNumber(rec.Weight), normalizer.ParseNumber(rec.Height))
	if !math.IsNaN(bmi) {
		switch {
		case bmi >= 30:
			score += w.BMI.Obese
		case bmi >= 25:
			score += w.BMI.Overweight
		case bmi < 18.5:
			score += w.BMI.Under
		}
	}

	stress := normalizer.ParseNumber(rec.Stress)
	if math.IsNaN(stress) {
		stress = 0
	}
	score += normalizer.Clamp(stress, 0, 10) * w.Stress

	for _, cond := range rec.Conditions {
		score += w.Conditions[cond]
	}

	// Vitals and labs. The upper band stacks the lower band's contribution
	// on top of its own.
	if sbp := normalizer.ParseNumber(rec.SBP); !math.IsNaN(sbp) {
		if sbp > 160 {
			score += w.Vitals.SBP160 + w.Vitals.SBP140
		} else if sbp > 140 {
			score += w.Vitals.SBP140
		}
	}
	if chol := normalizer.ParseNumber(rec.Chol); !math.IsNaN(chol) {
		if chol >= 240 {
			score += w.Vitals.Chol240 + w.Vitals.Chol200
		} else if chol >= 200 {
			score += w.Vitals.Chol200
		}
	}
	if glucose := normalizer.ParseNumber(rec.Glucose); !math.IsNaN(glucose) {
		if glucose >= 126 {
			score += w.Vitals.Glu126 + w.Vitals.Glu100
		} else if glucose >= 100 {
			score += w.Vitals.Glu100
		}
	}

	// Nutrition quick check, mutually exclusive bands.
	fruits := normalizer.ParseNumber(rec.Fruits)
	if math.IsNaN(fruits) {
		fruits = 0
	}
	vegetables := normalizer.ParseNumber(rec.Vegetables)
	if math.IsNaN(vegetables) {
		vegetables = 0
	}
	fv := fruits + vegetables
	if fv < 1 {
		score += w.Nutrition.Low
	} else if fv < 3 {
		score += w.Nutrition.Mid
	} else if fv >= 5 {
		score += w.Nutrition.High
	}

	// Work & exposure
	if rec.Noise {
		score += w.Exposure.Noise
	}
	if contains(rec.Work, models.WorkShift) {
		score += w.Exposure.Shift
	}
	if contains(rec.Work, models.WorkNight) {
		score += w.Exposure.Night
	}

	return int(normalizer.Clamp(math.Round(score), 0, 100))
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
