package risk

import (
	"testing"

	"github.com/vitalboard/platform/pkg/common/models"
	"github.com/vitalboard/platform/pkg/normalizer"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultWeights())
}

func scoreInput(t *testing.T, data map[string]interface{}) int {
	t.Helper()
	return newTestEngine().Score(normalizer.Normalize(data))
}

func TestScoreHighRiskProfileClampsToHundred(t *testing.T) {
	// age +25, genetics +32, smoking +20, polluted +20, BMI 95/1.7^2 ~ 32.9
	// obese +12, stress +8: raw 117 clamps to 100.
	got := scoreInput(t, map[string]interface{}{
		"age":         "70",
		"genetics":    "high",
		"smoking":     "current",
		"environment": []interface{}{"polluted"},
		"weight":      "95",
		"height":      "170",
		"stress":      "8",
	})
	if got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreProtectiveProfileClampsToZero(t *testing.T) {
	// activity high is -6, BMI ~20.8 contributes nothing: raw -6 clamps to 0.
	got := scoreInput(t, map[string]interface{}{
		"age":        "25",
		"genetics":   "none",
		"smoking":    "none",
		"activity":   "high",
		"sleep":      "8",
		"weight":     "60",
		"height":     "170",
		"fruits":     "2",
		"vegetables": "1",
	})
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScoreUnsetNutritionCountsAsZeroServings(t *testing.T) {
	// Unset fruits and vegetables sum to 0 servings, which lands in the
	// low band.
	if got := scoreInput(t, map[string]interface{}{"age": "25"}); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestScoreAgeBands(t *testing.T) {
	cases := []struct {
		age  string
		want int
	}{
		{"70", 25},
		{"61", 25},
		{"60", 15},
		{"46", 15},
		{"45", 6},
		{"31", 6},
		{"30", 0},
		{"", 0},
		{"abc", 0},
		{"45 years", 6},
		{"70+", 25},
		{"1e2", 0},
	}
	for _, tc := range cases {
		// fruits+veg 3 keeps the nutrition contribution at zero.
		got := scoreInput(t, map[string]interface{}{
			"age": tc.age, "fruits": "2", "vegetables": "1",
		})
		if got != tc.want {
			t.Fatalf("age %q: expected %d, got %d", tc.age, tc.want, got)
		}
	}
}

func TestScoreGateAcceptedAgeAlwaysLandsInItsBand(t *testing.T) {
	// An age string the manual-entry gate accepts must score in the same
	// band as its canonical form.
	payload := map[string]interface{}{"fullname": "Ada", "age": "45 years", "consent": true}
	if err := normalizer.ValidateSubmission(payload); err != nil {
		t.Fatalf("gate rejected %q: %v", payload["age"], err)
	}
	got := scoreInput(t, map[string]interface{}{"age": "45 years"})
	want := scoreInput(t, map[string]interface{}{"age": "45"})
	if got != want {
		t.Fatalf("age %q scored %d, canonical form scored %d", "45 years", got, want)
	}
}

func TestScoreVitalsUpperBandsStack(t *testing.T) {
	base := map[string]interface{}{"fruits": "2", "vegetables": "1"}

	withSBP := func(v string) map[string]interface{} {
		return map[string]interface{}{"fruits": "2", "vegetables": "1", "sbp": v}
	}
	if got := scoreInput(t, withSBP("170")); got != 14 {
		t.Fatalf("sbp 170: expected stacked 14, got %d", got)
	}
	if got := scoreInput(t, withSBP("150")); got != 8 {
		t.Fatalf("sbp 150: expected 8, got %d", got)
	}
	if got := scoreInput(t, withSBP("140")); got != 0 {
		t.Fatalf("sbp 140 is below the exclusive threshold, got %d", got)
	}

	base["chol"] = "240"
	if got := scoreInput(t, base); got != 10 {
		t.Fatalf("chol 240: expected stacked 10, got %d", got)
	}
	base["chol"] = "200"
	if got := scoreInput(t, base); got != 5 {
		t.Fatalf("chol 200: expected 5, got %d", got)
	}
	delete(base, "chol")

	base["glucose"] = "126"
	if got := scoreInput(t, base); got != 12 {
		t.Fatalf("glucose 126: expected stacked 12, got %d", got)
	}
	base["glucose"] = "100"
	if got := scoreInput(t, base); got != 6 {
		t.Fatalf("glucose 100: expected 6, got %d", got)
	}
}

func TestScoreNutritionBands(t *testing.T) {
	cases := []struct {
		fruits, vegetables string
		want               int
	}{
		{"0", "0", 10},  // <1 low
		{"1", "1", 6},   // <3 mid
		{"2", "2", 0},   // [3,5) neutral
		{"3", "2", -4},  // >=5 benefit, clamped to 0 overall
		{"", "", 10},    // unset counts as 0 servings
		{"2,5", "1", 0}, // comma decimal accepted
	}
	for _, tc := range cases {
		got := scoreInput(t, map[string]interface{}{
			"fruits": tc.fruits, "vegetables": tc.vegetables,
		})
		want := tc.want
		if want < 0 {
			want = 0
		}
		if got != want {
			t.Fatalf("fruits=%q vegetables=%q: expected %d, got %d", tc.fruits, tc.vegetables, want, got)
		}
	}
}

func TestScoreDietChecksAreIndependent(t *testing.T) {
	neutral := map[string]interface{}{"fruits": "2", "vegetables": "1"}

	neutral["diet"] = "Fried food and soda"
	if got := scoreInput(t, neutral); got != 10 {
		t.Fatalf("bad diet: expected 10, got %d", got)
	}
	neutral["diet"] = "vegetarian, mediterranean"
	if got := scoreInput(t, neutral); got != 0 {
		t.Fatalf("good diet: expected round(-6) clamped to 0, got %d", got)
	}
	// Both checks can fire on the same text.
	neutral["diet"] = "mostly vegetables, occasional fast food"
	if got := scoreInput(t, neutral); got != 4 {
		t.Fatalf("mixed diet: expected 10-6=4, got %d", got)
	}
}

func TestScoreAlcoholAndSleepBands(t *testing.T) {
	neutral := func(extra map[string]interface{}) map[string]interface{} {
		data := map[string]interface{}{"fruits": "2", "vegetables": "1"}
		for k, v := range extra {
			data[k] = v
		}
		return data
	}

	if got := scoreInput(t, neutral(map[string]interface{}{"alcohol": "15"})); got != 6 {
		t.Fatalf("alcohol 15: expected 6, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"alcohol": "14"})); got != 3 {
		t.Fatalf("alcohol 14: expected 3, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"alcohol": "7"})); got != 3 {
		t.Fatalf("alcohol 7: expected 3, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"alcohol": "6.9"})); got != 0 {
		t.Fatalf("alcohol 6.9: expected 0, got %d", got)
	}

	if got := scoreInput(t, neutral(map[string]interface{}{"sleep": "5.9"})); got != 8 {
		t.Fatalf("short sleep: expected 8, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"sleep": "9.5"})); got != 4 {
		t.Fatalf("long sleep: expected 4, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"sleep": "6"})); got != 0 {
		t.Fatalf("sleep 6: expected 0, got %d", got)
	}
	if got := scoreInput(t, neutral(map[string]interface{}{"sleep": "9"})); got != 0 {
		t.Fatalf("sleep 9: expected 0, got %d", got)
	}
}

func TestScoreConditionsAndExposure(t *testing.T) {
	got := scoreInput(t, map[string]interface{}{
		"fruits": "2", "vegetables": "1",
		"conditions": []interface{}{"diabetes", "cvd", "unknown"},
		"noise":      true,
		"work":       []interface{}{"shift", "night"},
	})
	// diabetes 12 + cvd 20 + noise 3 + shift 4 + night 4 = 43; unknown
	// condition contributes nothing.
	if got != 43 {
		t.Fatalf("expected 43, got %d", got)
	}
}

func TestScoreStressClampedToScale(t *testing.T) {
	neutral := map[string]interface{}{"fruits": "2", "vegetables": "1"}

	neutral["stress"] = "25"
	if got := scoreInput(t, neutral); got != 10 {
		t.Fatalf("stress clamps to 10, got %d", got)
	}
	neutral["stress"] = "-4"
	if got := scoreInput(t, neutral); got != 0 {
		t.Fatalf("negative stress clamps to 0, got %d", got)
	}
	neutral["stress"] = "not a number"
	if got := scoreInput(t, neutral); got != 0 {
		t.Fatalf("unparsable stress counts as 0, got %d", got)
	}
}

func TestScoreIsDeterministicAndPure(t *testing.T) {
	engine := newTestEngine()
	rec := normalizer.Normalize(map[string]interface{}{
		"fullname":    "Cy",
		"age":         "55",
		"genetics":    "moderate",
		"diet":        "fast food",
		"environment": []interface{}{"urban", "green"},
		"smoking":     "former",
		"alcohol":     "10",
		"sleep":       "5",
		"height":      "180",
		"weight":      "95",
		"stress":      "6",
		"conditions":  []interface{}{"hypertension"},
		"sbp":         "165",
	})

	before := rec
	first := engine.Score(rec)
	for i := 0; i < 50; i++ {
		if got := engine.Score(rec); got != first {
			t.Fatalf("score not deterministic: %d then %d", first, got)
		}
	}
	if rec.Fullname != before.Fullname || rec.Risk != before.Risk {
		t.Fatal("score must not mutate its input")
	}
}

func TestScoreAlwaysWithinBounds(t *testing.T) {
	engine := newTestEngine()
	inputs := []map[string]interface{}{
		{},
		{"age": "130", "genetics": "high", "smoking": "current", "environment": []interface{}{"polluted", "urban"}, "conditions": []interface{}{"diabetes", "hypertension", "cvd", "cancer", "asthma", "obesity", "kidney"}, "sbp": "200", "chol": "300", "glucose": "200", "stress": "10", "sleep": "3", "weight": "150", "height": "160", "noise": true, "work": []interface{}{"shift", "night"}, "diet": "fried"},
		{"activity": "high", "environment": []interface{}{"green", "rural"}, "diet": "vegetarian", "fruits": "4", "vegetables": "3", "sleep": "8"},
	}
	for i, data := range inputs {
		got := engine.Score(normalizer.Normalize(data))
		if got < 0 || got > 100 {
			t.Fatalf("input %d: score %d out of [0,100]", i, got)
		}
	}
}

func TestRescoringCanonicalRecordIsIdempotent(t *testing.T) {
	engine := newTestEngine()
	rec := normalizer.Normalize(map[string]interface{}{
		"fullname": "Dee", "age": "48", "smoking": "former", "stress": "4",
	})
	rec.Risk = engine.Score(rec)

	again := normalizer.NormalizeRecord(rec)
	again.Risk = engine.Score(again)
	if again.Risk != rec.Risk {
		t.Fatalf("re-normalize+re-score changed risk: %d vs %d", rec.Risk, again.Risk)
	}
}

func TestScoreUsesEnumConstants(t *testing.T) {
	rec := models.Record{
		Age:        "20",
		Smoking:    models.SmokingCurrent,
		Activity:   models.ActivityModerate,
		Fruits:     "2",
		Vegetables: "1",
	}
	if got := newTestEngine().Score(rec); got != 20 {
		t.Fatalf("expected smoking-only contribution 20, got %d", got)
	}
}
