package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/vitalboard/platform/pkg/common/models"
)

// Normalize converts an arbitrary untrusted payload (decoded JSON object from
// a form submission, an imported document element, or an intake event) into a
// fully-populated canonical Record. It is total: unknown fields are ignored
// and invalid scalars degrade to their documented defaults instead of
// failing. Both the manual-entry path and the bulk paths must go through this
// function so a record is scored identically however it arrived.
//
// The risk field of the input is deliberately not read; scores are always
// recomputed by the engine afterwards.
func Normalize(data map[string]interface{}) models.Record {
	rec := models.Record{
		Fullname:    getString(data["fullname"]),
		Age:         getString(data["age"]),
		Genetics:    getString(data["genetics"]),
		Diet:        getString(data["diet"]),
		Environment: getStringSlice(data["environment"]),
		Smoking:     getStringDefault(data["smoking"], models.SmokingNone),
		Alcohol:     getString(data["alcohol"]),
		Activity:    getStringDefault(data["activity"], models.ActivityModerate),
		Sleep:       getString(data["sleep"]),
		Height:      getString(data["height"]),
		Weight:      getString(data["weight"]),
		Stress:      getString(data["stress"]),
		Conditions:  getStringSlice(data["conditions"]),
		SBP:         getString(data["sbp"]),
		Chol:        getString(data["chol"]),
		Glucose:     getString(data["glucose"]),
		Fruits:      getString(data["fruits"]),
		Vegetables:  getString(data["vegetables"]),
		Noise:       getBool(data["noise"]),
		Work:        getStringSlice(data["work"]),
		Created:     getString(data["created"]),
	}

	if rec.Created == "" {
		rec.Created = time.Now().UTC().Format(time.RFC3339)
	}

	return rec
}

// NormalizeRecord re-runs normalization on an already canonical record, used
// to assert idempotence and to re-canonicalize records read from untrusted
// documents that happen to be well-typed.
func NormalizeRecord(rec models.Record) models.Record {
	return Normalize(map[string]interface{}{
		"fullname":    rec.Fullname,
		"age":         rec.Age,
		"genetics":    rec.Genetics,
		"diet":        rec.Diet,
		"environment": toInterfaceSlice(rec.Environment),
		"smoking":     rec.Smoking,
		"alcohol":     rec.Alcohol,
		"activity":    rec.Activity,
		"sleep":       rec.Sleep,
		"height":      rec.Height,
		"weight":      rec.Weight,
		"stress":      rec.Stress,
		"conditions":  toInterfaceSlice(rec.Conditions),
		"sbp":         rec.SBP,
		"chol":        rec.Chol,
		"glucose":     rec.Glucose,
		"fruits":      rec.Fruits,
		"vegetables":  rec.Vegetables,
		"noise":       rec.Noise,
		"work":        toInterfaceSlice(rec.Work),
		"created":     rec.Created,
	})
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// getString coerces the scalar shapes a decoded JSON value can take; any
// other type degrades to the empty string.
func getString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

func getStringDefault(v interface{}, fallback string) string {
	if s := getString(v); s != "" {
		return s
	}
	return fallback
}

// getStringSlice accepts only arrays; anything else normalizes to the empty
// set. Every element is coerced to its string form.
func getStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		if typed, ok := v.([]string); ok {
			out := make([]string, 0, len(typed))
			for _, item := range typed {
				out = append(out, strings.TrimSpace(item))
			}
			return out
		}
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, getString(item))
	}
	return out
}

func getBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
