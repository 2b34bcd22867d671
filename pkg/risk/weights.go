package risk

// Weights is the full additive rule table. Each factor contributes
// independently; the final score is the rounded sum clamped to [0,100].
type Weights struct {
	Age        AgeWeights         `yaml:"age" json:"age"`
	Genetics   GeneticsWeights    `yaml:"genetics" json:"genetics"`
	Env        EnvWeights         `yaml:"environment" json:"environment"`
	Diet       DietWeights        `yaml:"diet" json:"diet"`
	Smoking    SmokingWeights     `yaml:"smoking" json:"smoking"`
	Alcohol    AlcoholWeights     `yaml:"alcohol" json:"alcohol"`
	Activity   ActivityWeights    `yaml:"activity" json:"activity"`
	Sleep      SleepWeights       `yaml:"sleep" json:"sleep"`
	BMI        BMIWeights         `yaml:"bmi" json:"bmi"`
	Stress     float64            `yaml:"stress" json:"stress"`
	Conditions map[string]float64 `yaml:"conditions" json:"conditions"`
	Vitals     VitalWeights       `yaml:"vitals" json:"vitals"`
	Nutrition  NutritionWeights   `yaml:"nutrition" json:"nutrition"`
	Exposure   ExposureWeights    `yaml:"exposure" json:"exposure"`
}

type AgeWeights struct {
	Over60 float64 `yaml:"over60" json:"over60"`
	Over45 float64 `yaml:"over45" json:"over45"`
	Over30 float64 `yaml:"over30" json:"over30"`
}

type GeneticsWeights struct {
	Moderate float64 `yaml:"moderate" json:"moderate"`
	High     float64 `yaml:"high" json:"high"`
}

type EnvWeights struct {
	Polluted float64 `yaml:"polluted" json:"polluted"`
	Urban    float64 `yaml:"urban" json:"urban"`
	Green    float64 `yaml:"green" json:"green"`
	Rural    float64 `yaml:"rural" json:"rural"`
}

type DietWeights struct {
	Bad  float64 `yaml:"bad" json:"bad"`
	Good float64 `yaml:"good" json:"good"`
}

type SmokingWeights struct {
	Current float64 `yaml:"current" json:"current"`
	Former  float64 `yaml:"former" json:"former"`
	None    float64 `yaml:"none" json:"none"`
}

// 7-14 units/week mild, >14 high.
type AlcoholWeights struct {
	Mild float64 `yaml:"mild" json:"mild"`
	High float64 `yaml:"high" json:"high"`
}

type ActivityWeights struct {
	Low      float64 `yaml:"low" json:"low"`
	Moderate float64 `yaml:"moderate" json:"moderate"`
	High     float64 `yaml:"high" json:"high"`
}

// <6h short, >9h long.
type SleepWeights struct {
	Short float64 `yaml:"short" json:"short"`
	Long  float64 `yaml:"long" json:"long"`
}

type BMIWeights struct {
	Under      float64 `yaml:"under" json:"under"`
	Overweight float64 `yaml:"overweight" json:"overweight"`
	Obese      float64 `yaml:"obese" json:"obese"`
}

// The 160/240/126 bands stack on top of the lower band instead of replacing
// it: sbp>160 contributes SBP160+SBP140. That additive behavior is carried
// over from the original rule table on purpose.
type VitalWeights struct {
	SBP140  float64 `yaml:"sbp140" json:"sbp140"`
	SBP160  float64 `yaml:"sbp160" json:"sbp160"`
	Chol200 float64 `yaml:"chol200" json:"chol200"`
	Chol240 float64 `yaml:"chol240" json:"chol240"`
	Glu100  float64 `yaml:"glu100" json:"glu100"`
	Glu126  float64 `yaml:"glu126" json:"glu126"`
}

// fruits+veg servings/day: <1 low, <3 mid, >=5 high benefit.
type NutritionWeights struct {
	Low  float64 `yaml:"low" json:"low"`
	Mid  float64 `yaml:"mid" json:"mid"`
	High float64 `yaml:"high" json:"high"`
}

type ExposureWeights struct {
	Noise float64 `yaml:"noise" json:"noise"`
	Shift float64 `yaml:"shift" json:"shift"`
	Night float64 `yaml:"night" json:"night"`
}

func DefaultWeights() Weights {
	return Weights{
		Age:      AgeWeights{Over60: 25, Over45: 15, Over30: 6},
		Genetics: GeneticsWeights{Moderate: 18, High: 32},
		Env:      EnvWeights{Polluted: 20, Urban: 6, Green: -6, Rural: -2},
		Diet:     DietWeights{Bad: 10, Good: -6},
		Smoking:  SmokingWeights{Current: 20, Former: 5, None: 0},
		Alcohol:  AlcoholWeights{Mild: 3, High: 6},
		Activity: ActivityWeights{Low: 6, Moderate: 0, High: -6},
		Sleep:    SleepWeights{Short: 8, Long: 4},
		BMI:      BMIWeights{Under: 3, Overweight: 6, Obese: 12},
		Stress:   1,
		Conditions: map[string]float64{
			"diabetes":     12,
			"hypertension": 10,
			"cvd":          20,
			"cancer":       8,
			"asthma":       6,
			"obesity":      8,
			"kidney":       12,
		},
		Vitals:    VitalWeights{SBP140: 8, SBP160: 6, Chol200: 5, Chol240: 5, Glu100: 6, Glu126: 6},
		Nutrition: NutritionWeights{Low: 10, Mid: 6, High: -4},
		Exposure:  ExposureWeights{Noise: 3, Shift: 4, Night: 4},
	}
}
