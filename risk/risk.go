// Package risk scores forecast days for weather hazard. Scoring is pure and
// deterministic: each rule contributes points independently and the total is
// clamped to [0,100].
package risk

import "tripplanner.app/models"

// Category bands over the clamped score
const (
	HighBand     = 60
	ModerateBand = 30
)

// Rule thresholds. Tiers within a rule are mutually exclusive; the highest
// tier that matches wins.
const (
	heavyRainProbability = 70
	showerProbability    = 40
	significantPrecipMM  = 10
	moderatePrecipMM     = 5
	severeGustKmh        = 50
	severeSustainedKmh   = 45
	strongGustKmh        = 35
	strongSustainedKmh   = 30
	breezyGustKmh        = 25
	extremeHeatCelsius   = 38
	hotCelsius           = 32
	extremeColdCelsius   = -5
	coldCelsius          = 3
)

// Score computes the risk assessment for one forecast day. Missing or zero
// fields contribute nothing; the factor list preserves rule evaluation order
// (precipitation probability, accumulation, wind, heat, cold).
func Score(day models.ForecastDay) models.RiskAssessment {
	score := 0
	factors := []string{}

	if day.PrecipProbability >= heavyRainProbability {
		score += 25
		factors = append(factors, "Heavy rain likely")
	} else if day.PrecipProbability >= showerProbability {
		score += 15
		factors = append(factors, "Chance of showers")
	}

	if day.PrecipSum >= significantPrecipMM {
		score += 15
		factors = append(factors, "Significant precipitation")
	} else if day.PrecipSum >= moderatePrecipMM {
		score += 8
		factors = append(factors, "Moderate precipitation")
	}

	if day.WindGust >= severeGustKmh || day.WindSpeed >= severeSustainedKmh {
		score += 25
		factors = append(factors, "Severe wind gusts")
	} else if day.WindGust >= strongGustKmh || day.WindSpeed >= strongSustainedKmh {
		score += 15
		factors = append(factors, "Strong wind")
	} else if day.WindGust >= breezyGustKmh {
		score += 8
		factors = append(factors, "Breezy conditions")
	}

	heat := day.ApparentTempMax
	if heat == 0 {
		heat = day.TempMax
	}
	if heat >= extremeHeatCelsius {
		score += 20
		factors = append(factors, "Extreme heat")
	} else if heat >= hotCelsius {
		score += 12
		factors = append(factors, "Hot temperatures")
	}

	// Zero means the field was absent, so the cold tiers stay silent rather
	// than treating a missing reading as a 0°C day.
	chill := day.ApparentTempMin
	if chill == 0 {
		chill = day.TempMin
	}
	if chill != 0 {
		if chill <= extremeColdCelsius {
			score += 20
			factors = append(factors, "Extreme cold")
		} else if chill <= coldCelsius {
			score += 10
			factors = append(factors, "Cold temperatures")
		}
	}

	if score > 100 {
		score = 100
	}

	return models.RiskAssessment{
		RiskScore:           score,
		RiskCategory:        Categorize(score),
		ContributingFactors: factors,
	}
}

// Categorize maps a clamped risk score to its coarse category
func Categorize(score int) string {
	switch {
	case score >= HighBand:
		return models.RiskHigh
	case score >= ModerateBand:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// Annotate maps Score over a forecast, preserving input order and length
func Annotate(days []models.ForecastDay) []models.AnnotatedForecastDay {
	annotated := make([]models.AnnotatedForecastDay, 0, len(days))
	for _, day := range days {
		annotated = append(annotated, models.AnnotatedForecastDay{
			ForecastDay:    day,
			RiskAssessment: Score(day),
		})
	}
	return annotated
}
