package alert

import (
	"math"

	"safety_monitor/internal/models"
)

// Classify maps a reading onto a verdict per category. It is pure and total:
// NaN or Inf inputs produce a Normal verdict flagged Indeterminate.
func Classify(r models.Reading, t Thresholds) models.Classification {
	out := models.Classification{
		Verdicts: make(map[models.AlertCategory]models.Verdict, 6),
	}

	ign := classifyIgnition(r, t)
	out.Verdicts[models.CategoryIgnitionLock] = ign
	out.IgnitionGranted = ign.Severity != models.SeverityCritical

	out.Verdicts[models.CategoryAccidentImpact] = levelIf(r.Accident, models.CategoryAccidentImpact, models.SeverityCritical)

	for cat, v := range classifyMining(r, t) {
		out.Verdicts[cat] = v
	}

	out.Verdicts[models.CategoryFireSmoke] = classifyFire(r, t)
	return out
}

func classifyIgnition(r models.Reading, t Thresholds) models.Verdict {
	if !finite(r.Alcohol) {
		return indeterminate()
	}
	return levelIf(r.Alcohol > t.Alcohol, models.CategoryIgnitionLock, models.SeverityCritical)
}

// classifyMining evaluates the mining priority chain: gas, then heat, then
// air quality. At most one mining category is non-Normal.
func classifyMining(r models.Reading, t Thresholds) map[models.AlertCategory]models.Verdict {
	res := map[models.AlertCategory]models.Verdict{
		models.CategoryMineGas:        normal(),
		models.CategoryMineHeat:       normal(),
		models.CategoryMineAirQuality: normal(),
	}

	if r.GasPPM > t.GasPPM {
		res[models.CategoryMineGas] = levelIf(true, models.CategoryMineGas, models.SeverityCritical)
		return res
	}

	switch {
	case !finite(r.TemperatureC):
		res[models.CategoryMineHeat] = indeterminate()
	case r.TemperatureC > t.TemperatureC:
		res[models.CategoryMineHeat] = levelIf(true, models.CategoryMineHeat, models.SeverityCritical)
		return res
	}

	if r.AirQuality > t.AirQuality {
		res[models.CategoryMineAirQuality] = levelIf(true, models.CategoryMineAirQuality, models.SeverityWarning)
	}
	return res
}

// classifyFire is disjunctive: either sensor alone is sufficient.
func classifyFire(r models.Reading, t Thresholds) models.Verdict {
	if r.Flame > t.Flame {
		return levelIf(true, models.CategoryFireSmoke, models.SeverityCritical)
	}
	if !finite(r.SmokeMgM3) {
		return indeterminate()
	}
	return levelIf(r.SmokeMgM3 > t.SmokeMgM3, models.CategoryFireSmoke, models.SeverityCritical)
}

func levelIf(cond bool, cat models.AlertCategory, sev models.Severity) models.Verdict {
	if !cond {
		return normal()
	}
	return models.Verdict{Severity: sev, Message: displayMessage(cat)}
}

func normal() models.Verdict { return models.Verdict{Severity: models.SeverityNormal} }

func indeterminate() models.Verdict {
	return models.Verdict{Severity: models.SeverityNormal, Indeterminate: true}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
