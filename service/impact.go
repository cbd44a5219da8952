package service

import (
	"fmt"
	"log"
	"strings"

	"tripplanner.app/config"
	"tripplanner.app/models"
)

// Event categories whose plans are exposed to bad weather
var weatherSensitiveCategories = map[string]bool{
	"outdoor": true,
	"water":   true,
	"hiking":  true,
}

// ImpactService evaluates which itinerary events sit on hazardous days and
// looks for safer alternate dates nearby
type ImpactService struct {
	alertService AlertServiceInterface
	riskCfg      config.RiskConfig
}

// NewImpactService creates a new schedule-impact evaluator
func NewImpactService(alertService AlertServiceInterface, riskCfg config.RiskConfig) *ImpactService {
	return &ImpactService{
		alertService: alertService,
		riskCfg:      riskCfg,
	}
}

// Evaluate returns one impact per weather-sensitive event that falls on a day
// at or above the impact threshold. Each impact is persisted as an
// event-level alert before being returned; a persistence failure aborts the
// evaluation.
func (s *ImpactService) Evaluate(trip *models.Trip, events []models.Event, days []models.AnnotatedForecastDay) ([]models.ScheduleImpact, error) {
	byDate := make(map[string]models.AnnotatedForecastDay, len(days))
	for _, day := range days {
		byDate[day.Date.String()] = day
	}

	impacts := make([]models.ScheduleImpact, 0)
	for i := range events {
		event := events[i]

		day, ok := byDate[event.Date.String()]
		if !ok {
			continue
		}
		if day.RiskScore < s.riskCfg.ImpactThreshold {
			continue
		}
		if !isWeatherSensitive(&event) {
			continue
		}

		suggested := s.findSaferDate(trip, event.Date, byDate)

		if _, err := s.alertService.UpsertEventAlert(trip, &event, day, suggested); err != nil {
			return nil, err
		}

		impacts = append(impacts, models.ScheduleImpact{
			Event:         event,
			Reason:        fmt.Sprintf("High risk (%s) on %s", day.RiskCategory, event.Date),
			Factors:       day.ContributingFactors,
			SuggestedDate: suggested,
			RiskScore:     day.RiskScore,
		})
	}

	log.Printf("[DEBUG] ImpactService.Evaluate: tripID=%d events=%d impacts=%d\n", trip.ID, len(events), len(impacts))
	return impacts, nil
}

// findSaferDate scans alternate dates by growing distance, checking the
// earlier day before the later one at each distance. A candidate must fall
// inside the trip's date range, have a forecast, and score below the safe
// threshold.
func (s *ImpactService) findSaferDate(trip *models.Trip, date models.Date, byDate map[string]models.AnnotatedForecastDay) *models.Date {
	for distance := 1; distance <= s.riskCfg.SearchWindow; distance++ {
		for _, offset := range []int{-distance, distance} {
			candidate := date.AddDays(offset)
			if !candidate.Within(trip.StartDate, trip.EndDate) {
				continue
			}
			day, ok := byDate[candidate.String()]
			if !ok {
				continue
			}
			if day.RiskScore < s.riskCfg.SafeThreshold {
				return &candidate
			}
		}
	}
	return nil
}

func isWeatherSensitive(event *models.Event) bool {
	if weatherSensitiveCategories[eventCategory(event)] {
		return true
	}
	return strings.Contains(strings.ToLower(event.Type), "activity")
}
