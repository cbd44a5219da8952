package providers

import (
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
	"tripplanner.app/metrics"
	"tripplanner.app/models"
)

// BreakerForecastProvider wraps a forecast provider with a circuit breaker.
// An open breaker fails fast instead of holding requests on a provider that
// keeps timing out; the weather service then treats the failure as "no data".
type BreakerForecastProvider struct {
	provider ForecastProvider
	breaker  *gobreaker.CircuitBreaker[[]models.ForecastDay]
	metrics  *metrics.ProviderMetrics
}

func NewBreakerForecastProvider(provider ForecastProvider) *BreakerForecastProvider {
	cb := gobreaker.NewCircuitBreaker[[]models.ForecastDay](gobreaker.Settings{
		Name:        "open-meteo-forecast",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[WARNING] Circuit breaker %s changed state: %s -> %s\n", name, from, to)
		},
	})

	return &BreakerForecastProvider{
		provider: provider,
		breaker:  cb,
		metrics:  metrics.NewProviderMetrics("open-meteo-forecast"),
	}
}

func (p *BreakerForecastProvider) GetDailyForecast(lat, lon float64, start, end models.Date) ([]models.ForecastDay, error) {
	started := time.Now()

	days, err := p.breaker.Execute(func() ([]models.ForecastDay, error) {
		return p.provider.GetDailyForecast(lat, lon, start, end)
	})

	p.metrics.RecordLatency(time.Since(started).Seconds())
	if err != nil {
		p.metrics.RecordCall("failure")
		return nil, err
	}

	p.metrics.RecordCall("success")
	return days, nil
}
