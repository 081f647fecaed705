package circuitbreaker

import (
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
)

// NewCircuitBreaker is a factory function returning a *gobreaker.CircuitBreaker
// guarding the calls towards one provider endpoint, identified by name. The
// breaker trips once the overall number of requests has exceeded a tweakable
// MaxNumOfFailingRequests cap and the failing ratio has met the FailingRatio,
// so that an unresponsive provider is cut off instead of slowing every trade.
// State changes are logged with the endpoint they refer to.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(log.Fields{
				"endpoint": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("provider circuit breaker changed state")
		},
	})
}
