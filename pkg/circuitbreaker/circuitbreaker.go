// Package circuitbreaker gates the outbound deliveries of the daemon, ie. the
// webhook notifications, so that an unresponsive endpoint stops being hammered
// once enough requests have failed.
package circuitbreaker

import "github.com/sony/gobreaker"

var (
	// MaxNumOfFailingRequests is the number of observed requests before the
	// breaker considers tripping.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the failing ratio past which the breaker trips.
	FailingRatio = 0.6
)

// NewCircuitBreaker returns a *gobreaker.CircuitBreaker with a state-changing
// function that trips once the overall number of requests has reached
// MaxNumOfFailingRequests and the failing ratio has met FailingRatio.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests &&
				ratio >= FailingRatio
		},
	})
}
