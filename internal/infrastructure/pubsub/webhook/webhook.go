// Package webhook delivers settlement events to an external HTTP endpoint.
// Delivery is best-effort: failures are logged and breaker-gated, they never
// surface to the operation that produced the event.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
	"github.com/NikhilRaikwar/solpacket-daemon/pkg/circuitbreaker"
)

var (
	requestTimeout = 15 * time.Second
	// deliveries per second towards the endpoint
	deliveryRate = 10
)

type publisher struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	limiter  ratelimit.Limiter
}

// NewPublisher returns a Publisher POSTing every event as JSON to the given
// endpoint.
func NewPublisher(endpoint string) (ports.Publisher, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("webhook endpoint must be a valid URI")
	}

	return &publisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
		breaker:  circuitbreaker.NewCircuitBreaker("webhook"),
		limiter:  ratelimit.New(deliveryRate),
	}, nil
}

func (p *publisher) Publish(event ports.Event) {
	go func() {
		p.limiter.Take()

		if _, err := p.breaker.Execute(func() (interface{}, error) {
			return nil, p.post(event)
		}); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event_id": event.Id,
				"type":     event.Type,
			}).Warn("failed to deliver webhook")
		}
	}()
}

func (p *publisher) post(event ports.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	resp, err := p.client.Post(p.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint replied with status %d", resp.StatusCode)
	}
	return nil
}
