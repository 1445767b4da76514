package pubsub

import (
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

type multiPublisher struct {
	publishers []ports.Publisher
}

// NewMultiPublisher returns a Publisher fanning every event out to all the
// given publishers.
func NewMultiPublisher(publishers ...ports.Publisher) ports.Publisher {
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) Publish(event ports.Event) {
	for _, p := range m.publishers {
		p.Publish(event)
	}
}
