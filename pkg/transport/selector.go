package transport

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/searchkit/pkg/config"
)

// selector picks the node for the next attempt. The nearest node is
// preferred whenever it is healthy or due for a recovery probe; otherwise
// nodes are tried round-robin, skipping unhealthy ones that are not yet due.
// The rotation index is the only shared state and is guarded by a mutex.
type selector struct {
	conf   *config.Configuration
	logger *slog.Logger

	mu   sync.Mutex
	next int
}

func newSelector(conf *config.Configuration, logger *slog.Logger) *selector {
	return &selector{conf: conf, logger: logger}
}

func (s *selector) pick() *config.Node {
	if nearest := s.conf.NearestNode; nearest != nil {
		if nearest.Healthy() || nearest.DueForHealthCheck(s.conf.HealthcheckInterval) {
			s.logger.Debug("using nearest node", slog.String("node", nearest.URL()))
			return nearest
		}
		s.logger.Debug("nearest node unhealthy, falling back to node pool")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := s.conf.Nodes
	for range nodes {
		node := nodes[s.next]
		s.next = (s.next + 1) % len(nodes)

		if node.Healthy() || node.DueForHealthCheck(s.conf.HealthcheckInterval) {
			return node
		}
	}

	// Every node is marked unhealthy and none is due yet. Some may have
	// recovered since they were last tried, so hand out the next one anyway.
	s.logger.Debug("no healthy nodes, returning next node in rotation")
	return nodes[s.next]
}
