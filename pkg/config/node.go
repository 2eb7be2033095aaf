package config

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Node is one reachable instance of the search service. Host, port, and
// protocol are fixed at construction; the health fields are mutated by the
// transport layer on every attempt and are guarded by an internal mutex so
// concurrent requests can share the same node pool.
type Node struct {
	Host     string
	Port     int
	Path     string
	Protocol string

	mu         sync.Mutex
	healthy    bool
	lastAccess time.Time
}

// NewNode creates a node from its individual components. The node starts
// healthy with the last access timestamp set to now.
func NewNode(host string, port int, path, protocol string) *Node {
	return &Node{
		Host:       host,
		Port:       port,
		Path:       path,
		Protocol:   protocol,
		healthy:    true,
		lastAccess: time.Now(),
	}
}

// NodeFromURL parses a node from a URL string. The URL must carry a scheme,
// a host name, and an explicit port; the path component is optional.
func NodeFromURL(rawURL string) (*Node, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: Node URL does not contain the host name.", ErrInvalidConfig)
	}
	if parsed.Port() == "" {
		return nil, fmt.Errorf("%w: Node URL does not contain the port.", ErrInvalidConfig)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: Node URL does not contain the protocol.", ErrInvalidConfig)
	}

	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		return nil, fmt.Errorf("%w: Node URL does not contain a valid port.", ErrInvalidConfig)
	}

	return NewNode(parsed.Hostname(), port, parsed.Path, parsed.Scheme), nil
}

// URL reconstructs the canonical node URL: {protocol}://{host}:{port}{path}.
func (n *Node) URL() string {
	return fmt.Sprintf("%s://%s:%d%s", n.Protocol, n.Host, n.Port, n.Path)
}

// Healthy reports whether the node is currently considered reachable.
func (n *Node) Healthy() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.healthy
}

// SetHealthy records the outcome of an attempt against this node and bumps
// the last access timestamp.
func (n *Node) SetHealthy(healthy bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.healthy = healthy
	n.lastAccess = time.Now()
}

// LastAccess returns the time of the most recent attempt against this node.
func (n *Node) LastAccess() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastAccess
}

// DueForHealthCheck reports whether the node has not been tried for longer
// than the given interval. Unhealthy nodes that are due get periodically
// retried so they can recover.
func (n *Node) DueForHealthCheck(interval time.Duration) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return time.Since(n.lastAccess) > interval
}
