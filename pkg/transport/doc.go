// Package transport performs the HTTP requests behind every resource
// operation: node selection, per-attempt timeouts, retry with failover
// across the node pool, and node health bookkeeping.
//
// Node selection prefers the configured nearest node while it is healthy,
// then falls back to round-robin over the pool. Unhealthy nodes are skipped
// until their health-check interval elapses, at which point they are probed
// again so a recovered node rejoins the rotation. Connection failures and
// 5xx responses mark a node unhealthy and move on to the next one after the
// backoff delay; 4xx responses are permanent and surface immediately as
// *APIError values that unwrap to per-status sentinels:
//
//	err := client.Get(ctx, "/collections/books", nil, &schema)
//	if errors.Is(err, transport.ErrNotFound) {
//	    // collection does not exist
//	}
//
// The client is safe for concurrent use; the only mutable state is the
// round-robin index and the health flags on the shared Node values.
package transport
