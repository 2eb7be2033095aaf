// Package searchkit is a Go client for a Typesense-compatible search
// service. It maps collections, documents, curation overrides, and synonyms
// onto their REST endpoints, on top of a connection layer that tracks the
// health of multiple server nodes and retries failed requests across them.
//
// # Usage
//
//	client, err := searchkit.New(config.Config{
//	    Nodes:  []config.NodeConfig{config.NodeURL("http://localhost:8108")},
//	    APIKey: "xyz",
//	})
//	if err != nil {
//	    // use errors.Is(err, config.ErrInvalidConfig)
//	}
//
//	books := client.Collection("books")
//	result, err := books.Documents().Search(ctx, searchkit.SearchParameters{
//	    Q:       "harry potter",
//	    QueryBy: "title",
//	})
//
// Configuration can also come from the environment (config.FromEnv) or a
// YAML file (config.FromFile). Failures split into two kinds: invalid
// configuration surfaces as config.ErrInvalidConfig at construction, and
// request failures surface as transport errors that unwrap to per-status
// sentinels such as transport.ErrNotFound.
//
// The client and every resource wrapper are safe for concurrent use; the
// wrappers hold nothing beyond their identity and the shared transport
// handle.
package searchkit
