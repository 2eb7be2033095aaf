package searchkit

import (
	"context"

	"github.com/dmitrymomot/searchkit/pkg/transport"
)

// OverrideRule decides which queries an override applies to: either a query
// string with a match mode, or a filter expression.
type OverrideRule struct {
	Query    string   `json:"query,omitempty"`
	Match    string   `json:"match,omitempty"` // "contains" or "exact"
	FilterBy string   `json:"filter_by,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// OverrideInclude pins one document to a position in the result list.
type OverrideInclude struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// OverrideCreateSchema is the request body of Overrides.Upsert.
type OverrideCreateSchema struct {
	Rule              OverrideRule      `json:"rule"`
	Includes          []OverrideInclude `json:"includes,omitempty"`
	Excludes          []string          `json:"excludes,omitempty"`
	FilterBy          string            `json:"filter_by,omitempty"`
	SortBy            string            `json:"sort_by,omitempty"`
	ReplaceQuery      string            `json:"replace_query,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	FilterCuratedHits bool              `json:"filter_curated_hits,omitempty"`
	EffectiveFromTs   int64             `json:"effective_from_ts,omitempty"`
	EffectiveToTs     int64             `json:"effective_to_ts,omitempty"`
	StopProcessing    bool              `json:"stop_processing,omitempty"`
}

// OverrideSchema is an override as the service reports it.
type OverrideSchema struct {
	OverrideCreateSchema

	ID string `json:"id"`
}

// OverrideListSchema is the response of Overrides.Retrieve.
type OverrideListSchema struct {
	Overrides []OverrideSchema `json:"overrides"`
}

// OverrideDeleteSchema is the response of Override.Delete.
type OverrideDeleteSchema struct {
	ID string `json:"id"`
}

// Overrides is the curation overrides resource of one collection.
type Overrides struct {
	api        *transport.Client
	collection string
}

func newOverrides(api *transport.Client, collection string) *Overrides {
	return &Overrides{api: api, collection: collection}
}

// Get returns the wrapper for a single override by ID.
func (o *Overrides) Get(id string) *Override {
	return &Override{api: o.api, collection: o.collection, id: id}
}

// Upsert creates or replaces the override with the given ID.
func (o *Overrides) Upsert(ctx context.Context, id string, schema OverrideCreateSchema) (OverrideSchema, error) {
	var saved OverrideSchema
	if err := o.api.Put(ctx, overridesEndpoint(o.collection, id), nil, schema, &saved); err != nil {
		return OverrideSchema{}, err
	}
	return saved, nil
}

// Retrieve lists all overrides of the collection.
func (o *Overrides) Retrieve(ctx context.Context) (OverrideListSchema, error) {
	var list OverrideListSchema
	if err := o.api.Get(ctx, overridesEndpoint(o.collection, ""), nil, &list); err != nil {
		return OverrideListSchema{}, err
	}
	return list, nil
}

// Override is the wrapper for one override by ID.
type Override struct {
	api        *transport.Client
	collection string
	id         string
}

// Retrieve fetches the override.
func (o *Override) Retrieve(ctx context.Context) (OverrideSchema, error) {
	var schema OverrideSchema
	if err := o.api.Get(ctx, overridesEndpoint(o.collection, o.id), nil, &schema); err != nil {
		return OverrideSchema{}, err
	}
	return schema, nil
}

// Delete removes the override.
func (o *Override) Delete(ctx context.Context) (OverrideDeleteSchema, error) {
	var deleted OverrideDeleteSchema
	if err := o.api.Delete(ctx, overridesEndpoint(o.collection, o.id), nil, &deleted); err != nil {
		return OverrideDeleteSchema{}, err
	}
	return deleted, nil
}
