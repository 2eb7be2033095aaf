package searchkit

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrymomot/searchkit/pkg/transport"
)

// Field describes one field of a collection schema.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Facet    bool   `json:"facet,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Index    *bool  `json:"index,omitempty"`
	Sort     *bool  `json:"sort,omitempty"`
	Infix    bool   `json:"infix,omitempty"`
	Locale   string `json:"locale,omitempty"`
	// Drop marks the field for removal in a schema update.
	Drop bool `json:"drop,omitempty"`
}

// CollectionCreateSchema is the request body of Collections.Create.
type CollectionCreateSchema struct {
	Name                string   `json:"name"`
	Fields              []Field  `json:"fields"`
	DefaultSortingField string   `json:"default_sorting_field,omitempty"`
	TokenSeparators     []string `json:"token_separators,omitempty"`
	SymbolsToIndex      []string `json:"symbols_to_index,omitempty"`
	EnableNestedFields  bool     `json:"enable_nested_fields,omitempty"`
}

// CollectionSchema is a collection as the service reports it.
type CollectionSchema struct {
	CollectionCreateSchema

	NumDocuments int64 `json:"num_documents"`
	CreatedAt    int64 `json:"created_at"`
}

// CollectionUpdateSchema is the request and response body of
// Collection.Update: the set of field changes to apply.
type CollectionUpdateSchema struct {
	Fields []Field `json:"fields"`
}

// Collections manages the collection inventory and hands out per-collection
// wrappers. Wrappers are cached by name so repeated lookups share identity.
type Collections struct {
	api *transport.Client

	mu     sync.Mutex
	byName map[string]*Collection
}

func newCollections(api *transport.Client) *Collections {
	return &Collections{
		api:    api,
		byName: make(map[string]*Collection),
	}
}

// Create creates a new collection from the given schema.
func (cs *Collections) Create(ctx context.Context, schema CollectionCreateSchema) (CollectionSchema, error) {
	var created CollectionSchema
	if err := cs.api.Post(ctx, collectionsPath, nil, schema, &created); err != nil {
		return CollectionSchema{}, err
	}
	return created, nil
}

// Retrieve lists all collections.
func (cs *Collections) Retrieve(ctx context.Context) ([]CollectionSchema, error) {
	var all []CollectionSchema
	if err := cs.api.Get(ctx, collectionsPath, nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Get returns the wrapper for the named collection, creating and caching it
// on first use. No request is made; the collection may not exist yet.
func (cs *Collections) Get(name string) *Collection {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if c, ok := cs.byName[name]; ok {
		return c
	}
	c := newCollection(cs.api, name)
	cs.byName[name] = c
	return c
}

// Collection is the wrapper for one named collection. It owns the wrappers
// for its sub-resources, all sharing the same name and transport handle.
type Collection struct {
	Name string

	api       *transport.Client
	documents *Documents
	overrides *Overrides
	synonyms  *Synonyms
}

func newCollection(api *transport.Client, name string) *Collection {
	return &Collection{
		Name:      name,
		api:       api,
		documents: newDocuments(api, name),
		overrides: newOverrides(api, name),
		synonyms:  newSynonyms(api, name),
	}
}

// Documents returns the documents resource of this collection.
func (c *Collection) Documents() *Documents {
	return c.documents
}

// Overrides returns the curation overrides resource of this collection.
func (c *Collection) Overrides() *Overrides {
	return c.overrides
}

// Synonyms returns the synonyms resource of this collection.
func (c *Collection) Synonyms() *Synonyms {
	return c.synonyms
}

// Retrieve fetches the collection schema.
func (c *Collection) Retrieve(ctx context.Context) (CollectionSchema, error) {
	var schema CollectionSchema
	if err := c.api.Get(ctx, collectionEndpoint(c.Name), nil, &schema); err != nil {
		return CollectionSchema{}, err
	}
	return schema, nil
}

// Update applies a set of field changes to the collection schema.
func (c *Collection) Update(ctx context.Context, change CollectionUpdateSchema) (CollectionUpdateSchema, error) {
	var applied CollectionUpdateSchema
	if err := c.api.Patch(ctx, collectionEndpoint(c.Name), nil, change, &applied); err != nil {
		return CollectionUpdateSchema{}, err
	}
	return applied, nil
}

// Delete drops the collection and returns its final schema. The params are
// forwarded verbatim; none are required today, the pass-through exists for
// forward compatibility.
func (c *Collection) Delete(ctx context.Context, params url.Values) (CollectionSchema, error) {
	var deleted CollectionSchema
	if err := c.api.Delete(ctx, collectionEndpoint(c.Name), params, &deleted); err != nil {
		return CollectionSchema{}, err
	}
	return deleted, nil
}
