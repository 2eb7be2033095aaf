package searchkit

import (
	"context"

	"github.com/dmitrymomot/searchkit/pkg/transport"
)

// SynonymCreateSchema is the request body of Synonyms.Upsert. A non-empty
// Root makes the synonym one-way: queries for Root expand to Synonyms, but
// not the other way around.
type SynonymCreateSchema struct {
	Synonyms       []string `json:"synonyms"`
	Root           string   `json:"root,omitempty"`
	Locale         string   `json:"locale,omitempty"`
	SymbolsToIndex []string `json:"symbols_to_index,omitempty"`
}

// SynonymSchema is a synonym as the service reports it.
type SynonymSchema struct {
	SynonymCreateSchema

	ID string `json:"id"`
}

// SynonymListSchema is the response of Synonyms.Retrieve.
type SynonymListSchema struct {
	Synonyms []SynonymSchema `json:"synonyms"`
}

// SynonymDeleteSchema is the response of Synonym.Delete.
type SynonymDeleteSchema struct {
	ID string `json:"id"`
}

// Synonyms is the synonyms resource of one collection.
type Synonyms struct {
	api        *transport.Client
	collection string
}

func newSynonyms(api *transport.Client, collection string) *Synonyms {
	return &Synonyms{api: api, collection: collection}
}

// Get returns the wrapper for a single synonym by ID.
func (s *Synonyms) Get(id string) *Synonym {
	return &Synonym{api: s.api, collection: s.collection, id: id}
}

// Upsert creates or replaces the synonym with the given ID.
func (s *Synonyms) Upsert(ctx context.Context, id string, schema SynonymCreateSchema) (SynonymSchema, error) {
	var saved SynonymSchema
	if err := s.api.Put(ctx, synonymsEndpoint(s.collection, id), nil, schema, &saved); err != nil {
		return SynonymSchema{}, err
	}
	return saved, nil
}

// Retrieve lists all synonyms of the collection.
func (s *Synonyms) Retrieve(ctx context.Context) (SynonymListSchema, error) {
	var list SynonymListSchema
	if err := s.api.Get(ctx, synonymsEndpoint(s.collection, ""), nil, &list); err != nil {
		return SynonymListSchema{}, err
	}
	return list, nil
}

// Synonym is the wrapper for one synonym by ID.
type Synonym struct {
	api        *transport.Client
	collection string
	id         string
}

// Retrieve fetches the synonym.
func (s *Synonym) Retrieve(ctx context.Context) (SynonymSchema, error) {
	var schema SynonymSchema
	if err := s.api.Get(ctx, synonymsEndpoint(s.collection, s.id), nil, &schema); err != nil {
		return SynonymSchema{}, err
	}
	return schema, nil
}

// Delete removes the synonym.
func (s *Synonym) Delete(ctx context.Context) (SynonymDeleteSchema, error) {
	var deleted SynonymDeleteSchema
	if err := s.api.Delete(ctx, synonymsEndpoint(s.collection, s.id), nil, &deleted); err != nil {
		return SynonymDeleteSchema{}, err
	}
	return deleted, nil
}
