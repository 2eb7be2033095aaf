package searchkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/searchkit/pkg/transport"
)

// Document is a schema-less search document.
type Document = map[string]any

// SearchParameters describe one search request. Zero values are omitted
// from the query string.
type SearchParameters struct {
	Q       string
	QueryBy string

	FilterBy       string
	SortBy         string
	FacetBy        string
	MaxFacetValues int

	Page    int
	PerPage int

	GroupBy    string
	GroupLimit int

	IncludeFields   string
	ExcludeFields   string
	HighlightFields string

	Prefix   *bool
	NumTypos *int

	// Extra carries parameters with no dedicated field, forwarded verbatim.
	Extra url.Values
}

// Values encodes the parameters as a query string. Booleans become the
// literal strings "true"/"false" as the service expects.
func (p SearchParameters) Values() url.Values {
	values := url.Values{}
	for key, vs := range p.Extra {
		values[key] = vs
	}

	setString := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	setInt := func(key string, value int) {
		if value != 0 {
			values.Set(key, strconv.Itoa(value))
		}
	}

	setString("q", p.Q)
	setString("query_by", p.QueryBy)
	setString("filter_by", p.FilterBy)
	setString("sort_by", p.SortBy)
	setString("facet_by", p.FacetBy)
	setInt("max_facet_values", p.MaxFacetValues)
	setInt("page", p.Page)
	setInt("per_page", p.PerPage)
	setString("group_by", p.GroupBy)
	setInt("group_limit", p.GroupLimit)
	setString("include_fields", p.IncludeFields)
	setString("exclude_fields", p.ExcludeFields)
	setString("highlight_fields", p.HighlightFields)

	if p.Prefix != nil {
		values.Set("prefix", strconv.FormatBool(*p.Prefix))
	}
	if p.NumTypos != nil {
		values.Set("num_typos", strconv.Itoa(*p.NumTypos))
	}

	return values
}

// Highlight is a highlighted snippet of one matched field.
type Highlight struct {
	Field         string   `json:"field"`
	Snippet       string   `json:"snippet,omitempty"`
	Value         string   `json:"value,omitempty"`
	MatchedTokens []string `json:"matched_tokens,omitempty"`
}

// SearchHit is one matched document with its highlights and match score.
type SearchHit struct {
	Document   Document    `json:"document"`
	Highlights []Highlight `json:"highlights,omitempty"`
	TextMatch  int64       `json:"text_match,omitempty"`
}

// FacetCount aggregates values of one faceted field.
type FacetCount struct {
	FieldName string `json:"field_name"`
	Counts    []struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	} `json:"counts"`
}

// SearchResult is the response of Documents.Search.
type SearchResult struct {
	Found        int          `json:"found"`
	OutOf        int          `json:"out_of"`
	Page         int          `json:"page"`
	SearchTimeMs int          `json:"search_time_ms"`
	Hits         []SearchHit  `json:"hits"`
	FacetCounts  []FacetCount `json:"facet_counts,omitempty"`
}

// ImportResult is the outcome of one line of a bulk import.
type ImportResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Document string `json:"document,omitempty"`
}

// Documents is the documents resource of one collection.
type Documents struct {
	api        *transport.Client
	collection string
}

func newDocuments(api *transport.Client, collection string) *Documents {
	return &Documents{api: api, collection: collection}
}

// Get returns the wrapper for a single document by ID.
func (d *Documents) Get(id string) *DocumentRef {
	return &DocumentRef{api: d.api, collection: d.collection, id: id}
}

// Create indexes a new document. Fails with transport.ErrAlreadyExists if a
// document with the same ID is already indexed.
func (d *Documents) Create(ctx context.Context, document Document) (Document, error) {
	var created Document
	if err := d.api.Post(ctx, documentsEndpoint(d.collection), nil, document, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Upsert indexes the document, replacing an existing one with the same ID.
func (d *Documents) Upsert(ctx context.Context, document Document) (Document, error) {
	params := url.Values{"action": []string{"upsert"}}
	var upserted Document
	if err := d.api.Post(ctx, documentsEndpoint(d.collection), params, document, &upserted); err != nil {
		return nil, err
	}
	return upserted, nil
}

// Update applies partial updates to every document matching filterBy and
// returns the number of updated documents.
func (d *Documents) Update(ctx context.Context, document Document, filterBy string) (int, error) {
	params := url.Values{"filter_by": []string{filterBy}}
	var result struct {
		NumUpdated int `json:"num_updated"`
	}
	if err := d.api.Patch(ctx, documentsEndpoint(d.collection), params, document, &result); err != nil {
		return 0, err
	}
	return result.NumUpdated, nil
}

// Delete removes every document matching filterBy and returns the number of
// deleted documents.
func (d *Documents) Delete(ctx context.Context, filterBy string) (int, error) {
	params := url.Values{"filter_by": []string{filterBy}}
	var result struct {
		NumDeleted int `json:"num_deleted"`
	}
	if err := d.api.Delete(ctx, documentsEndpoint(d.collection), params, &result); err != nil {
		return 0, err
	}
	return result.NumDeleted, nil
}

// Search runs a search query against the collection.
func (d *Documents) Search(ctx context.Context, params SearchParameters) (*SearchResult, error) {
	var result SearchResult
	if err := d.api.Get(ctx, documentsEndpoint(d.collection)+"/search", params.Values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Export streams all documents of the collection as JSONL, one document per
// line.
func (d *Documents) Export(ctx context.Context) (string, error) {
	var raw string
	if err := d.api.Get(ctx, documentsEndpoint(d.collection)+"/export", nil, &raw); err != nil {
		return "", err
	}
	return raw, nil
}

// Import bulk-indexes documents as a JSONL payload. The action parameter is
// "create", "upsert", or "update"; empty means "create". The result carries
// one entry per document, in input order, and the call succeeds even when
// individual lines fail.
func (d *Documents) Import(ctx context.Context, documents []Document, action string) ([]ImportResult, error) {
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	for _, doc := range documents {
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}
	}

	params := url.Values{}
	if action != "" {
		params.Set("action", action)
	}

	var raw string
	if err := d.api.Post(ctx, documentsEndpoint(d.collection)+"/import", params, payload.Bytes(), &raw); err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	results := make([]ImportResult, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		var res ImportResult
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			return nil, fmt.Errorf("failed to decode import result line: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}

// DocumentRef is the wrapper for one document by ID.
type DocumentRef struct {
	api        *transport.Client
	collection string
	id         string
}

// Retrieve fetches the document.
func (r *DocumentRef) Retrieve(ctx context.Context) (Document, error) {
	var doc Document
	if err := r.api.Get(ctx, documentEndpoint(r.collection, r.id), nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update applies a partial update to the document and returns the merged
// result.
func (r *DocumentRef) Update(ctx context.Context, partial Document) (Document, error) {
	var updated Document
	if err := r.api.Patch(ctx, documentEndpoint(r.collection, r.id), nil, partial, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the document and returns its final contents.
func (r *DocumentRef) Delete(ctx context.Context) (Document, error) {
	var deleted Document
	if err := r.api.Delete(ctx, documentEndpoint(r.collection, r.id), nil, &deleted); err != nil {
		return nil, err
	}
	return deleted, nil
}
