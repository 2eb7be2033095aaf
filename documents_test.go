package searchkit_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit"
)

func TestDocuments_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/books/documents", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("action"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"1","title":"Dune"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1","title":"Dune"}`))
	})

	doc, err := client.Collection("books").Documents().Create(context.Background(), searchkit.Document{
		"id":    "1",
		"title": "Dune",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune", doc["title"])
}

func TestDocuments_Upsert(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "upsert", r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	_, err := client.Collection("books").Documents().Upsert(context.Background(), searchkit.Document{"id": "1"})
	require.NoError(t, err)
}

func TestDocuments_UpdateByFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/collections/books/documents", r.URL.Path)
		assert.Equal(t, "in_stock:true", r.URL.Query().Get("filter_by"))
		_, _ = w.Write([]byte(`{"num_updated":12}`))
	})

	updated, err := client.Collection("books").Documents().Update(
		context.Background(),
		searchkit.Document{"discounted": true},
		"in_stock:true",
	)

	require.NoError(t, err)
	assert.Equal(t, 12, updated)
}

func TestDocuments_DeleteByFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "num_pages:>100", r.URL.Query().Get("filter_by"))
		_, _ = w.Write([]byte(`{"num_deleted":7}`))
	})

	deleted, err := client.Collection("books").Documents().Delete(context.Background(), "num_pages:>100")
	require.NoError(t, err)
	assert.Equal(t, 7, deleted)
}

func TestDocuments_Search(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/collections/books/documents/search", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "dune", q.Get("q"))
		assert.Equal(t, "title", q.Get("query_by"))
		assert.Equal(t, "year:>1960", q.Get("filter_by"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "true", q.Get("prefix"))
		assert.Equal(t, "custom", q.Get("extra_param"))

		_, _ = w.Write([]byte(`{
			"found": 1,
			"out_of": 100,
			"page": 2,
			"hits": [
				{
					"document": {"id": "1", "title": "Dune"},
					"highlights": [{"field": "title", "snippet": "<mark>Dune</mark>"}],
					"text_match": 12345
				}
			]
		}`))
	})

	prefix := true
	result, err := client.Collection("books").Documents().Search(context.Background(), searchkit.SearchParameters{
		Q:        "dune",
		QueryBy:  "title",
		FilterBy: "year:>1960",
		Page:     2,
		Prefix:   &prefix,
		Extra:    url.Values{"extra_param": []string{"custom"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Found)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Dune", result.Hits[0].Document["title"])
	require.Len(t, result.Hits[0].Highlights, 1)
	assert.Equal(t, "<mark>Dune</mark>", result.Hits[0].Highlights[0].Snippet)
}

func TestSearchParameters_Values(t *testing.T) {
	t.Parallel()

	prefix := false
	numTypos := 0
	values := searchkit.SearchParameters{
		Q:        "dune",
		QueryBy:  "title",
		Prefix:   &prefix,
		NumTypos: &numTypos,
	}.Values()

	assert.Equal(t, "dune", values.Get("q"))
	assert.Equal(t, "title", values.Get("query_by"))
	// Booleans encode as literal strings, and an explicit zero is kept.
	assert.Equal(t, "false", values.Get("prefix"))
	assert.Equal(t, "0", values.Get("num_typos"))
	// Unset fields stay off the query string entirely.
	assert.False(t, values.Has("filter_by"))
	assert.False(t, values.Has("page"))
}

func TestDocuments_Export(t *testing.T) {
	t.Parallel()

	const jsonl = "{\"id\":\"1\"}\n{\"id\":\"2\"}\n"

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/books/documents/export", r.URL.Path)
		_, _ = w.Write([]byte(jsonl))
	})

	raw, err := client.Collection("books").Documents().Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jsonl, raw)
}

func TestDocuments_Import(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/books/documents/import", r.URL.Path)
		assert.Equal(t, "upsert", r.URL.Query().Get("action"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "{\"id\":\"1\"}\n{\"id\":\"2\"}\n", string(body))

		_, _ = w.Write([]byte("{\"success\":true}\n{\"success\":false,\"error\":\"duplicate ID\"}\n"))
	})

	results, err := client.Collection("books").Documents().Import(
		context.Background(),
		[]searchkit.Document{{"id": "1"}, {"id": "2"}},
		"upsert",
	)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "duplicate ID", results[1].Error)
}

func TestDocumentRef_Retrieve(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/collections/books/documents/1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"1","title":"Dune"}`))
	})

	doc, err := client.Collection("books").Documents().Get("1").Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dune", doc["title"])
}

func TestDocumentRef_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/collections/books/documents/1", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Dune Messiah"}`, string(body))

		_, _ = w.Write([]byte(`{"id":"1","title":"Dune Messiah"}`))
	})

	doc, err := client.Collection("books").Documents().Get("1").Update(context.Background(), searchkit.Document{
		"title": "Dune Messiah",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", doc["title"])
}

func TestDocumentRef_Delete(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/collections/books/documents/1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	doc, err := client.Collection("books").Documents().Get("1").Delete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", doc["id"])
}
