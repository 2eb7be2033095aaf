package searchkit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit"
	"github.com/dmitrymomot/searchkit/pkg/transport"
)

func TestCollections_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"books","fields":[{"name":"title","type":"string"}]}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"books","fields":[{"name":"title","type":"string"}],"num_documents":0,"created_at":1700000000}`))
	})

	created, err := client.Collections().Create(context.Background(), searchkit.CollectionCreateSchema{
		Name:   "books",
		Fields: []searchkit.Field{{Name: "title", Type: "string"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "books", created.Name)
	assert.EqualValues(t, 1700000000, created.CreatedAt)
}

func TestCollections_Retrieve(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/collections", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name":"books"},{"name":"authors"}]`))
	})

	all, err := client.Collections().Retrieve(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "books", all[0].Name)
	assert.Equal(t, "authors", all[1].Name)
}

func TestCollection_Retrieve(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/collections/books", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"books","num_documents":42}`))
	})

	schema, err := client.Collection("books").Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "books", schema.Name)
	assert.EqualValues(t, 42, schema.NumDocuments)
}

func TestCollection_Retrieve_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})

	_, err := client.Collection("missing").Retrieve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrNotFound)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestCollection_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/collections/books", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"fields":[{"name":"isbn","type":"string","drop":true}]}`, string(body))

		_, _ = w.Write([]byte(`{"fields":[{"name":"isbn","type":"string","drop":true}]}`))
	})

	change := searchkit.CollectionUpdateSchema{
		Fields: []searchkit.Field{{Name: "isbn", Type: "string", Drop: true}},
	}
	applied, err := client.Collection("books").Update(context.Background(), change)
	require.NoError(t, err)
	assert.Equal(t, change, applied)
}

func TestCollection_Delete(t *testing.T) {
	t.Parallel()

	t.Run("without params", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/collections/books", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"name":"books"}`))
		})

		deleted, err := client.Collection("books").Delete(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "books", deleted.Name)
	})

	t.Run("forwards params verbatim", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "y", r.URL.Query().Get("x"))
			_, _ = w.Write([]byte(`{"name":"books"}`))
		})

		_, err := client.Collection("books").Delete(context.Background(), url.Values{"x": []string{"y"}})
		require.NoError(t, err)
	})
}

func TestCollection_EscapesName(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/with%2Fslash", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"name":"with/slash"}`))
	})

	_, err := client.Collection("with/slash").Retrieve(context.Background())
	require.NoError(t, err)
}
