package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nutshop/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	created  bool
	indexed  map[string]string
	lastBody map[string]any
	hits     string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case r.Method == http.MethodHead && r.URL.Path == "/products":
		if f.created {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && r.URL.Path == "/products":
		f.created = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/products/_doc/"):
		body, _ := io.ReadAll(r.Body)
		f.indexed[strings.TrimPrefix(r.URL.Path, "/products/_doc/")] = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.URL.Path == "/products/_count":
		_, _ = fmt.Fprintf(w, `{"count":%d,"_shards":{"total":1}}`, len(f.indexed))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		_, _ = io.WriteString(w, f.hits)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func newSearcher(t *testing.T, f *fakeES) *Searcher {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "", "")
	require.NoError(t, err)
	return New(client, "products")
}

func TestEnsureIndexAndIndex(t *testing.T) {
	f := &fakeES{indexed: map[string]string{}}
	s := newSearcher(t, f)
	ctx := context.Background()

	require.NoError(t, s.EnsureIndex(ctx))
	assert.True(t, f.created)
	require.NoError(t, s.EnsureIndex(ctx))

	img := "/images/almond.jpg"
	require.NoError(t, s.Index(ctx, models.Product{ID: 2, Name: "Миндаль", Price: decimal.NewFromInt(320), ImageURL: &img}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.indexed["2"]), &doc))
	assert.Equal(t, "Миндаль", doc["name"])
	assert.Equal(t, "320", doc["price"])
}

func TestCount(t *testing.T) {
	f := &fakeES{indexed: map[string]string{}}
	s := newSearcher(t, f)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Index(ctx, models.Product{ID: 1, Name: "Грецкий орех", Price: decimal.NewFromInt(250)}))
	require.NoError(t, s.Index(ctx, models.Product{ID: 2, Name: "Миндаль", Price: decimal.NewFromInt(320)}))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSearch_WildcardSubstring(t *testing.T) {
	f := &fakeES{
		indexed: map[string]string{},
		hits:    `{"hits":{"total":{"value":1},"hits":[{"_id":"2","_source":{"id":2}}]}}`,
	}
	s := newSearcher(t, f)

	ids, err := s.Search(context.Background(), "НД*")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)

	name := f.lastBody["query"].(map[string]any)["wildcard"].(map[string]any)["name"].(map[string]any)
	assert.Equal(t, `*НД\**`, name["value"])
	assert.Equal(t, true, name["case_insensitive"])
}

func TestSearch_ErrorStatus(t *testing.T) {
	f := &fakeES{indexed: map[string]string{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "", "")
	require.NoError(t, err)

	s := New(client, "missing")
	_, err = s.Search(context.Background(), "x")
	require.Error(t, err)
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, `a\*b\?c\\d`, escapeWildcard(`a*b?c\d`))
}
