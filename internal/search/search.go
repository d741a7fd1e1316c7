package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/nutshop/internal/models"
)

const maxHits = 1000

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "long"},
      "name":      {"type": "keyword"},
      "price":     {"type": "keyword"},
      "image_url": {"type": "keyword", "index": false}
    }
  }
}`

type Searcher struct {
	es    *elasticsearch.Client
	index string
}

type document struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	ImageURL *string `json:"image_url,omitempty"`
}

func NewClient(addr, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}
	return client, nil
}

func New(client *elasticsearch.Client, index string) *Searcher {
	return &Searcher{es: client, index: index}
}

// EnsureIndex creates the product index with a keyword name field if it is missing.
func (s *Searcher) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("elasticsearch: index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("elasticsearch: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch: create index: %s: %s", res.Status(), body)
	}
	return nil
}

func (s *Searcher) Index(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(document{ID: p.ID, Name: p.Name, Price: p.Price.String(), ImageURL: p.ImageURL})
	if err != nil {
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: strconv.FormatUint(uint64(p.ID), 10),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("elasticsearch: index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch: index product %d: %s: %s", p.ID, res.Status(), body)
	}
	return nil
}

// Count returns the number of documents in the index.
func (s *Searcher) Count(ctx context.Context) (int64, error) {
	res, err := esapi.CountRequest{Index: []string{s.index}}.Do(ctx, s.es)
	if err != nil {
		return 0, fmt.Errorf("elasticsearch: count: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("elasticsearch: count: %s: %s", res.Status(), body)
	}

	var r struct {
		Count *int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("elasticsearch: decode count response: %w", err)
	}
	if r.Count == nil {
		return 0, errors.New("elasticsearch: count response without count")
	}
	return *r.Count, nil
}

// Search returns the ids of products whose name contains query, ignoring case.
func (s *Searcher) Search(ctx context.Context, query string) ([]uint, error) {
	var buf bytes.Buffer
	q := map[string]any{
		"size":    maxHits,
		"_source": []string{"id"},
		"sort":    []any{map[string]any{"id": "asc"}},
		"query": map[string]any{
			"wildcard": map[string]any{
				"name": map[string]any{
					"value":            "*" + escapeWildcard(query) + "*",
					"case_insensitive": true,
				},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  &buf,
	}.Do(ctx, s.es)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: search: %s: %s", res.Status(), body)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("elasticsearch: decode search response: %w", err)
	}
	if r.Hits.Hits == nil {
		return nil, errors.New("elasticsearch: search response without hits")
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}
