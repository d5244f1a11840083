package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/loadmap"
)

var _ editor.Backend = (*LoadMapClient)(nil)

func newTestClient(t *testing.T, h http.HandlerFunc) *LoadMapClient {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return &LoadMapClient{BaseURL: server.URL, Client: &http.Client{}}
}

func TestLoadMapClient_CreatePostsWithoutID(t *testing.T) {
	var gotMethod, gotPath string
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 7, "title": "Run 1"})
	})

	saved, err := c.Create(context.Background(), &loadmap.LoadMap{Fields: loadmap.Fields{Title: "Run 1"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/loadmaps" {
		t.Errorf("Expected POST /api/loadmaps, got %s %s", gotMethod, gotPath)
	}
	if _, ok := body["id"]; ok {
		t.Errorf("Expected no id in create payload, got %v", body["id"])
	}
	if _, ok := body["pallets_json"]; !ok {
		t.Errorf("Expected pallets_json key in payload")
	}
	if saved.ID != 7 {
		t.Errorf("Expected id 7, got %d", saved.ID)
	}
}

func TestLoadMapClient_ReplacePutsToID(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 42})
	})

	_, err := c.Replace(context.Background(), 42, &loadmap.LoadMap{ID: 42})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/loadmaps/42" {
		t.Errorf("Expected PUT /api/loadmaps/42, got %s %s", gotMethod, gotPath)
	}
}

func TestLoadMapClient_CreateAndReplaceSendSameShape(t *testing.T) {
	bodies := map[string]map[string]interface{}{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		bodies[r.Method] = body
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 42})
	})

	rec := &loadmap.LoadMap{ID: 42, Fields: loadmap.Fields{Title: "Run 1"}}
	if _, err := c.Create(context.Background(), rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := c.Replace(context.Background(), 42, rec); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.ID != 42 {
		t.Errorf("Expected caller's record to keep id 42, got %d", rec.ID)
	}

	created, replaced := bodies[http.MethodPost], bodies[http.MethodPut]
	if _, ok := replaced["id"]; ok {
		t.Errorf("Expected no id in replace payload, got %v", replaced["id"])
	}
	if len(created) != len(replaced) {
		t.Fatalf("Expected equal key sets, got %d create keys and %d replace keys", len(created), len(replaced))
	}
	for k := range created {
		if _, ok := replaced[k]; !ok {
			t.Errorf("Expected replace payload to carry %q", k)
		}
	}
}

func TestLoadMapClient_ListPassesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"id":1,"title":"Run 12","run_number":"12","trailer_number":"T9","updated_at":"2024-03-09T14:05:00Z"}]`))
	})

	items, err := c.List(context.Background(), " run 12 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotQuery != "run 12" {
		t.Errorf("Expected q=run 12, got %q", gotQuery)
	}
	if len(items) != 1 || items[0].TrailerNumber != "T9" {
		t.Errorf("Unexpected items %+v", items)
	}
}

func TestLoadMapClient_GetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	_, err := c.Get(context.Background(), 9)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound, got %v", err)
	}
	var ce *ClientError
	if !errors.As(err, &ce) || ce.Code != constants.ErrCodeNotFound {
		t.Errorf("Expected %s code, got %v", constants.ErrCodeNotFound, err)
	}
}

func TestLoadMapClient_DeleteServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE request, got %s", r.Method)
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Delete(context.Background(), 3)
	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ClientError, got %v", err)
	}
	if ce.StatusCode != http.StatusInternalServerError || ce.Code != constants.ErrCodeServerError {
		t.Errorf("Unexpected error %+v", ce)
	}
}

func TestLoadMapClient_NetworkError(t *testing.T) {
	c := &LoadMapClient{BaseURL: "http://127.0.0.1:1", Client: &http.Client{}}

	_, err := c.List(context.Background(), "")
	var ce *ClientError
	if !errors.As(err, &ce) || ce.Code != constants.ErrCodeNetworkError {
		t.Errorf("Expected network error, got %v", err)
	}
}

func TestLoadMapClient_DownloadExport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/loadmaps/5/export.pdf" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.3"))
	})

	var buf bytes.Buffer
	n, err := c.DownloadExport(context.Background(), 5, "pdf", &buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 8 || buf.String() != "%PDF-1.3" {
		t.Errorf("Unexpected body %q", buf.String())
	}
}

func TestNewLoadMapClient_TrimsSlash(t *testing.T) {
	c := NewLoadMapClient("http://example.test/")
	if c.BaseURL != "http://example.test" {
		t.Errorf("Expected trimmed base URL, got %s", c.BaseURL)
	}
}
