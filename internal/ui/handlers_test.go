package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warehouse/loadmap/internal/common"
	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
	"warehouse/loadmap/internal/middleware"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

// In-memory backend
type memBackend struct {
	mu       sync.Mutex
	records  map[uint]*loadmap.LoadMap
	nextID   uint
	failSave bool
	failDel  bool
	creates  int
	replaces int
	deletes  int
}

func newMemBackend() *memBackend {
	return &memBackend{records: map[uint]*loadmap.LoadMap{}, nextID: 1}
}

func (b *memBackend) List(ctx context.Context, query string) ([]loadmap.Summary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []loadmap.Summary{}
	for id, rec := range b.records {
		if query != "" && !strings.Contains(strings.ToLower(rec.Title), strings.ToLower(query)) {
			continue
		}
		out = append(out, loadmap.Summary{ID: id, Title: rec.Title, UpdatedAt: time.Now()})
	}
	return out, nil
}

func (b *memBackend) Get(ctx context.Context, id uint) (*loadmap.LoadMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *rec
	return &cp, nil
}

func (b *memBackend) Create(ctx context.Context, m *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creates++
	if b.failSave {
		return nil, errors.New("backend down")
	}
	cp := *m
	cp.ID = b.nextID
	b.nextID++
	b.records[cp.ID] = &cp
	return &cp, nil
}

func (b *memBackend) Replace(ctx context.Context, id uint, m *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replaces++
	if b.failSave {
		return nil, errors.New("backend down")
	}
	cp := *m
	cp.ID = id
	b.records[id] = &cp
	return &cp, nil
}

func (b *memBackend) Delete(ctx context.Context, id uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes++
	if b.failDel {
		return errors.New("backend down")
	}
	delete(b.records, id)
	return nil
}

type uiFixture struct {
	srv     *httptest.Server
	backend *memBackend
	store   *SessionStore
	metrics *metrics.MetricsRegistry
}

func setupUI(t *testing.T) *uiFixture {
	t.Helper()
	backend := newMemBackend()
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	store := NewSessionStore(common.NewCacheService(600, 1200), func() editor.Backend { return backend }, m)
	render, err := NewRenderer()
	require.NoError(t, err)

	h := NewUIHandler(store, render, "http://api.test")
	r := chi.NewRouter()
	r.Use(middleware.EditorSessionMiddleware)
	r.Mount("/ui", h.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &uiFixture{srv: srv, backend: backend, store: store, metrics: m}
}

func (f *uiFixture) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func get(t *testing.T, c *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	return resp, body(t, resp)
}

func post(t *testing.T, c *http.Client, url string, v url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(url, v)
	require.NoError(t, err)
	return resp, body(t, resp)
}

func TestNewLoadMapShowsDefaults(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)

	resp, html := get(t, c, f.srv.URL+"/ui/loadmaps/new")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/ui/editor", resp.Request.URL.Path)
	assert.Contains(t, html, "New Load Map")
	assert.Contains(t, html, `name="wol_olpn_count" value="0"`)
	assert.Contains(t, html, `data-pos="30"`)
	assert.Contains(t, html, `data-scale-var="--print-scale"`)
	assert.NotContains(t, html, "export.pdf")
}

func TestEditPalletUpdatesGridAndTotals(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")

	resp, html := post(t, c, f.srv.URL+"/ui/editor/pallets/3", url.Values{
		"type":     {"Frozen"},
		"store":    {" 204 "},
		"bulkhead": {"1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "pallet type-Frozen bulkhead")
	assert.Contains(t, html, `<td id="total-count">1</td>`)
	assert.Contains(t, html, ">204<")

	resp, html = post(t, c, f.srv.URL+"/ui/editor/pallets/3/clear", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, html, "type-Frozen")
	assert.Contains(t, html, `<td id="total-count">0</td>`)
}

func TestPalletModal(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")
	post(t, c, f.srv.URL+"/ui/editor/pallets/16", url.Values{"type": {"Eggs"}, "zone": {"B"}})

	resp, html := get(t, c, f.srv.URL+"/ui/editor/pallets/16")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Pallet 16")
	assert.Contains(t, html, "row 2, col 1")
	assert.Contains(t, html, `<option value="Eggs" selected>`)
	assert.Contains(t, html, `name="zone" value="B"`)
}

func TestInvalidPalletPosition(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")

	resp, _ := post(t, c, f.srv.URL+"/ui/editor/pallets/31", url.Values{"type": {"Frozen"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveCreatesThenReplaces(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")
	post(t, c, f.srv.URL+"/ui/editor/pallets/1", url.Values{"type": {"Bread"}})

	resp, html := post(t, c, f.srv.URL+"/ui/editor/save", url.Values{"title": {"Run 9"}, "run_number": {"9"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/ui/loadmaps", resp.Request.URL.Path)
	assert.Contains(t, html, "Run 9")
	assert.Equal(t, 1, f.backend.creates)

	saved, err := f.backend.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Totals.Bread)
	assert.Len(t, saved.Pallets, loadmap.PalletCount)

	_, html = get(t, c, f.srv.URL+"/ui/loadmaps/1")
	assert.Contains(t, html, "Load Map #1")
	assert.Contains(t, html, "http://api.test/api/loadmaps/1/export.pdf")

	post(t, c, f.srv.URL+"/ui/editor/save", url.Values{"title": {"Run 9b"}})
	assert.Equal(t, 1, f.backend.creates)
	assert.Equal(t, 1, f.backend.replaces)
}

func TestSaveFailureKeepsEditorOpen(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")
	f.backend.failSave = true

	resp, html := post(t, c, f.srv.URL+"/ui/editor/save", url.Values{"title": {"Unsaved work"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, AlertSaveFailed)
	assert.Contains(t, html, `value="Unsaved work"`)

	_, html = get(t, c, f.srv.URL+"/ui/editor")
	assert.Contains(t, html, `value="Unsaved work"`)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")
	post(t, c, f.srv.URL+"/ui/editor/save", url.Values{"title": {"Doomed"}})
	get(t, c, f.srv.URL+"/ui/loadmaps/1")

	resp, html := post(t, c, f.srv.URL+"/ui/editor/delete", url.Values{"title": {"Doomed"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, f.backend.deletes)
	assert.Contains(t, html, "Load Map #1")

	f.backend.failDel = true
	_, html = post(t, c, f.srv.URL+"/ui/editor/delete", url.Values{"confirmed": {"yes"}})
	assert.Contains(t, html, AlertDeleteFailed)
	assert.Equal(t, 1, f.backend.deletes)

	f.backend.failDel = false
	resp, html = post(t, c, f.srv.URL+"/ui/editor/delete", url.Values{"confirmed": {"yes"}})
	assert.Equal(t, "/ui/loadmaps", resp.Request.URL.Path)
	assert.NotContains(t, html, "Doomed")
}

func TestCloseDiscardsSession(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	get(t, c, f.srv.URL+"/ui/loadmaps/new")

	resp, _ := post(t, c, f.srv.URL+"/ui/editor/close", nil)
	assert.Equal(t, "/ui/loadmaps", resp.Request.URL.Path)

	resp, _ = get(t, c, f.srv.URL+"/ui/editor")
	assert.Equal(t, "/ui/loadmaps", resp.Request.URL.Path)
	assert.Zero(t, f.backend.creates)
}

func TestBrowsersHaveSeparateSessions(t *testing.T) {
	f := setupUI(t)
	a, b := f.browser(t), f.browser(t)

	get(t, a, f.srv.URL+"/ui/loadmaps/new")
	resp, _ := get(t, b, f.srv.URL+"/ui/editor")
	assert.Equal(t, "/ui/loadmaps", resp.Request.URL.Path)

	assert.Equal(t, 2, f.store.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.EditorSessions))
}

func TestListRowsSearch(t *testing.T) {
	f := setupUI(t)
	c := f.browser(t)
	for _, title := range []string{"North", "South"} {
		get(t, c, f.srv.URL+"/ui/loadmaps/new")
		post(t, c, f.srv.URL+"/ui/editor/save", url.Values{"title": {title}})
	}

	resp, html := get(t, c, f.srv.URL+"/ui/loadmaps/rows?q=sou")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "South")
	assert.NotContains(t, html, "North")
}
