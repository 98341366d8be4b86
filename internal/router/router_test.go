package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"dog-users-api/internal/config"
	"dog-users-api/internal/platform/logger"
	"dog-users-api/internal/platform/metrics"
	"dog-users-api/internal/router"

	"github.com/go-chi/chi/v5"
)

// fakeDogCeo imita las rutas de dog.ceo que usa el servicio.
func fakeDogCeo(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	routes := map[string]string{
		"/breeds/list/all":             `{"message":{"hound":["afghan","basset"],"pug":[]},"status":"success"}`,
		"/breed/hound/list":            `{"message":["afghan","basset"],"status":"success"}`,
		"/breed/pug/list":              `{"message":[],"status":"success"}`,
		"/breeds/image/random":         `{"message":"https://images.dog.ceo/breeds/pug/1.jpg","status":"success"}`,
		"/breeds/image/random/3":       `{"message":["a.jpg","b.jpg","c.jpg"],"status":"success"}`,
		"/breed/hound/images":          `{"message":["h1.jpg","h2.jpg"],"status":"success"}`,
		"/breed/pug/images":            `{"message":[],"status":"success"}`,
		"/breed/hound/images/random":   `{"message":"h1.jpg","status":"success"}`,
		"/breed/hound/images/random/2": `{"message":["h1.jpg","h2.jpg"],"status":"success"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"error","message":"Breed not found (main breed does not exist)","code":404}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestServer(t *testing.T, upstreamURL string) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	cfg := config.New()
	cfg.DogAPIBaseURL = upstreamURL
	cfg.DogAPITimeout = 2 * time.Second

	m := metrics.New()
	h, err := router.NewRouter(router.Options{Config: cfg, Metrics: m})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, m
}

func TestHTTP_EndToEnd_Dogs(t *testing.T) {
	upstream, calls := fakeDogCeo(t)
	ts, _ := newTestServer(t, upstream.URL)

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/api/dogs/breeds", http.StatusOK, []string{"hound", "pug"}},
		{"/api/dogs/hound/sub-breeds", http.StatusOK, []string{"afghan", "basset"}},
		{"/api/dogs/pug/sub-breeds", http.StatusOK, []string{}},
		{"/api/dogs/unknownbreed/sub-breeds", http.StatusOK, []string{}},
		{"/api/dogs/random-image", http.StatusOK, []string{"https://images.dog.ceo/breeds/pug/1.jpg"}},
		{"/api/dogs/random-image?count=3", http.StatusOK, []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"/api/dogs/hound/images", http.StatusOK, []string{"h1.jpg", "h2.jpg"}},
		{"/api/dogs/pug/images", http.StatusNoContent, nil},
		{"/api/dogs/hound/images/random", http.StatusOK, []string{"h1.jpg"}},
		{"/api/dogs/hound/images/random?count=2", http.StatusOK, []string{"h1.jpg", "h2.jpg"}},
		{"/api/dogs/unknownbreed/images", http.StatusServiceUnavailable, nil},
	}

	for _, tc := range tests {
		st, body := doReq(t, ts.URL, "GET", tc.path, nil)
		if st != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.path, tc.status, st, string(body))
		}
		if tc.want == nil {
			continue
		}
		var got []string
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("%s: decode: %v body=%s", tc.path, err, string(body))
		}
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("%s: expected %v, got %v", tc.path, tc.want, got)
		}
	}

	// count fuera de rango => 400 sin tocar upstream
	before := atomic.LoadInt32(calls)
	for _, p := range []string{"/api/dogs/random-image?count=51", "/api/dogs/hound/images/random?count=51"} {
		st, _ := doReq(t, ts.URL, "GET", p, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", p, st)
		}
	}
	if after := atomic.LoadInt32(calls); after != before {
		t.Fatalf("expected no upstream calls for invalid count, got %d", after-before)
	}
}

func TestHTTP_UpstreamDown_Is503(t *testing.T) {
	upstream, _ := fakeDogCeo(t)
	url := upstream.URL
	upstream.Close()

	ts, _ := newTestServer(t, url)

	st, body := doReq(t, ts.URL, "GET", "/api/dogs/breeds", nil)
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", st)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %q", string(body))
	}
}

func TestHTTP_EndToEnd_Users(t *testing.T) {
	upstream, _ := fakeDogCeo(t)
	ts, _ := newTestServer(t, upstream.URL)

	// 1) Lista vacía => 204
	if st, _ := doReq(t, ts.URL, "GET", "/api/users", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on empty list, got %d", st)
	}

	// 2) Crear
	st, body := doReq(t, ts.URL, "POST", "/api/users", map[string]any{
		"name":    "Ana",
		"email":   "ana@example.com",
		"address": "Calle 1",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var created struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		t.Fatalf("bad create response: %v body=%s", err, string(body))
	}

	// 3) Email duplicado => 409
	if st, _ := doReq(t, ts.URL, "POST", "/api/users", map[string]any{"name": "Otra", "email": "ana@example.com"}); st != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", st)
	}

	// 4) Search
	if st, _ := doReq(t, ts.URL, "GET", "/api/users/search?email=ana@example.com", nil); st != http.StatusOK {
		t.Fatalf("expected 200 on search, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/api/users/search?email=nadie@example.com", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 on search miss, got %d", st)
	}

	// 5) Update
	if st, body := doReq(t, ts.URL, "PUT", "/api/users/1", map[string]any{"name": "Ana", "email": "ana@example.com", "address": "Calle 2"}); st != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d body=%s", st, string(body))
	}

	// 6) Delete + get => 404
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/users/1", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/api/users/1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}

	// 7) Delete all
	_, _ = doReq(t, ts.URL, "POST", "/api/users", map[string]any{"name": "Beto", "email": "beto@example.com"})
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/users", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on delete all, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/api/users", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 after delete all, got %d", st)
	}
}

func TestHTTP_Platform(t *testing.T) {
	upstream, _ := fakeDogCeo(t)
	ts, _ := newTestServer(t, upstream.URL)

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok on /health, got %d %q", st, string(body))
	}

	_, _ = doReq(t, ts.URL, "GET", "/api/dogs/breeds", nil)
	st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on /metrics, got %d", st)
	}
	if !strings.Contains(string(body), `dogapi_http_requests_total{method="GET",route="/api/dogs/breeds",status="200"}`) {
		t.Fatalf("expected http metric in /metrics output")
	}
	if !strings.Contains(string(body), `dogapi_upstream_requests_total{endpoint="breeds_list",outcome="success"}`) {
		t.Fatalf("expected upstream metric in /metrics output")
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Dog Users API") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func TestHTTP_RequestIDAndCORS(t *testing.T) {
	upstream, _ := fakeDogCeo(t)
	ts, _ := newTestServer(t, upstream.URL)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/users", nil)
	req.Header.Set("Origin", "https://front.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	_ = res.Body.Close()
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS allow origin *, got %q", got)
	}

	res, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = res.Body.Close()
	if id := res.Header.Get("X-Request-ID"); id == "" {
		t.Fatal("expected generated request id")
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = res.Body.Close()
	if id := res.Header.Get("X-Request-ID"); id != "trace-42" {
		t.Fatalf("expected incoming request id echoed, got %q", id)
	}
}

func TestHTTP_PanicIsLoggedAndCountedAs500(t *testing.T) {
	upstream, _ := fakeDogCeo(t)

	var buf bytes.Buffer
	cfg := config.New()
	cfg.DogAPIBaseURL = upstream.URL
	m := metrics.New()
	h, err := router.NewRouter(router.Options{
		Config:  cfg,
		Metrics: m,
		Logger:  logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf}),
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	mux, ok := h.(chi.Router)
	if !ok {
		t.Fatalf("expected chi.Router, got %T", h)
	}
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"message":"panic recovered"`) {
		t.Fatalf("expected panic log, got %s", logs)
	}
	if !strings.Contains(logs, `"status":500`) {
		t.Fatalf("expected access log with status 500, got %s", logs)
	}

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `dogapi_http_requests_total{method="GET",route="/boom",status="500"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected %s in metrics", want)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
