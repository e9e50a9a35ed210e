package handlers

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"worddee/internal/apiclient"
	"worddee/internal/metrics"
	"worddee/internal/practice"
	"worddee/internal/security"
	"worddee/internal/service"
	"worddee/internal/templates"
)

const (
	wordBody     = `{"id":7,"word":"ubiquitous","definition":"present, appearing, or found everywhere","difficulty_level":"Advanced"}`
	feedbackBody = `{"score":8.5,"level":"Advanced","suggestion":"Good structure","corrected_sentence":"Smartphones are ubiquitous in modern life."}`
	summaryBody  = `{"total_practices":12,"average_score":7.25,"total_words_practiced":9,"level_distribution":{"Beginner":5,"Intermediate":4,"Advanced":3}}`
	historyBody  = `[{"id":1,"word":"ubiquitous","user_sentence":"Phones are ubiquitous.","score":8.5,"feedback":"Nice","practiced_at":"2024-05-01T10:30:00"}]`
)

type fakeAPI struct {
	wordCalls     atomic.Int32
	validateCalls atomic.Int32
	lastSentence  atomic.Value
	wordFails     atomic.Bool
	validateFails atomic.Bool
	history       string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/word", func(w http.ResponseWriter, r *http.Request) {
		f.wordCalls.Add(1)
		if f.wordFails.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, wordBody)
	})
	mux.HandleFunc("POST /api/validate-sentence", func(w http.ResponseWriter, r *http.Request) {
		f.validateCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.lastSentence.Store(string(body))
		if f.validateFails.Load() {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"detail":"Sentence does not use the word"}`)
			return
		}
		io.WriteString(w, feedbackBody)
	})
	mux.HandleFunc("GET /api/summary", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, summaryBody)
	})
	mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		body := f.history
		if body == "" {
			body = historyBody
		}
		io.WriteString(w, body)
	})
	return mux
}

type testApp struct {
	server *httptest.Server
	client *http.Client
	api    *fakeAPI
}

func newTestApp(t *testing.T, api *fakeAPI) *testApp {
	t.Helper()

	backend := httptest.NewServer(api.handler())
	t.Cleanup(backend.Close)

	client, err := apiclient.New(backend.URL+"/api", backend.Client())
	require.NoError(t, err)

	tmpl, err := templates.Load(templates.FS)
	require.NoError(t, err)

	logger := zap.NewNop()
	store := practice.NewStore(time.Minute)
	t.Cleanup(store.Close)

	mw := NewMiddleware(
		security.NewSessionManager("test-secret", time.Hour),
		security.NewCSRFGenerator("test-secret"),
		security.NewRateLimiter(100, time.Minute),
		logger,
	)
	router := Router{
		Practice:   NewPracticeHandler(service.NewPracticeService(store, client, logger), mw, tmpl, logger),
		Dashboard:  NewDashboardHandler(service.NewDashboardService(client, 5, logger), tmpl, logger),
		Middleware: mw,
		Metrics:    metrics.New(),
		Logger:     logger,
	}

	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{server: srv, client: &http.Client{Jar: jar}, api: api}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]+)"`)

func csrfToken(t *testing.T, body string) string {
	t.Helper()
	m := csrfPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "page should carry a csrf token")
	return m[1]
}

func TestPracticePageShowsWord(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	status, body := app.get(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ubiquitous")
	assert.Contains(t, body, "present, appearing, or found everywhere")
	assert.Contains(t, body, "Advanced")
	assert.Regexp(t, `id="submit" class="btn" disabled`, body, "submit starts disabled")
	assert.Equal(t, int32(1), app.api.wordCalls.Load())

	app.get(t, "/")
	assert.Equal(t, int32(1), app.api.wordCalls.Load(), "word is fetched once per session")
}

func TestSubmitShowsFeedback(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")

	status, body := app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {csrfToken(t, page)},
		"sentence":             {"  Phones are ubiquitous today.  "},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="score">8.5<`)
	assert.Contains(t, body, "Good structure")
	assert.Contains(t, body, "Smartphones are ubiquitous in modern life.")
	assert.Contains(t, body, "Next Word")

	sent, _ := app.api.lastSentence.Load().(string)
	assert.Contains(t, sent, `"word_id":7`)
	assert.Contains(t, sent, `"sentence":"Phones are ubiquitous today."`)
}

func TestSubmitWhitespaceSkipsBackend(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")

	status, body := app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {csrfToken(t, page)},
		"sentence":             {"   \n\t"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(0), app.api.validateCalls.Load())
	assert.Contains(t, body, `id="sentence-form"`)
}

func TestSubmitFailureKeepsSentence(t *testing.T) {
	api := &fakeAPI{}
	api.validateFails.Store(true)
	app := newTestApp(t, api)
	_, page := app.get(t, "/")

	_, body := app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {csrfToken(t, page)},
		"sentence":             {"Phones are everywhere"},
	})
	assert.Contains(t, body, "Validation failed: Sentence does not use the word")
	assert.Contains(t, body, "Phones are everywhere</textarea>")
}

func TestNextFetchesNewWord(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")
	token := csrfToken(t, page)

	app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {token},
		"sentence":             {"Phones are ubiquitous."},
	})
	_, body := app.post(t, "/practice/next", url.Values{security.CSRFFieldName: {token}})

	assert.Equal(t, int32(2), app.api.wordCalls.Load())
	assert.NotContains(t, body, `id="score"`)
	assert.NotContains(t, body, "Phones are ubiquitous.")
}

func TestWordFetchFailureOffersRetry(t *testing.T) {
	api := &fakeAPI{}
	api.wordFails.Store(true)
	app := newTestApp(t, api)

	_, page := app.get(t, "/")
	assert.Contains(t, page, "Error: Failed to fetch word")
	assert.Contains(t, page, "Try Again")

	api.wordFails.Store(false)
	_, body := app.post(t, "/practice/next", url.Values{security.CSRFFieldName: {csrfToken(t, page)}})
	assert.Contains(t, body, "ubiquitous")
}

func TestSubmitRejectsMissingCSRFToken(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	app.get(t, "/")

	status, _ := app.post(t, "/practice/submit", url.Values{"sentence": {"Phones are ubiquitous."}})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int32(0), app.api.validateCalls.Load())
}

func (a *testApp) postJSON(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSubmitJSON(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")

	status, body := app.postJSON(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {csrfToken(t, page)},
		"sentence":             {"Phones are ubiquitous."},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"state":"feedback"`)
	assert.Contains(t, body, `"score":8.5`)
}

func TestSubmitJSONStatuses(t *testing.T) {
	tests := []struct {
		name      string
		failCheck bool
		sentence  string
		want      int
		wantBody  string
	}{
		{"empty sentence", false, "   ", http.StatusBadRequest, `"state":"ready"`},
		{"backend rejects", true, "Phones are everywhere", http.StatusBadGateway, `"error":"Validation failed: Sentence does not use the word"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			api.validateFails.Store(tt.failCheck)
			app := newTestApp(t, api)
			_, page := app.get(t, "/")

			status, body := app.postJSON(t, "/practice/submit", url.Values{
				security.CSRFFieldName: {csrfToken(t, page)},
				"sentence":             {tt.sentence},
			})
			assert.Equal(t, tt.want, status)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func TestNextJSONWordFetchFailure(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")
	token := csrfToken(t, page)

	app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {token},
		"sentence":             {"Phones are ubiquitous."},
	})
	app.api.wordFails.Store(true)

	status, body := app.postJSON(t, "/practice/next", url.Values{security.CSRFFieldName: {token}})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, `"state":"error"`)
	assert.Contains(t, body, `"error":"Failed to fetch word"`)
}

func TestSubmitLongSentenceReachesBackend(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})
	_, page := app.get(t, "/")

	long := strings.TrimSpace(strings.Repeat("ubiquitous ", 80))
	_, body := app.post(t, "/practice/submit", url.Values{
		security.CSRFFieldName: {csrfToken(t, page)},
		"sentence":             {long},
	})
	assert.Equal(t, int32(1), app.api.validateCalls.Load())
	assert.Contains(t, body, `id="score">8.5<`)
	assert.NotContains(t, body, "maxlength")
}

func TestDashboardPage(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	status, body := app.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, "Total Practices")
	assert.Contains(t, body, `<p class="value">12</p>`)
	assert.Contains(t, body, `<p class="value">7.3</p>`)
	assert.Contains(t, body, `<p class="value">9</p>`)

	assert.Contains(t, body, `data-level="Beginner" data-count="5"`)
	assert.Contains(t, body, `data-level="Intermediate" data-count="4"`)
	assert.Contains(t, body, `data-level="Advanced" data-count="3"`)

	assert.Contains(t, body, "Phones are ubiquitous.")
	assert.Contains(t, body, "May 1, 2024 10:30 AM")
}

func TestDashboardEmptyHistory(t *testing.T) {
	app := newTestApp(t, &fakeAPI{history: `[]`})

	status, body := app.get(t, "/dashboard/history")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No recent history. Start practicing!")
	assert.NotContains(t, body, "<html")
}

func TestDashboardHistoryWithBadTimestamp(t *testing.T) {
	app := newTestApp(t, &fakeAPI{history: `[
		{"id":1,"word":"ubiquitous","user_sentence":"Phones are ubiquitous.","score":8.5,"practiced_at":"2024-05-01T10:30:00"},
		{"id":2,"word":"ephemeral","user_sentence":"Fame is ephemeral.","score":6,"practiced_at":"2024-05-01T10:30"}
	]`})

	status, body := app.get(t, "/dashboard/history")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Phones are ubiquitous.")
	assert.Contains(t, body, "May 1, 2024 10:30 AM")
	assert.Contains(t, body, "Fame is ephemeral.")
	assert.NotContains(t, body, "No recent history")
}

func TestHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	status, body := app.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	status, body = app.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "http_requests_total")
}

func TestUnknownPathIsNotFound(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	status, _ := app.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, status)
}
