package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pokeatlas/pokedex-api/pkg/api/handler"
	"github.com/pokeatlas/pokedex-api/pkg/api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPokemonBody = `{
	"count": 2,
	"next": null,
	"previous": null,
	"results": [
		{"url": "https://pokeapi.co/api/v2/pokemon/1/", "name": "bulbasaur"},
		{"url": "https://pokeapi.co/api/v2/pokemon/2/", "name": "ivysaur"}
	]
}`

const emptyPageBody = `{"count": 0, "next": null, "previous": null, "results": []}`

func newTestRouter(t *testing.T, upstream http.HandlerFunc) http.Handler {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	svc, err := services.NewPokedexService(srv.URL + "/")
	require.NoError(t, err)

	return NewRouter("1.0.0", handler.NewPokemonController(svc))
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func jsonUpstream(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestListPokemon_OK(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(twoPokemonBody))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"bulbasaur"},{"id":2,"name":"ivysaur"}]`, w.Body.String())
	assert.Equal(t, "1.0.0", w.Header().Get("API-Version"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListPokemon_DefaultPagination(t *testing.T) {
	var gotLimit, gotOffset string
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotOffset = r.URL.Query().Get("offset")
		w.Write([]byte(emptyPageBody))
	})

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20", gotLimit)
	assert.Equal(t, "0", gotOffset)
}

func TestListPokemon_ExplicitPagination(t *testing.T) {
	var gotLimit, gotOffset string
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotOffset = r.URL.Query().Get("offset")
		w.Write([]byte(emptyPageBody))
	})

	w := doGet(router, "/api/pokemon?limit=5&offset=100")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", gotLimit)
	assert.Equal(t, "100", gotOffset)
}

func TestListPokemon_EmptyPage(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListPokemon_UpstreamStatusError(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("API-Version"))
}

func TestListPokemon_UpstreamDecodeError(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(`<html>definitely not json</html>`))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListPokemon_MalformedRecordURL(t *testing.T) {
	// One bad record fails the whole batch, even though the other is valid.
	router := newTestRouter(t, jsonUpstream(`{
		"count": 2,
		"next": null,
		"previous": null,
		"results": [
			{"url": "https://pokeapi.co/api/v2/pokemon/1/", "name": "bulbasaur"},
			{"url": "not a url", "name": "mewtwo"}
		]
	}`))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListPokemon_NonNumericRecordID(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(`{
		"count": 1,
		"next": null,
		"previous": null,
		"results": [
			{"url": "https://pokeapi.co/api/v2/pokemon/abc", "name": "missingno"}
		]
	}`))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListPokemon_ReferenceWithoutTrailingSlash(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(`{
		"count": 1,
		"next": null,
		"previous": null,
		"results": [
			{"url": "https://pokeapi.co/api/v2/pokemon/25", "name": "pikachu"}
		]
	}`))

	w := doGet(router, "/api/pokemon")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":25,"name":"pikachu"}]`, w.Body.String())
}

func TestListPokemon_BadQueryParam(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/api/pokemon?limit=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
	assert.Contains(t, w.Body.String(), "Bad Request")
}

func TestListPokemon_Idempotent(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(twoPokemonBody))

	first := doGet(router, "/api/pokemon?limit=2&offset=0")
	second := doGet(router, "/api/pokemon?limit=2&offset=0")

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/openapi.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "listPokemon")
	assert.Contains(t, w.Body.String(), "/api/pokemon")
}

func TestDocsPage(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/openapi.json")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	// Generate at least one upstream request so the counters exist.
	doGet(router, "/api/pokemon")

	w := doGet(router, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pokeapi_request_duration_seconds")
	assert.Contains(t, w.Body.String(), "pokeapi_requests_total")
}

func TestNoRoute(t *testing.T) {
	router := newTestRouter(t, jsonUpstream(emptyPageBody))

	w := doGet(router, "/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}
