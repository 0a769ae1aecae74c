package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/pantry/internal/log"
	"github.com/vnykmshr/pantry/pkg/ingredient"
	"github.com/vnykmshr/pantry/pkg/metrics"
	"github.com/vnykmshr/pantry/pkg/profile"
)

const cake = `["Flour","salt","baking powder","butter","eggs","milk"]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := profile.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "alice", ingredient.NewAllergenSet("eggs", "milk")))

	promReg := prometheus.NewRegistry()
	checker := ingredient.NewChecker(ingredient.WithMetrics(metrics.NewRegistry(promReg), "http"))

	server := NewHTTPServer("localhost:0", NewEndpoints(checker, store), promReg, log.NewNoOpLogger())
	testServer := httptest.NewServer(server)
	t.Cleanup(testServer.Close)
	return testServer
}

func TestServerEndpoints(t *testing.T) {
	testCases := map[string]struct {
		method             string
		path               string
		body               string
		expectedStatusCode int
		expectedBody       string
	}{
		"Given I make a request to /health": {
			method:             http.MethodGet,
			path:               "/health",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"status":"healthy"}`,
		},
		"Given I check a recipe containing an allergen": {
			method:             http.MethodPost,
			path:               "/check",
			body:               fmt.Sprintf(`{"ingredients":%s,"allergens":["eggs"]}`, cake),
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"contains":true,"matches":["eggs"]}`,
		},
		"Given I check a recipe without any allergen": {
			method:             http.MethodPost,
			path:               "/check",
			body:               `{"ingredients":["Flour","salt"],"allergens":["eggs"]}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"contains":false,"matches":[]}`,
		},
		"Given I check an empty recipe": {
			method:             http.MethodPost,
			path:               "/check",
			body:               `{"ingredients":[],"allergens":["eggs"]}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"contains":false,"matches":[]}`,
		},
		"Given I check a recipe against a stored consumer": {
			method:             http.MethodPost,
			path:               "/check",
			body:               fmt.Sprintf(`{"ingredients":%s,"consumer":"alice"}`, cake),
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"contains":true,"matches":["eggs","milk"]}`,
		},
		"Given I check a recipe against an unknown consumer": {
			method:             http.MethodPost,
			path:               "/check",
			body:               fmt.Sprintf(`{"ingredients":%s,"consumer":"nobody"}`, cake),
			expectedStatusCode: http.StatusNotFound,
		},
		"Given I check without ingredients": {
			method:             http.MethodPost,
			path:               "/check",
			body:               `{"allergens":["eggs"]}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		"Given I check without allergens or a consumer": {
			method:             http.MethodPost,
			path:               "/check",
			body:               fmt.Sprintf(`{"ingredients":%s}`, cake),
			expectedStatusCode: http.StatusBadRequest,
		},
		"Given I send a malformed check request": {
			method:             http.MethodPost,
			path:               "/check",
			body:               `{"ingredients":`,
			expectedStatusCode: http.StatusBadRequest,
		},
		"Given I list profiles": {
			method:             http.MethodGet,
			path:               "/profiles",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"consumers":["alice"]}`,
		},
		"Given I get a stored profile": {
			method:             http.MethodGet,
			path:               "/profiles/alice",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"consumer":"alice","allergens":["eggs","milk"]}`,
		},
		"Given I get an unknown profile": {
			method:             http.MethodGet,
			path:               "/profiles/nobody",
			expectedStatusCode: http.StatusNotFound,
		},
		"Given I put a profile": {
			method:             http.MethodPut,
			path:               "/profiles/bob",
			body:               `{"allergens":["soy","peanuts"]}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"consumer":"bob","allergens":["peanuts","soy"]}`,
		},
		"Given I put a profile with no allergens": {
			method:             http.MethodPut,
			path:               "/profiles/bob",
			body:               `{"allergens":[]}`,
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"consumer":"bob","allergens":[]}`,
		},
		"Given I put a profile without the allergens field": {
			method:             http.MethodPut,
			path:               "/profiles/bob",
			body:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"error":"bad request: allergens is required"}`,
		},
		"Given I delete a stored profile": {
			method:             http.MethodDelete,
			path:               "/profiles/alice",
			expectedStatusCode: http.StatusNoContent,
		},
		"Given I delete an unknown profile": {
			method:             http.MethodDelete,
			path:               "/profiles/nobody",
			expectedStatusCode: http.StatusNotFound,
		},
		"Given I make a request to /metrics": {
			method:             http.MethodGet,
			path:               "/metrics",
			expectedStatusCode: http.StatusOK,
		},
	}

	for desc, tc := range testCases {
		tc := tc
		t.Run(desc, func(t *testing.T) {
			testServer := newTestServer(t)

			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, body)
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := testServer.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			if tc.expectedBody != "" {
				b, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tc.expectedBody, string(b))
			}
		})
	}
}

func TestServerEndpoints_ErrorBody(t *testing.T) {
	testServer := newTestServer(t)

	resp, err := testServer.Client().Post(testServer.URL+"/check", "application/json",
		strings.NewReader(`{"allergens":["eggs"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "invalid list")
}

func TestServerEndpoints_RecordsMetrics(t *testing.T) {
	testServer := newTestServer(t)

	resp, err := testServer.Client().Post(testServer.URL+"/check", "application/json",
		strings.NewReader(fmt.Sprintf(`{"ingredients":%s,"allergens":["eggs"]}`, cake)))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = testServer.Client().Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `pantry_checker_checks_total{checker_name="http",result="match"} 1`)
}
