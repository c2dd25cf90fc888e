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

	"petclinic-microservices/internal/adapters/services/customers"
	"petclinic-microservices/internal/adapters/services/visits"
	"petclinic-microservices/internal/domain/gateway"
	"petclinic-microservices/internal/platform/circuitbreaker"
	"petclinic-microservices/internal/platform/logger"
	"petclinic-microservices/internal/platform/metrics"
	"petclinic-microservices/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const george6 = `{
  "id": 6, "firstName": "George", "lastName": "Franklin",
  "address": "110 W. Liberty St.", "city": "Madison", "telephone": "6085551023",
  "pets": [
    {"id": 7, "name": "Leo", "birthDate": "2010-09-07", "type": {"id": 1, "name": "cat"}},
    {"id": 8, "name": "Basil", "birthDate": "2012-08-06", "type": {"id": 6, "name": "hamster"}}
  ]
}`

const visitsA = `{"items": [
  {"id": 1, "petId": 7, "date": "2020-01-01", "description": "rabies"},
  {"id": 2, "petId": 7, "date": "2020-06-01", "description": "checkup"},
  {"id": 3, "petId": 8, "date": "2020-03-01", "description": "claws"}
]}`

// upstream es un servicio fake que cuenta llamadas.
type upstream struct {
	*httptest.Server
	calls atomic.Int32
}

func newUpstream(t *testing.T, h http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

type gatewayEnv struct {
	URL      string
	breakers *circuitbreaker.Factory
}

func newGateway(t *testing.T, customersURL, visitsURL string, timeout time.Duration) gatewayEnv {
	t.Helper()

	cust, err := customers.NewClient(customers.Config{BaseURL: customersURL, Timeout: timeout})
	require.NoError(t, err)
	vis, err := visits.NewClient(visits.Config{BaseURL: visitsURL, Timeout: timeout})
	require.NoError(t, err)

	breakers := circuitbreaker.NewFactory(logger.NewNop(), circuitbreaker.Config{
		FailureRateThreshold:          50,
		SlidingWindow:                 time.Minute,
		MinimumNumberOfCalls:          3,
		WaitDurationInOpenState:       time.Hour,
		PermittedCallsInHalfOpenState: 1,
	})

	ts := httptest.NewServer(router.NewGatewayRouter(router.GatewayOptions{
		Customers: cust,
		Visits:    vis,
		Breakers:  breakers,
		Metrics:   metrics.New(),
	}))
	t.Cleanup(ts.Close)

	return gatewayEnv{URL: ts.URL, breakers: breakers}
}

func getOwner(t *testing.T, baseURL string, id string) (int, gateway.OwnerDetails, []byte) {
	t.Helper()
	st, body := doReq(t, baseURL, http.MethodGet, "/api/gateway/owners/"+id, nil)

	var out gateway.OwnerDetails
	if st == http.StatusOK {
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode owner: %v body=%s", err, string(body))
		}
	}
	return st, out, body
}

func TestGateway_ScenarioA_HappyPath(t *testing.T) {
	cust := newUpstream(t, jsonBody(george6))
	vis := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("petIds"); got != "7,8" {
			t.Errorf("expected petIds=7,8, got %q", got)
		}
		jsonBody(visitsA)(w, r)
	})
	env := newGateway(t, cust.URL, vis.URL, time.Second)

	st, owner, body := getOwner(t, env.URL, "6")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	require.Len(t, owner.Pets, 2)
	assert.Equal(t, []int{1, 2}, ids(owner.Pets[0].Visits))
	assert.Equal(t, []int{3}, ids(owner.Pets[1].Visits))
	assert.Equal(t, "2020-06-01", owner.Pets[0].Visits[1].Date.String())
	assert.Equal(t, "George", owner.FirstName)
}

func TestGateway_ScenarioB_NoPets(t *testing.T) {
	cust := newUpstream(t, jsonBody(`{"id":6,"firstName":"George","lastName":"Franklin","address":"a","city":"c","telephone":"1","pets":[]}`))
	vis := newUpstream(t, jsonBody(visitsA))
	env := newGateway(t, cust.URL, vis.URL, time.Second)

	st, _, body := getOwner(t, env.URL, "6")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	assert.Contains(t, string(body), `"pets":[]`)
	assert.Equal(t, int32(0), vis.calls.Load())
}

func TestGateway_ScenarioC_VisitsTimeout(t *testing.T) {
	cust := newUpstream(t, jsonBody(george6))
	vis := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	env := newGateway(t, cust.URL, vis.URL, 150*time.Millisecond)

	st, owner, body := getOwner(t, env.URL, "6")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	for _, p := range owner.Pets {
		assert.Empty(t, p.Visits)
	}
	assert.Contains(t, string(body), `"visits":[]`)

	b := env.breakers.Create(gateway.BreakerName)
	assert.Equal(t, circuitbreaker.StateClosed, b.State())
	assert.Equal(t, uint32(1), b.Counts().TotalFailures)
}

func TestGateway_ScenarioD_BreakerOpen(t *testing.T) {
	cust := newUpstream(t, jsonBody(george6))
	vis := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	env := newGateway(t, cust.URL, vis.URL, time.Second)

	for i := 0; i < 3; i++ {
		st, _, body := getOwner(t, env.URL, "6")
		if st != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d body=%s", i, st, string(body))
		}
	}
	require.Equal(t, circuitbreaker.StateOpen, env.breakers.Create(gateway.BreakerName).State())
	before := vis.calls.Load()

	st, owner, _ := getOwner(t, env.URL, "6")
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, before, vis.calls.Load(), "visits upstream must not be called while open")
	for _, p := range owner.Pets {
		assert.Empty(t, p.Visits)
	}
}

func TestGateway_ScenarioE_UnknownOwner(t *testing.T) {
	cust := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	vis := newUpstream(t, jsonBody(visitsA))
	env := newGateway(t, cust.URL, vis.URL, time.Second)

	st, _, body := getOwner(t, env.URL, "6")
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", st, string(body))
	}
	assert.Equal(t, int32(0), vis.calls.Load())

	var doc gateway.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, http.StatusNotFound, doc.Status)
}

func TestGateway_ScenarioF_UnrelatedVisit(t *testing.T) {
	cust := newUpstream(t, jsonBody(`{"id":6,"firstName":"George","pets":[{"id":7,"name":"Leo","type":{"id":1,"name":"cat"}}]}`))
	vis := newUpstream(t, jsonBody(`{"items":[{"id":1,"petId":99,"date":"2020-01-01","description":"stray"}]}`))
	env := newGateway(t, cust.URL, vis.URL, time.Second)

	st, owner, body := getOwner(t, env.URL, "6")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	require.Len(t, owner.Pets, 1)
	assert.Empty(t, owner.Pets[0].Visits)
	assert.NotContains(t, string(body), "stray")
}

func TestGateway_OwnerUpstreamFailures(t *testing.T) {
	t.Run("5xx", func(t *testing.T) {
		cust := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		env := newGateway(t, cust.URL, "http://127.0.0.1:1", time.Second)

		st, _, _ := getOwner(t, env.URL, "6")
		assert.Equal(t, http.StatusBadGateway, st)
	})

	t.Run("transport", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		deadURL := dead.URL
		dead.Close()
		env := newGateway(t, deadURL, deadURL, time.Second)

		st, _, _ := getOwner(t, env.URL, "6")
		assert.Equal(t, http.StatusBadGateway, st)
	})

	t.Run("bad path", func(t *testing.T) {
		env := newGateway(t, "http://127.0.0.1:1", "http://127.0.0.1:1", time.Second)

		st, _, _ := getOwner(t, env.URL, "x")
		assert.Equal(t, http.StatusBadRequest, st)
	})
}

// Customers-service real (in-memory) detrás del gateway; visits fake.
func TestHTTP_EndToEnd_CustomersThroughGateway(t *testing.T) {
	cs := httptest.NewServer(router.NewCustomersRouter(router.CustomersOptions{}))
	defer cs.Close()

	// 1) Alta de owner
	st, body := doReq(t, cs.URL, http.MethodPost, "/owners", map[string]any{
		"firstName": "Jean",
		"lastName":  "Coleman",
		"address":   "105 N. Lake St.",
		"city":      "Monona",
		"telephone": "6085552654",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create owner, got %d body=%s", st, string(body))
	}

	// 2) Dos mascotas
	for _, name := range []string{"Samantha", "Max"} {
		st, body := doReq(t, cs.URL, http.MethodPost, "/owners/1/pets", map[string]any{
			"name":      name,
			"birthDate": "2012-09-04",
			"typeId":    1,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add pet, got %d body=%s", st, string(body))
		}
	}

	// 3) Visits fake: una visita para Max (pet 2)
	vis := newUpstream(t, jsonBody(`{"items":[{"id":1,"petId":2,"date":"2013-01-01","description":"rabies shot"}]}`))
	env := newGateway(t, cs.URL, vis.URL, time.Second)

	st, owner, body := getOwner(t, env.URL, "1")
	if st != http.StatusOK {
		t.Fatalf("expected 200 from gateway, got %d body=%s", st, string(body))
	}

	// Mascotas ordenadas por nombre: Max, Samantha
	require.Len(t, owner.Pets, 2)
	assert.Equal(t, "Max", owner.Pets[0].Name)
	assert.Equal(t, []int{1}, ids(owner.Pets[0].Visits))
	assert.Empty(t, owner.Pets[1].Visits)

	// 4) Owner inexistente => 404 de punta a punta
	st, _, _ = getOwner(t, env.URL, "99")
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_OperationalRoutes(t *testing.T) {
	m := metrics.New()
	gw := httptest.NewServer(router.NewGatewayRouter(router.GatewayOptions{Metrics: m}))
	defer gw.Close()
	cs := httptest.NewServer(router.NewCustomersRouter(router.CustomersOptions{}))
	defer cs.Close()

	for _, base := range []string{gw.URL, cs.URL} {
		st, body := doReq(t, base, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, st)
		assert.Equal(t, "ok", string(body))

		st, _ = doReq(t, base, http.MethodGet, "/swagger/doc.json", nil)
		assert.Equal(t, http.StatusOK, st)
	}

	st, body := doReq(t, gw.URL, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `petclinic_http_requests_total{method="GET",route="/health",status="200"}`)

	// Sin Metrics configurado /metrics no existe
	st, _ = doReq(t, cs.URL, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, st)

	// Recording en ambos prefijos
	st, body = doReq(t, gw.URL, http.MethodGet, "/api/gateway/saveRecording/a.undo", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "Recording saved to a.undo", string(body))

	st, body = doReq(t, cs.URL, http.MethodGet, "/owners/saveRecording/b.undo", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "Recording saved to b.undo\n", string(body))

	st, _ = doReq(t, cs.URL, http.MethodGet, "/owners/startRecording", nil)
	assert.Equal(t, http.StatusOK, st)
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func ids(vs []gateway.VisitDetails) []int {
	out := make([]int, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}
