package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("capdemo", "GET", "/healthz", 200, 12*time.Millisecond)
	RecordNotification("age")
	RecordListenerFailure("age", "audit")
	RecordPropertyWrite("observable", OutcomeOK)
}

func TestRecordDelegateInvocationOutcomes(t *testing.T) {
	ok := delegateInvocations.WithLabelValues("metrics-test", "add", RouteOverride, OutcomeOK)
	failed := delegateInvocations.WithLabelValues("metrics-test", "add", RouteOverride, OutcomeError)
	beforeOK := testutil.ToFloat64(ok)
	beforeFailed := testutil.ToFloat64(failed)

	RecordDelegateInvocation("metrics-test", "add", RouteOverride, nil)
	RecordDelegateInvocation("metrics-test", "add", RouteOverride, nil)
	RecordDelegateInvocation("metrics-test", "add", RouteOverride, errors.New("boom"))

	if got := testutil.ToFloat64(ok) - beforeOK; got != 2 {
		t.Fatalf("ok invocations: got %v want 2", got)
	}
	if got := testutil.ToFloat64(failed) - beforeFailed; got != 1 {
		t.Fatalf("failed invocations: got %v want 1", got)
	}
}

func TestRouterServesHealthStatusAndMetrics(t *testing.T) {
	r := NewRouter("capdemo-test", zerolog.Nop(), func() any {
		return map[string]int{"listeners": 3}
	})

	cases := []struct {
		path string
		want string
	}{
		{path: "/healthz", want: `"status":"ok"`},
		{path: "/status", want: `"listeners":3`},
		{path: "/metrics", want: "capkit_http_requests_total"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.path, rec.Code)
		}
		body, _ := io.ReadAll(rec.Body)
		if !strings.Contains(string(body), tc.want) {
			t.Fatalf("%s: body %q missing %q", tc.path, body, tc.want)
		}
	}
}

func TestRouterStatusWithoutProvider(t *testing.T) {
	r := NewRouter("capdemo-test", zerolog.Nop(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without status provider, got %d", rec.Code)
	}
}
