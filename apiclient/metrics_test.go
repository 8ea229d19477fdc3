package apiclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegisteredAndCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := apiclient.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customers/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, customer{ID: 1})
	})
	mux.HandleFunc("GET /api/customers/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no such customer"})
	})
	f := setupTestFixture(t, mux, freshToken, apiclient.WithMetrics(metrics))

	require.NoError(t, f.client.Get(context.Background(), "/customers/1", nil))
	require.Error(t, f.client.Get(context.Background(), "/customers/2", nil))

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "404")))

	count, err := testutil.GatherAndCount(reg, "clinic_client_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
