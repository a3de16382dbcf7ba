package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGathers(t *testing.T) {
	Ratio.Set(0.5)
	CasesExtracted.WithLabelValues("closed").Add(3)

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	var ratio float64
	for _, f := range families {
		names[f.GetName()] = true
		if f.GetName() == "fcr_ratio" {
			ratio = f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.True(t, names["fcr_ratio"])
	assert.True(t, names["fcr_cases_extracted_total"])
	assert.Equal(t, 0.5, ratio)
}

func TestPush(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, Push(server.URL, "casereport_fcr"))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/casereport_fcr", path)
}
