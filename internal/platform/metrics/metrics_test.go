package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gathered(t *testing.T, reg *prometheus.Registry, name string) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetValue())
			}
			key := strings.Join(labels, "/")
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestSync_RecordsMutationsAndPending(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	s, err := NewSync(reg)
	require.NoError(t, err)

	s.ObserveMutation("employees", coordinator.OpCreate, coordinator.OutcomeConfirmed, 20*time.Millisecond)
	s.ObserveMutation("employees", coordinator.OpCreate, coordinator.OutcomeConfirmed, 30*time.Millisecond)
	s.ObserveMutation("employees", coordinator.OpUpdate, coordinator.OutcomeRolledBack, time.Second)
	s.SetPending("employees", 3)
	s.SetPending("employees", 1)
	s.IncReloadFailure("companies")

	mutations := gathered(t, reg, "console_sync_mutations_total")
	assert.Equal(t, 2.0, mutations["employees/create/confirmed"])
	assert.Equal(t, 1.0, mutations["employees/update/rolled_back"])

	latency := gathered(t, reg, "console_sync_mutation_duration_seconds")
	assert.Equal(t, 2.0, latency["employees/create"])

	assert.Equal(t, 1.0, gathered(t, reg, "console_sync_pending_mutations")["employees"])
	assert.Equal(t, 1.0, gathered(t, reg, "console_sync_reload_failures_total")["companies"])
}

func TestNewSync_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewSync(reg)
	require.NoError(t, err)

	_, err = NewSync(reg)
	require.Error(t, err)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	s, err := NewSync(reg)
	require.NoError(t, err)
	s.IncReloadFailure("locations")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `console_sync_reload_failures_total{collection="locations"} 1`)
}
