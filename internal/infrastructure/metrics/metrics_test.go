package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewWithRegistryRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegistry(registry)

	if m.EntriesRecorded == nil || m.HTTPRequests == nil || m.DBQueries == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.EntriesRecorded.WithLabelValues("trade_profit").Inc()
	m.WalletsProvisioned.WithLabelValues("free").Inc()
	m.VerifyRuns.WithLabelValues("consistent").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewWithRegistrySeparateRegistries(t *testing.T) {
	// Two registries must not conflict on metric names.
	first := NewWithRegistry(prometheus.NewRegistry())
	second := NewWithRegistry(prometheus.NewRegistry())

	if first == second {
		t.Fatal("expected distinct metric sets")
	}
}
