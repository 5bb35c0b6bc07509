package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.MaterialsAdded.Inc()

	if got := testutil.ToFloat64(m.MaterialsAdded); got != 1 {
		t.Fatalf("materials added = %v, want 1", got)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 4 {
		t.Fatalf("GatherAndCount = %d, %v; want 4 series", n, err)
	}
}

func TestNewWithoutRegistry(t *testing.T) {
	m := New(nil)
	m.LinesCascaded.Add(3)

	if got := testutil.ToFloat64(m.LinesCascaded); got != 3 {
		t.Fatalf("lines cascaded = %v, want 3", got)
	}
}
