package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct{ snapshot Snapshot }

func (f fakeProbe) Health() Snapshot { return f.snapshot }

func gaugeValue(t *testing.T, reg *Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.Metric, 1)
			return mf.Metric[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

func TestRegistry_ExposesSnapshotAsGauges(t *testing.T) {
	probe := fakeProbe{snapshot: Snapshot{
		ProducerHeartbeat: 111, ConsumerHeartbeat: 222, QueueDepth: 5, DroppedFrames: 3, Mode: "binary",
	}}
	reg := NewRegistry(probe)

	assert.Equal(t, float64(111), gaugeValue(t, reg, "adcp_ingest_producer_heartbeat_unix_nanos"))
	assert.Equal(t, float64(222), gaugeValue(t, reg, "adcp_ingest_consumer_heartbeat_unix_nanos"))
	assert.Equal(t, float64(5), gaugeValue(t, reg, "adcp_ingest_queue_depth"))
	assert.Equal(t, float64(3), gaugeValue(t, reg, "adcp_ingest_dropped_frames_total"))
	assert.Equal(t, float64(1), gaugeValue(t, reg, "adcp_ingest_binary_mode"))
}

func TestRegistry_ReflectsModeChanges(t *testing.T) {
	probe := &mutableProbe{snapshot: Snapshot{Mode: "ascii"}}
	reg := NewRegistry(probe)
	assert.Equal(t, float64(0), gaugeValue(t, reg, "adcp_ingest_binary_mode"))

	probe.snapshot.Mode = "binary"
	assert.Equal(t, float64(1), gaugeValue(t, reg, "adcp_ingest_binary_mode"))
}

type mutableProbe struct{ snapshot Snapshot }

func (p *mutableProbe) Health() Snapshot { return p.snapshot }

func TestIsStale(t *testing.T) {
	now := time.Unix(1000, 0)
	assert.True(t, IsStale(0, now))
	fresh := now.Add(-time.Second).UnixNano()
	assert.False(t, IsStale(fresh, now))
	old := now.Add(-time.Minute).UnixNano()
	assert.True(t, IsStale(old, now))
}
