package stats_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notegate/stats"
)

func TestTracker_RecordAccumulates(t *testing.T) {
	tracker := stats.NewTracker()

	tracker.Record("/listNotes", 0, 120)
	tracker.Record("/listNotes", 0, 80)
	tracker.AddReceived(45)
	tracker.Record("/writeNote", 45, 30)

	snap := tracker.Snapshot()

	assert.Equal(t, int64(3), snap.Requests)
	assert.Equal(t, int64(230), snap.BytesSent)
	assert.Equal(t, int64(45), snap.BytesReceived)

	list := snap.Endpoints["/listNotes"]
	assert.Equal(t, int64(2), list.Requests)
	assert.Equal(t, int64(200), list.BytesSent)
	assert.Equal(t, int64(0), list.BytesReceived)

	write := snap.Endpoints["/writeNote"]
	assert.Equal(t, int64(1), write.Requests)
	assert.Equal(t, int64(30), write.BytesSent)
	assert.Equal(t, int64(45), write.BytesReceived)
}

func TestTracker_UnknownEndpointBucket(t *testing.T) {
	tracker := stats.NewTracker()

	tracker.Record("", 10, 20)

	snap := tracker.Snapshot()
	e, ok := snap.Endpoints[stats.UnknownEndpoint]
	assert.True(t, ok)
	assert.Equal(t, int64(1), e.Requests)
	assert.Equal(t, int64(10), e.BytesReceived)
	assert.Equal(t, int64(20), e.BytesSent)
}

func TestTracker_ReceivedVisibleBeforeRecord(t *testing.T) {
	tracker := stats.NewTracker()

	tracker.AddReceived(64)

	// A snapshot taken mid-request sees the incoming bytes but no
	// completed request yet.
	snap := tracker.Snapshot()
	assert.Equal(t, int64(64), snap.BytesReceived)
	assert.Equal(t, int64(0), snap.Requests)

	tracker.Record("/writeNote", 64, 10)

	snap = tracker.Snapshot()
	assert.Equal(t, int64(64), snap.BytesReceived)
	assert.Equal(t, int64(1), snap.Requests)
	assert.Equal(t, int64(64), snap.Endpoints["/writeNote"].BytesReceived)
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tracker := stats.NewTracker()
	tracker.Record("/health", 0, 5)

	snap := tracker.Snapshot()
	snap.Endpoints["/health"] = stats.EndpointCounters{Requests: 99}

	fresh := tracker.Snapshot()
	assert.Equal(t, int64(1), fresh.Endpoints["/health"].Requests)
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tracker := stats.NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.AddReceived(1)
				tracker.Record("/readNote", 1, 2)
			}
		}()
	}
	wg.Wait()

	snap := tracker.Snapshot()
	assert.Equal(t, int64(5000), snap.Requests)
	assert.Equal(t, int64(5000), snap.BytesReceived)
	assert.Equal(t, int64(10000), snap.BytesSent)
}

func TestSnapshot_ReportDerivations(t *testing.T) {
	tracker := stats.NewTracker()
	tracker.AddReceived(512)
	tracker.Record("/readNote", 512, 2*1024*1024)

	snap := tracker.Snapshot()
	report := snap.Report(snap.StartedAt.Add(1*time.Hour + 2*time.Minute + 3*time.Second))

	assert.Equal(t, int64(1), report.Uptime.Hours)
	assert.Equal(t, int64(2), report.Uptime.Minutes)
	assert.Equal(t, int64(3), report.Uptime.Seconds)

	assert.Equal(t, int64(1), report.Totals.Requests)
	assert.InDelta(t, 2.0, report.Totals.MegabytesSent, 0.001)
	assert.InDelta(t, 0.0, report.Totals.MegabytesReceived, 0.001)

	e := report.Endpoints["/readNote"]
	assert.InDelta(t, 2048.0, e.KilobytesSent, 0.001)
	assert.InDelta(t, 0.5, e.KilobytesReceived, 0.001)

	assert.Equal(t, snap.InstanceID.String(), report.InstanceID)
}

func TestSnapshot_ReportClampsNegativeUptime(t *testing.T) {
	tracker := stats.NewTracker()
	snap := tracker.Snapshot()

	report := snap.Report(snap.StartedAt.Add(-time.Minute))
	assert.Equal(t, int64(0), report.Uptime.Hours)
	assert.Equal(t, int64(0), report.Uptime.Minutes)
	assert.Equal(t, int64(0), report.Uptime.Seconds)
}
