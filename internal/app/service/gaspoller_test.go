package service

import (
	"testing"
	"time"

	"pocket_wallet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestGasPollerTrackPrimesCache(t *testing.T) {
	desc := entity.ChainDescriptor{Key: "0x1", NativeDecimals: 18}
	provider := &fakeProvider{client: &fakeClient{desc: desc, fee: "0.00042"}}
	poller := NewGasPoller(provider, nopLogger{}, 21000, time.Hour)

	_, found := poller.Latest("0x1")
	assert.False(t, found)

	poller.Track(desc)

	fee, found := poller.Latest("0x1")
	assert.True(t, found)
	assert.Equal(t, "0.00042", fee)
}

func TestGasPollerPause(t *testing.T) {
	desc := entity.ChainDescriptor{Key: "0x1", NativeDecimals: 18}
	client := &fakeClient{desc: desc, fee: "0.00042"}
	poller := NewGasPoller(&fakeProvider{client: client}, nopLogger{}, 21000, time.Hour)

	poller.Pause()
	poller.Track(desc)

	_, found := poller.Latest("0x1")
	assert.False(t, found, "a paused poller must not touch the RPC")

	poller.Resume()
	poller.Track(desc)
	_, found = poller.Latest("0x1")
	assert.True(t, found)
}

func TestGasPollerStop(t *testing.T) {
	poller := NewGasPoller(&fakeProvider{client: &fakeClient{}}, nopLogger{}, 21000, time.Millisecond)
	poller.Start()
	poller.Stop()
	// Stop twice must not panic.
	poller.Stop()
}
