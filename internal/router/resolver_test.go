package router

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	managerAddr = common.HexToAddress("0x0000000000000000000000000000000000000def")
	routerAddr  = common.HexToAddress("0x86470efcEa37e50F94E74649463b737C87ada367")
)

type countingReader struct {
	reads atomic.Int32
	fail  atomic.Int32
	delay time.Duration
}

func (c *countingReader) ReadContract(_ context.Context, contract common.Address, _ abi.ABI, method string, _ ...interface{}) ([]interface{}, error) {
	c.reads.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.fail.Load() > 0 {
		c.fail.Add(-1)
		return nil, errors.New("rpc unavailable")
	}
	if contract != managerAddr || method != "uniV2Router" {
		return nil, errors.New("unexpected call")
	}
	return []interface{}{routerAddr}, nil
}

func TestResolveOverrideSkipsReads(t *testing.T) {
	reader := &countingReader{}
	override := common.HexToAddress("0x0000000000000000000000000000000000000aaa")
	r := NewResolver(reader, managerAddr, &override, nil)

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, override, got)
	assert.Equal(t, int32(0), reader.reads.Load())
}

func TestResolveCachesResult(t *testing.T) {
	reader := &countingReader{}
	r := NewResolver(reader, managerAddr, nil, nil)

	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, routerAddr, got)
	}
	assert.Equal(t, int32(1), reader.reads.Load())
}

func TestResolveRetriesAfterFailure(t *testing.T) {
	reader := &countingReader{}
	reader.fail.Store(1)
	r := NewResolver(reader, managerAddr, nil, nil)

	_, err := r.Resolve(context.Background())
	require.Error(t, err)

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, routerAddr, got)
	assert.Equal(t, int32(2), reader.reads.Load())
}

func TestResolveConcurrentCallersShareRead(t *testing.T) {
	reader := &countingReader{delay: 50 * time.Millisecond}
	r := NewResolver(reader, managerAddr, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Resolve(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, routerAddr, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), reader.reads.Load())
}

func TestResolveCancelledCallerDoesNotFailOthers(t *testing.T) {
	reader := &countingReader{delay: 80 * time.Millisecond}
	r := NewResolver(reader, managerAddr, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx)
		firstErr <- err
	}()
	time.Sleep(10 * time.Millisecond)

	secondDone := make(chan struct{})
	var got common.Address
	var secondErr error
	go func() {
		defer close(secondDone)
		got, secondErr = r.Resolve(context.Background())
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	<-secondDone
	require.NoError(t, secondErr)
	assert.Equal(t, routerAddr, got)
	assert.Equal(t, int32(1), reader.reads.Load())

	cached, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, routerAddr, cached)
	assert.Equal(t, int32(1), reader.reads.Load())
}
