package router

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gteKit/internal/dex"
)

// Resolver determines the AMM router address, either from an explicit override
// or by asking the chain's router manager contract once.
type Resolver struct {
	reader   dex.ContractReader
	manager  common.Address
	override *common.Address
	logger   *zap.Logger

	cached atomic.Pointer[common.Address]
	group  singleflight.Group
}

// NewResolver creates a resolver. A non-nil override short-circuits all reads.
func NewResolver(reader dex.ContractReader, manager common.Address, override *common.Address, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{reader: reader, manager: manager, logger: logger}
	if override != nil {
		addr := *override
		r.override = &addr
	}
	return r
}

// Resolve returns the router address. Successful reads are cached for the
// lifetime of the resolver; failed reads are not.
func (r *Resolver) Resolve(ctx context.Context) (common.Address, error) {
	if r.override != nil {
		return *r.override, nil
	}
	if addr := r.cached.Load(); addr != nil {
		return *addr, nil
	}

	// The shared read is detached from any one caller's cancellation; each
	// caller still stops waiting when its own context ends.
	readCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan("router", func() (interface{}, error) {
		if addr := r.cached.Load(); addr != nil {
			return *addr, nil
		}
		addr, err := r.read(readCtx)
		if err != nil {
			return common.Address{}, err
		}
		r.cached.Store(&addr)
		r.logger.Debug("resolved router", zap.String("manager", r.manager.Hex()), zap.String("router", addr.Hex()))
		return addr, nil
	})

	select {
	case <-ctx.Done():
		return common.Address{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return common.Address{}, res.Err
		}
		return res.Val.(common.Address), nil
	}
}

func (r *Resolver) read(ctx context.Context) (common.Address, error) {
	if r.reader == nil {
		return common.Address{}, fmt.Errorf("contract reader is nil")
	}
	managerABI, err := dex.RouterManagerABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("load router manager abi: %w", err)
	}
	values, err := r.reader.ReadContract(ctx, r.manager, managerABI, dex.MethodUniV2Router)
	if err != nil {
		return common.Address{}, err
	}
	if len(values) == 0 {
		return common.Address{}, fmt.Errorf("%s returned no values", dex.MethodUniV2Router)
	}
	return dex.AsAddress(values[0])
}
