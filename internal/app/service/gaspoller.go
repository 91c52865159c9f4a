package service

import (
	"context"
	"sync"
	"time"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

// GasPoller keeps a fresh fee estimate for the tracked chain by polling the
// chain's RPC on a fixed interval. Estimates live in a TTL cache so a dead
// poller cannot serve stale numbers forever. Polling pauses while a transfer
// is in flight to keep the RPC rate budget for the submission path.
type GasPoller struct {
	provider port.BlockchainClientProvider
	logger   port.Logger
	gasLimit uint64
	interval time.Duration
	cache    *gocache.Cache

	mu     sync.Mutex
	target *entity.ChainDescriptor
	paused bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewGasPoller(provider port.BlockchainClientProvider, logger port.Logger, gasLimit uint64, interval time.Duration) *GasPoller {
	return &GasPoller{
		provider: provider,
		logger:   logger,
		gasLimit: gasLimit,
		interval: interval,
		cache:    gocache.New(3*interval, 6*interval),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the polling loop. Call once.
func (p *GasPoller) Start() {
	go p.loop()
}

func (p *GasPoller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// Track points the poller at a chain and primes the cache immediately so a
// chain switch does not wait a full interval for the first estimate.
func (p *GasPoller) Track(desc entity.ChainDescriptor) {
	p.mu.Lock()
	p.target = &desc
	p.mu.Unlock()
	p.poll()
}

// Pause suspends polling; Resume re-enables it.
func (p *GasPoller) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

func (p *GasPoller) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
}

// Latest returns the freshest cached estimate for a chain key, if any.
func (p *GasPoller) Latest(chainKey string) (string, bool) {
	if fee, found := p.cache.Get(chainKey); found {
		return fee.(string), true
	}
	return "", false
}

// Stop terminates the polling loop.
func (p *GasPoller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *GasPoller) poll() {
	p.mu.Lock()
	if p.paused || p.target == nil {
		p.mu.Unlock()
		return
	}
	desc := *p.target
	p.mu.Unlock()

	client, err := p.provider.GetClient(desc)
	if err != nil {
		p.logger.Warn("Gas poll skipped, client unavailable", "chain", desc.Key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	fee := client.EstimateFee(ctx, p.gasLimit)
	p.cache.Set(desc.Key, fee, gocache.DefaultExpiration)
	p.logger.Debug("Gas estimate refreshed", "chain", desc.Key, "fee", fee)
}
