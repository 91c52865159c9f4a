package client

import (
	"fmt"
	"sync"
	"time"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"
	"pocket_wallet/internal/infrastructure/configloader"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// evmClientProvider implements port.BlockchainClientProvider. Clients are
// cached per chain key so switching chains back and forth does not redial.
type evmClientProvider struct {
	clients        map[string]port.BlockchainClient
	mu             sync.Mutex
	logger         *zap.Logger
	connectTimeout time.Duration
	rpcCallTimeout time.Duration
	confirmTimeout time.Duration
	rateLimit      rate.Limit
	burst          int
}

// NewEVMClientProvider creates a provider with timeouts and the per-chain
// RPC rate limit taken from config.
func NewEVMClientProvider(cfg *configloader.Config, logger *zap.Logger) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:        make(map[string]port.BlockchainClient),
		logger:         logger.Named("EVMClientProvider"),
		connectTimeout: time.Duration(cfg.RPC.ConnectTimeoutSeconds) * time.Second,
		rpcCallTimeout: time.Duration(cfg.RPC.CallTimeoutSeconds) * time.Second,
		confirmTimeout: time.Duration(cfg.RPC.ConfirmTimeoutSeconds) * time.Second,
		rateLimit:      rate.Limit(cfg.RPC.RateLimit),
		burst:          cfg.RPC.BurstLimit,
	}
}

// GetClient retrieves the blockchain client for the given chain descriptor,
// dialing and caching it on first use.
func (p *evmClientProvider) GetClient(desc entity.ChainDescriptor) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[desc.Key]; exists {
		return client, nil
	}

	p.logger.Info("Creating new EVM client", zap.String("chain", desc.Name), zap.String("chainKey", desc.Key))
	limiter := rate.NewLimiter(p.rateLimit, p.burst)
	newClient, err := NewEVMClient(desc, limiter, p.logger, p.connectTimeout, p.rpcCallTimeout, p.confirmTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", zap.String("chain", desc.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", desc.Name, err)
	}

	p.clients[desc.Key] = newClient
	return newClient, nil
}
