package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"
	"pocket_wallet/internal/infrastructure/hdkey"
)

// sessionService implements port.WalletSession. It owns the active wallet
// state (address, selected chain, last snapshot) and coordinates the data
// client, the blockchain clients and the gas poller around it.
type sessionService struct {
	registry     port.ChainRegistry
	provider     port.BlockchainClientProvider
	dataClient   port.WalletDataClient
	vault        port.PhraseVault
	merger       *HistoryMerger
	networth     *NetworthCalculator
	poller       *GasPoller
	logger       port.Logger
	refreshDelay time.Duration
	gasLimit     uint64

	mu       sync.RWMutex
	open     bool
	address  string
	chain    entity.ChainDescriptor
	snapshot *entity.PortfolioSnapshot

	// sendMu serializes transfer submissions. Parallel sends from one
	// account race on the nonce and one of them would be dropped.
	sendMu sync.Mutex
}

// NewWalletSession wires up the session service. The first registry entry is
// the initial chain.
func NewWalletSession(
	registry port.ChainRegistry,
	provider port.BlockchainClientProvider,
	dataClient port.WalletDataClient,
	vault port.PhraseVault,
	merger *HistoryMerger,
	networth *NetworthCalculator,
	poller *GasPoller,
	logger port.Logger,
	refreshDelay time.Duration,
	gasLimit uint64,
) port.WalletSession {
	s := &sessionService{
		registry:     registry,
		provider:     provider,
		dataClient:   dataClient,
		vault:        vault,
		merger:       merger,
		networth:     networth,
		poller:       poller,
		logger:       logger,
		refreshDelay: refreshDelay,
		gasLimit:     gasLimit,
	}
	if chains := registry.All(); len(chains) > 0 {
		s.chain = chains[0]
	}
	return s
}

func (s *sessionService) Open(seedPhrase string) (string, error) {
	if err := hdkey.ValidatePhrase(seedPhrase); err != nil {
		return "", err
	}
	derived, err := hdkey.DeriveAddress(seedPhrase)
	if err != nil {
		return "", err
	}
	address := derived.Hex()

	s.vault.Store(seedPhrase)

	s.mu.Lock()
	s.open = true
	s.address = address
	s.snapshot = nil
	chain := s.chain
	s.mu.Unlock()

	// Close pauses the poller; reopening must undo that before tracking.
	s.poller.Resume()
	s.poller.Track(chain)
	s.logger.Info("Wallet session opened", "address", address, "chain", chain.Key)
	return address, nil
}

func (s *sessionService) Resume() (string, bool) {
	phrase, ok := s.vault.Get()
	if !ok {
		return "", false
	}
	address, err := s.Open(phrase)
	if err != nil {
		// A phrase that no longer validates is dead weight.
		s.vault.Clear()
		s.logger.Warn("Stored seed phrase failed validation, vault cleared", "error", err)
		return "", false
	}
	return address, true
}

func (s *sessionService) Close() {
	s.vault.Clear()

	s.mu.Lock()
	s.open = false
	s.address = ""
	s.snapshot = nil
	s.mu.Unlock()

	s.poller.Pause()
	s.logger.Info("Wallet session closed")
}

func (s *sessionService) Address() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address, s.open
}

func (s *sessionService) SelectChain(chainKey string) error {
	desc, err := s.registry.Resolve(chainKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.chain = desc
	s.snapshot = nil
	s.mu.Unlock()

	s.poller.Track(desc)
	s.logger.Info("Chain selected", "chain", desc.Key, "name", desc.Name)
	return nil
}

func (s *sessionService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	open, address, chain := s.open, s.address, s.chain
	s.mu.RUnlock()
	if !open {
		return entity.ErrNoSession
	}

	data, err := s.dataClient.FetchWalletData(ctx, address, chain.Key)
	if err != nil {
		s.logger.Error("Wallet data fetch failed", "address", address, "chain", chain.Key, "error", err)
		return fmt.Errorf("%w: %v", entity.ErrFetchFailed, err)
	}

	tokens := s.networth.PortfolioPercentage(data.Tokens)
	history := s.merger.Merge(data.TokenTransfers, data.NftTransfers, data.Nfts)

	snapshot := &entity.PortfolioSnapshot{
		Address:     address,
		ChainKey:    chain.Key,
		Tokens:      tokens,
		Nfts:        data.Nfts,
		History:     history,
		HistoryDays: s.merger.GroupByDay(history),
		Networth:    s.networth.Summarize(tokens),
	}

	s.mu.Lock()
	// The session may have moved on while the fetch was in flight; a stale
	// snapshot must not overwrite the current chain's state.
	if s.open && s.address == address && s.chain.Key == chain.Key {
		s.snapshot = snapshot
	}
	s.mu.Unlock()

	s.logger.Debug("Snapshot refreshed",
		"address", address, "chain", chain.Key,
		"tokens", len(tokens), "history", len(history))
	return nil
}

func (s *sessionService) Snapshot() (*entity.PortfolioSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

func (s *sessionService) Send(ctx context.Context, out entity.OutgoingTransfer) (entity.TransferReceipt, error) {
	phrase, ok := s.vault.Get()
	if !ok {
		return entity.TransferReceipt{}, entity.ErrNoSession
	}

	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.poller.Pause()
	defer s.resumePollerIfOpen()

	client, err := s.provider.GetClient(chain)
	if err != nil {
		return entity.TransferReceipt{}, fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	receipt, err := client.Send(ctx, entity.TransferRequest{
		SeedPhrase: phrase,
		Recipient:  out.Recipient,
		Asset:      out.Asset,
		Amount:     out.Amount,
	})
	if err != nil {
		return receipt, err
	}

	// The data provider lags the chain by a few seconds; refetching right
	// away would show the pre-transfer state.
	time.AfterFunc(s.refreshDelay, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if refreshErr := s.Refresh(refreshCtx); refreshErr != nil {
			s.logger.Warn("Post-transfer refresh failed", "error", refreshErr)
		}
	})

	return receipt, nil
}

// resumePollerIfOpen restarts gas polling after a send unless the session was
// closed while the transfer was in flight; Close's pause must stick.
func (s *sessionService) resumePollerIfOpen() {
	s.mu.RLock()
	open := s.open
	s.mu.RUnlock()
	if open {
		s.poller.Resume()
	}
}

func (s *sessionService) EstimateFee(ctx context.Context, gasLimit uint64) string {
	if gasLimit == 0 {
		gasLimit = s.gasLimit
	}

	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	if gasLimit == s.gasLimit {
		if fee, found := s.poller.Latest(chain.Key); found {
			return fee
		}
	}

	client, err := s.provider.GetClient(chain)
	if err != nil {
		return "0"
	}
	return client.EstimateFee(ctx, gasLimit)
}
