package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "test test test test test test test test test test test junk"

const testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeRegistry struct {
	chains []entity.ChainDescriptor
}

func (r *fakeRegistry) Resolve(chainKey string) (entity.ChainDescriptor, error) {
	for _, chain := range r.chains {
		if chain.Key == chainKey {
			return chain, nil
		}
	}
	return entity.ChainDescriptor{}, entity.ErrUnsupportedChain
}

func (r *fakeRegistry) All() []entity.ChainDescriptor {
	return r.chains
}

type fakeVault struct {
	mu     sync.Mutex
	phrase string
	set    bool
}

func (v *fakeVault) Store(phrase string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phrase, v.set = phrase, true
}

func (v *fakeVault) Get() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phrase, v.set
}

func (v *fakeVault) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phrase, v.set = "", false
}

type fakeClient struct {
	desc        entity.ChainDescriptor
	fee         string
	receipt     entity.TransferReceipt
	sendErr     error
	onSend      func()
	mu          sync.Mutex
	lastRequest entity.TransferRequest
}

func (c *fakeClient) EstimateFee(context.Context, uint64) string { return c.fee }

func (c *fakeClient) Send(_ context.Context, req entity.TransferRequest) (entity.TransferReceipt, error) {
	c.mu.Lock()
	c.lastRequest = req
	hook := c.onSend
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
	return c.receipt, c.sendErr
}

func (c *fakeClient) Descriptor() entity.ChainDescriptor { return c.desc }

type fakeProvider struct {
	client *fakeClient
	err    error
}

func (p *fakeProvider) GetClient(entity.ChainDescriptor) (port.BlockchainClient, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.client, nil
}

type fakeDataClient struct {
	mu    sync.Mutex
	data  entity.WalletData
	err   error
	calls int
}

func (c *fakeDataClient) FetchWalletData(context.Context, string, string) (entity.WalletData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.data, c.err
}

func (c *fakeDataClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type sessionFixture struct {
	session    port.WalletSession
	vault      *fakeVault
	client     *fakeClient
	dataClient *fakeDataClient
	poller     *GasPoller
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	chains := []entity.ChainDescriptor{
		{Key: "0x1", ChainID: 1, Name: "Ethereum Mainnet", NativeSymbol: "ETH", NativeDecimals: 18, ExplorerTxURL: "https://etherscan.io/tx/"},
		{Key: "0x89", ChainID: 137, Name: "Polygon Mainnet", NativeSymbol: "MATIC", NativeDecimals: 18, ExplorerTxURL: "https://polygonscan.com/tx/"},
	}
	client := &fakeClient{desc: chains[0], fee: "0.00100"}
	provider := &fakeProvider{client: client}
	vault := &fakeVault{}
	dataClient := &fakeDataClient{}
	poller := NewGasPoller(provider, nopLogger{}, 21000, time.Hour)

	session := NewWalletSession(
		&fakeRegistry{chains: chains},
		provider,
		dataClient,
		vault,
		NewHistoryMerger("ipfs.io", "placeholder.png"),
		NewNetworthCalculator(),
		poller,
		nopLogger{},
		10*time.Millisecond,
		21000,
	)
	return &sessionFixture{session: session, vault: vault, client: client, dataClient: dataClient, poller: poller}
}

func TestOpenSession(t *testing.T) {
	f := newSessionFixture(t)

	address, err := f.session.Open(testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, testAddress, address)

	stored, ok := f.vault.Get()
	assert.True(t, ok)
	assert.Equal(t, testMnemonic, stored)

	got, open := f.session.Address()
	assert.True(t, open)
	assert.Equal(t, testAddress, got)
}

func TestOpenSessionInvalidPhrase(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.session.Open("definitely not a mnemonic")
	assert.ErrorIs(t, err, entity.ErrInvalidSeedPhrase)

	_, open := f.session.Address()
	assert.False(t, open)
}

func TestResumeSession(t *testing.T) {
	f := newSessionFixture(t)

	_, ok := f.session.Resume()
	assert.False(t, ok, "nothing stored yet")

	f.vault.Store(testMnemonic)
	address, ok := f.session.Resume()
	assert.True(t, ok)
	assert.Equal(t, testAddress, address)
}

func TestResumeSessionBadStoredPhrase(t *testing.T) {
	f := newSessionFixture(t)

	f.vault.Store("corrupted phrase")
	_, ok := f.session.Resume()
	assert.False(t, ok)

	_, stillSet := f.vault.Get()
	assert.False(t, stillSet, "unusable phrase gets cleared")
}

func TestCloseSession(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)

	f.session.Close()

	_, open := f.session.Address()
	assert.False(t, open)
	_, stored := f.vault.Get()
	assert.False(t, stored)
	_, hasSnapshot := f.session.Snapshot()
	assert.False(t, hasSnapshot)
}

func TestSelectChain(t *testing.T) {
	f := newSessionFixture(t)

	assert.NoError(t, f.session.SelectChain("0x89"))
	assert.ErrorIs(t, f.session.SelectChain("0x38"), entity.ErrUnsupportedChain)
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	f := newSessionFixture(t)

	usdValue := 42.5
	f.dataClient.data = entity.WalletData{
		Tokens: []entity.TokenBalance{{Symbol: "ETH", USDValue: &usdValue, NativeToken: true}},
		TokenTransfers: []entity.HistoryRecord{
			{TransactionHash: "0x1", BlockTimestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)
	require.NoError(t, f.session.Refresh(context.Background()))

	snapshot, ok := f.session.Snapshot()
	require.True(t, ok)
	assert.Equal(t, testAddress, snapshot.Address)
	assert.Equal(t, "0x1", snapshot.ChainKey)
	assert.Equal(t, 42.5, snapshot.Networth.TotalUSD)
	require.Len(t, snapshot.History, 1)
	require.Len(t, snapshot.HistoryDays, 1)
	assert.Equal(t, 100.0, snapshot.Tokens[0].PortfolioPercentage)
}

func TestRefreshWithoutSession(t *testing.T) {
	f := newSessionFixture(t)
	assert.ErrorIs(t, f.session.Refresh(context.Background()), entity.ErrNoSession)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)
	require.NoError(t, f.session.Refresh(context.Background()))

	f.dataClient.mu.Lock()
	f.dataClient.err = errors.New("upstream down")
	f.dataClient.mu.Unlock()

	err = f.session.Refresh(context.Background())
	assert.ErrorIs(t, err, entity.ErrFetchFailed)

	_, ok := f.session.Snapshot()
	assert.True(t, ok, "previous snapshot survives a failed refresh")
}

func TestSendWithoutSession(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.session.Send(context.Background(), entity.OutgoingTransfer{
		Recipient: testAddress,
		Asset:     entity.NativeAsset("0x1"),
		Amount:    "0.1",
	})
	assert.ErrorIs(t, err, entity.ErrNoSession)
}

func TestSendUsesStoredPhrase(t *testing.T) {
	f := newSessionFixture(t)
	f.client.receipt = entity.TransferReceipt{
		ChainKey:        "0x1",
		TransactionHash: "0xhash",
		Status:          entity.StatusSuccess,
	}

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)

	receipt, err := f.session.Send(context.Background(), entity.OutgoingTransfer{
		Recipient: testAddress,
		Asset:     entity.NativeAsset("0x1"),
		Amount:    "0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xhash", receipt.TransactionHash)

	f.client.mu.Lock()
	sent := f.client.lastRequest
	f.client.mu.Unlock()
	assert.Equal(t, testMnemonic, sent.SeedPhrase)
	assert.Equal(t, "0.1", sent.Amount)
}

func TestSendSchedulesRefresh(t *testing.T) {
	f := newSessionFixture(t)
	f.client.receipt = entity.TransferReceipt{ChainKey: "0x1", Status: entity.StatusSuccess}

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)
	before := f.dataClient.callCount()

	_, err = f.session.Send(context.Background(), entity.OutgoingTransfer{
		Recipient: testAddress,
		Asset:     entity.NativeAsset("0x1"),
		Amount:    "0.1",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return f.dataClient.callCount() > before
	}, time.Second, 5*time.Millisecond, "a delayed refetch follows a confirmed send")
}

func TestSendFailureDoesNotRefresh(t *testing.T) {
	f := newSessionFixture(t)
	f.client.sendErr = entity.ErrSubmissionFailed

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)
	before := f.dataClient.callCount()

	_, err = f.session.Send(context.Background(), entity.OutgoingTransfer{
		Recipient: testAddress,
		Asset:     entity.NativeAsset("0x1"),
		Amount:    "0.1",
	})
	assert.ErrorIs(t, err, entity.ErrSubmissionFailed)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, f.dataClient.callCount())
}

func pollerPaused(p *GasPoller) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func TestCloseDuringSendKeepsPollerPaused(t *testing.T) {
	f := newSessionFixture(t)
	f.client.receipt = entity.TransferReceipt{ChainKey: "0x1", Status: entity.StatusSuccess}
	f.client.onSend = func() { f.session.Close() }

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)

	_, err = f.session.Send(context.Background(), entity.OutgoingTransfer{
		Recipient: testAddress,
		Asset:     entity.NativeAsset("0x1"),
		Amount:    "0.1",
	})
	require.NoError(t, err)

	assert.True(t, pollerPaused(f.poller), "Close wins over the send's resume")
}

func TestReopenResumesPoller(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)

	f.session.Close()
	assert.True(t, pollerPaused(f.poller))

	_, err = f.session.Open(testMnemonic)
	require.NoError(t, err)
	assert.False(t, pollerPaused(f.poller))
}

func TestEstimateFee(t *testing.T) {
	f := newSessionFixture(t)

	// The poller primed its cache when Open tracked the chain.
	_, err := f.session.Open(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, "0.00100", f.session.EstimateFee(context.Background(), 0))

	// A custom gas limit bypasses the cached default estimate.
	assert.Equal(t, "0.00100", f.session.EstimateFee(context.Background(), 65000))
}
