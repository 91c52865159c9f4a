package restapi

import (
	"errors"
	"net/http"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/app/service"
	"pocket_wallet/internal/domain/entity"
	"pocket_wallet/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler serves the wallet API: the stateless aggregation endpoint
// the extension popup polls, the logo endpoint, and the session endpoints
// wrapping the active wallet.
type WalletHandler struct {
	session    port.WalletSession
	registry   port.ChainRegistry
	dataClient port.WalletDataClient
	logos      port.LogoProvider
	merger     *service.HistoryMerger
	networth   *service.NetworthCalculator
	logger     *zap.Logger
}

func NewWalletHandler(
	session port.WalletSession,
	registry port.ChainRegistry,
	dataClient port.WalletDataClient,
	logos port.LogoProvider,
	merger *service.HistoryMerger,
	networth *service.NetworthCalculator,
	logger *zap.Logger,
) *WalletHandler {
	return &WalletHandler{
		session:    session,
		registry:   registry,
		dataClient: dataClient,
		logos:      logos,
		merger:     merger,
		networth:   networth,
		logger:     logger.Named("WalletHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetTokensHandler aggregates one wallet's full state on one chain without
// touching the session: ?userAddress=0x...&chain=0x1. The popup calls this
// on every open.
func (h *WalletHandler) GetTokensHandler(c *gin.Context) {
	address := c.Query("userAddress")
	chainKey := c.Query("chain")
	if address == "" || chainKey == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "userAddress and chain query parameters are required"})
		return
	}

	desc, err := h.registry.Resolve(chainKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	data, err := h.dataClient.FetchWalletData(c.Request.Context(), address, desc.Key)
	if err != nil {
		metrics.WalletFetchesTotal.WithLabelValues(desc.Key, "error").Inc()
		h.logger.Error("Wallet data fetch failed", zap.String("address", address), zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to fetch wallet data"})
		return
	}
	metrics.WalletFetchesTotal.WithLabelValues(desc.Key, "success").Inc()

	tokens := h.networth.PortfolioPercentage(data.Tokens)
	history := h.merger.Merge(data.TokenTransfers, data.NftTransfers, data.Nfts)

	c.JSON(http.StatusOK, entity.PortfolioSnapshot{
		Address:     address,
		ChainKey:    desc.Key,
		Tokens:      tokens,
		Nfts:        data.Nfts,
		History:     history,
		HistoryDays: h.merger.GroupByDay(history),
		Networth:    h.networth.Summarize(tokens),
	})
}

// GetLogoHandler serves a token logo PNG by symbol: ?symbol=eth.
func (h *WalletHandler) GetLogoHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	logo, err := h.logos.Logo(symbol)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", logo)
}

// GetChainsHandler lists the supported chains.
func (h *WalletHandler) GetChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": h.registry.All()})
}

type openSessionRequest struct {
	SeedPhrase string `json:"seedPhrase" binding:"required"`
}

// OpenSessionHandler validates a seed phrase and opens the wallet session.
func (h *WalletHandler) OpenSessionHandler(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "seedPhrase is required"})
		return
	}

	address, err := h.session.Open(req.SeedPhrase)
	if err != nil {
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

// ResumeSessionHandler reopens a session from the stored phrase.
func (h *WalletHandler) ResumeSessionHandler(c *gin.Context) {
	address, ok := h.session.Resume()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no stored session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

// CloseSessionHandler clears the vault and drops the session.
func (h *WalletHandler) CloseSessionHandler(c *gin.Context) {
	h.session.Close()
	c.Status(http.StatusNoContent)
}

type selectChainRequest struct {
	Chain string `json:"chain" binding:"required"`
}

// SelectChainHandler switches the session's chain.
func (h *WalletHandler) SelectChainHandler(c *gin.Context) {
	var req selectChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "chain is required"})
		return
	}
	if err := h.session.SelectChain(req.Chain); err != nil {
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// RefreshHandler refetches the session's wallet data and republishes the
// snapshot.
func (h *WalletHandler) RefreshHandler(c *gin.Context) {
	if err := h.session.Refresh(c.Request.Context()); err != nil {
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	snapshot, _ := h.session.Snapshot()
	c.JSON(http.StatusOK, snapshot)
}

// SnapshotHandler returns the last published snapshot without refetching.
func (h *WalletHandler) SnapshotHandler(c *gin.Context) {
	snapshot, ok := h.session.Snapshot()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no snapshot available"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type sendRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount"`
	Asset     struct {
		Kind            string `json:"kind"` // native | erc20 | nft
		ContractAddress string `json:"contractAddress"`
		TokenID         string `json:"tokenId"`
		Standard        string `json:"standard"`
		Decimals        uint8  `json:"decimals"`
	} `json:"asset"`
}

// SendHandler submits one transfer on the session's selected chain. An
// unconfirmed broadcast comes back as 202 with the pending receipt so the
// caller can link the explorer.
func (h *WalletHandler) SendHandler(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "recipient is required"})
		return
	}

	asset, err := assetFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	receipt, err := h.session.Send(c.Request.Context(), entity.OutgoingTransfer{
		Recipient: req.Recipient,
		Asset:     asset,
		Amount:    req.Amount,
	})
	chainKey := receipt.ChainKey
	if err != nil {
		if errors.Is(err, entity.ErrReceiptTimeout) {
			observeTransfer(chainKey, string(entity.StatusPending))
			c.JSON(http.StatusAccepted, receipt)
			return
		}
		observeTransfer(chainKey, "error")
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}

	observeTransfer(chainKey, string(receipt.Status))
	c.JSON(http.StatusOK, receipt)
}

// observeTransfer counts a transfer outcome. Submissions rejected before a
// client was involved carry no chain key and are not counted.
func observeTransfer(chainKey, status string) {
	if chainKey == "" {
		return
	}
	metrics.TransfersTotal.WithLabelValues(chainKey, status).Inc()
}

// EstimateFeeHandler returns the advisory fee for the selected chain.
func (h *WalletHandler) EstimateFeeHandler(c *gin.Context) {
	fee := h.session.EstimateFee(c.Request.Context(), 0)
	c.JSON(http.StatusOK, gin.H{"fee": fee})
}

func assetFromRequest(req sendRequest) (entity.AssetDescriptor, error) {
	switch req.Asset.Kind {
	case "", "native":
		return entity.AssetDescriptor{Kind: entity.AssetNative}, nil
	case "erc20":
		return entity.AssetDescriptor{
			Kind:            entity.AssetERC20,
			ContractAddress: req.Asset.ContractAddress,
			Decimals:        req.Asset.Decimals,
		}, nil
	case "nft":
		return entity.AssetDescriptor{
			Kind:            entity.AssetNFT,
			ContractAddress: req.Asset.ContractAddress,
			TokenID:         req.Asset.TokenID,
			Standard:        entity.NftStandard(req.Asset.Standard),
		}, nil
	default:
		return entity.AssetDescriptor{}, errors.New("unknown asset kind: " + req.Asset.Kind)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidSeedPhrase),
		errors.Is(err, entity.ErrInvalidRecipient),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrUnsupportedChain):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrFetchFailed),
		errors.Is(err, entity.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrReceiptTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
