package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const timestampLayout = time.RFC3339

// moralisClient implements port.WalletDataClient against the Moralis wallet
// API. One FetchWalletData call fans out into four requests (token balances
// with prices, NFT inventory, token transfers, NFT transfers); any failed
// leg fails the whole fetch so the caller never sees a partially updated
// wallet.
type moralisClient struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewMoralisClient creates a wallet data client for the given API base URL.
func NewMoralisClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) port.WalletDataClient {
	return &moralisClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger.Named("MoralisClient"),
	}
}

type resultPage[T any] struct {
	Result []T `json:"result"`
}

type tokenTransferDTO struct {
	TokenSymbol     string `json:"token_symbol"`
	TokenDecimals   string `json:"token_decimals"`
	FromAddress     string `json:"from_address"`
	ToAddress       string `json:"to_address"`
	Address         string `json:"address"`
	BlockTimestamp  string `json:"block_timestamp"`
	TransactionHash string `json:"transaction_hash"`
	ValueDecimal    string `json:"value_decimal"`
}

type nftTransferDTO struct {
	TokenAddress    string             `json:"token_address"`
	TokenID         string             `json:"token_id"`
	FromAddress     string             `json:"from_address"`
	ToAddress       string             `json:"to_address"`
	ContractType    entity.NftStandard `json:"contract_type"`
	BlockTimestamp  string             `json:"block_timestamp"`
	TransactionHash string             `json:"transaction_hash"`
	Amount          string             `json:"amount"`
}

// FetchWalletData implements the port.WalletDataClient interface.
func (c *moralisClient) FetchWalletData(ctx context.Context, address, chainKey string) (entity.WalletData, error) {
	var data entity.WalletData

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var page resultPage[entity.TokenBalance]
		path := fmt.Sprintf("/wallets/%s/tokens", address)
		if err := c.get(groupCtx, path, chainKey, nil, &page); err != nil {
			return fmt.Errorf("token balances: %w", err)
		}
		data.Tokens = page.Result
		return nil
	})

	group.Go(func() error {
		var page resultPage[entity.NftItem]
		path := fmt.Sprintf("/%s/nft", address)
		extra := url.Values{"format": {"decimal"}, "normalizeMetadata": {"true"}}
		if err := c.get(groupCtx, path, chainKey, extra, &page); err != nil {
			return fmt.Errorf("nft inventory: %w", err)
		}
		data.Nfts = page.Result
		return nil
	})

	group.Go(func() error {
		var page resultPage[tokenTransferDTO]
		path := fmt.Sprintf("/%s/erc20/transfers", address)
		if err := c.get(groupCtx, path, chainKey, nil, &page); err != nil {
			return fmt.Errorf("token transfers: %w", err)
		}
		records, err := mapTokenTransfers(page.Result)
		if err != nil {
			return err
		}
		data.TokenTransfers = records
		return nil
	})

	group.Go(func() error {
		var page resultPage[nftTransferDTO]
		path := fmt.Sprintf("/%s/nft/transfers", address)
		extra := url.Values{"format": {"decimal"}}
		if err := c.get(groupCtx, path, chainKey, extra, &page); err != nil {
			return fmt.Errorf("nft transfers: %w", err)
		}
		records, err := mapNftTransfers(page.Result)
		if err != nil {
			return err
		}
		data.NftTransfers = records
		return nil
	})

	if err := group.Wait(); err != nil {
		return entity.WalletData{}, err
	}

	c.logger.Debug("Wallet data fetched",
		zap.String("address", address),
		zap.String("chain", chainKey),
		zap.Int("tokens", len(data.Tokens)),
		zap.Int("nfts", len(data.Nfts)),
		zap.Int("tokenTransfers", len(data.TokenTransfers)),
		zap.Int("nftTransfers", len(data.NftTransfers)))
	return data, nil
}

func (c *moralisClient) get(ctx context.Context, path, chainKey string, extra url.Values, out any) error {
	query := url.Values{"chain": {chainKey}}
	for key, values := range extra {
		query[key] = values
	}
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute data API request", zap.String("path", path), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", path, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute data API request (with default timeout)", zap.String("path", path), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", path, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Data API request failed",
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return fmt.Errorf("data API request to %s failed with status %d", path, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Error("Failed to unmarshal data API response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", path, err)
	}
	return nil
}

func mapTokenTransfers(dtos []tokenTransferDTO) ([]entity.HistoryRecord, error) {
	records := make([]entity.HistoryRecord, 0, len(dtos))
	for _, dto := range dtos {
		timestamp, err := time.Parse(timestampLayout, dto.BlockTimestamp)
		if err != nil {
			return nil, fmt.Errorf("bad token transfer timestamp %q: %w", dto.BlockTimestamp, err)
		}
		var decimals uint8
		if parsed, parseErr := strconv.ParseUint(dto.TokenDecimals, 10, 8); parseErr == nil {
			decimals = uint8(parsed)
		}
		records = append(records, entity.HistoryRecord{
			BlockTimestamp:  timestamp,
			TransactionHash: dto.TransactionHash,
			FromAddress:     dto.FromAddress,
			ToAddress:       dto.ToAddress,
			TokenAddress:    dto.Address,
			TokenSymbol:     dto.TokenSymbol,
			TokenDecimals:   decimals,
			ValueDecimal:    dto.ValueDecimal,
		})
	}
	return records, nil
}

func mapNftTransfers(dtos []nftTransferDTO) ([]entity.HistoryRecord, error) {
	records := make([]entity.HistoryRecord, 0, len(dtos))
	for _, dto := range dtos {
		timestamp, err := time.Parse(timestampLayout, dto.BlockTimestamp)
		if err != nil {
			return nil, fmt.Errorf("bad NFT transfer timestamp %q: %w", dto.BlockTimestamp, err)
		}
		records = append(records, entity.HistoryRecord{
			BlockTimestamp:  timestamp,
			TransactionHash: dto.TransactionHash,
			FromAddress:     dto.FromAddress,
			ToAddress:       dto.ToAddress,
			TokenAddress:    dto.TokenAddress,
			TokenID:         dto.TokenID,
			ContractType:    dto.ContractType,
			Amount:          dto.Amount,
		})
	}
	return records, nil
}
