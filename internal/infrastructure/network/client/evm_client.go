package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"pocket_wallet/internal/domain/entity"
	"pocket_wallet/internal/infrastructure/hdkey"
	"pocket_wallet/internal/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Minimal ABI fragments for the transfer entry points the builder invokes.
const (
	erc20ABI   = `[{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"}]`
	erc721ABI  = `[{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}]`
	erc1155ABI = `[{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"name":"safeTransferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}]`
)

var (
	parsedABIsOnce    sync.Once
	parsedERC20ABI    abi.ABI
	parsedERC721ABI   abi.ABI
	parsedERC1155ABI  abi.ABI
	transferEventSig  common.Hash
	transferSingleSig common.Hash
)

func initParsedABIs() {
	parsedABIsOnce.Do(func() {
		var err error
		if parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		if parsedERC721ABI, err = abi.JSON(strings.NewReader(erc721ABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC721 ABI: %v", err))
		}
		if parsedERC1155ABI, err = abi.JSON(strings.NewReader(erc1155ABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC1155 ABI: %v", err))
		}
		transferEventSig = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
		transferSingleSig = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))
	})
}

// EVMClient implements port.BlockchainClient for one EVM-compatible chain.
type EVMClient struct {
	ethClient      *ethclient.Client
	desc           entity.ChainDescriptor
	limiter        *rate.Limiter
	logger         *zap.Logger
	rpcCallTimeout time.Duration
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// NewEVMClient connects to the chain's RPC endpoint and returns a client.
func NewEVMClient(
	desc entity.ChainDescriptor,
	limiter *rate.Limiter,
	logger *zap.Logger,
	connectTimeout, rpcCallTimeout, confirmTimeout time.Duration,
) (*EVMClient, error) {
	initParsedABIs()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	ethClient, err := ethclient.DialContext(ctx, desc.RPCEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC for %s: %w", desc.Name, err)
	}

	return &EVMClient{
		ethClient:      ethClient,
		desc:           desc,
		limiter:        limiter,
		logger:         logger.Named("EVMClient").With(zap.String("chain", desc.Key)),
		rpcCallTimeout: rpcCallTimeout,
		confirmTimeout: confirmTimeout,
		pollInterval:   2 * time.Second,
	}, nil
}

// Descriptor returns the chain descriptor this client talks to.
func (c *EVMClient) Descriptor() entity.ChainDescriptor {
	return c.desc
}

// EstimateFee returns the current cost of gasLimit gas units as a
// native-currency string with 5 fractional places, or "0" on any failure.
// Fee display is advisory; estimation failure must never block a transfer.
func (c *EVMClient) EstimateFee(ctx context.Context, gasLimit uint64) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return "0"
	}
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	gasPrice, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		c.logger.Warn("Failed to fetch gas price", zap.Error(err))
		return "0"
	}
	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	return utils.FormatBigIntFixed(fee, c.desc.NativeDecimals, 5)
}

// Send builds, signs, submits and confirms one transfer. See the
// port.BlockchainClient contract for the error taxonomy.
func (c *EVMClient) Send(ctx context.Context, req entity.TransferRequest) (entity.TransferReceipt, error) {
	if !common.IsHexAddress(req.Recipient) {
		return entity.TransferReceipt{}, fmt.Errorf("%w: %q", entity.ErrInvalidRecipient, req.Recipient)
	}
	recipient := common.HexToAddress(req.Recipient)

	switch req.Asset.Kind {
	case entity.AssetNative:
		return c.sendNative(ctx, req, recipient)
	case entity.AssetERC20:
		return c.sendERC20(ctx, req, recipient)
	case entity.AssetNFT:
		return c.sendNFT(ctx, req, recipient)
	default:
		return entity.TransferReceipt{}, fmt.Errorf("%w: unknown asset kind %d", entity.ErrSubmissionFailed, req.Asset.Kind)
	}
}

func (c *EVMClient) sendNative(ctx context.Context, req entity.TransferRequest, recipient common.Address) (entity.TransferReceipt, error) {
	value, err := utils.ParseDecimal(req.Amount, c.desc.NativeDecimals)
	if err != nil || value.Sign() <= 0 {
		return entity.TransferReceipt{}, fmt.Errorf("%w: %q", entity.ErrInvalidAmount, req.Amount)
	}

	key, err := hdkey.DeriveKey(req.SeedPhrase)
	if err != nil {
		return entity.TransferReceipt{}, err
	}

	receipt, txHash, submitErr := c.submitAndWait(ctx, key, recipient, value, nil)
	return c.normalizeReceipt(req, key, receipt, txHash, submitErr)
}

func (c *EVMClient) sendERC20(ctx context.Context, req entity.TransferRequest, recipient common.Address) (entity.TransferReceipt, error) {
	decimals := req.Asset.Decimals
	if decimals == 0 {
		decimals = 18 // token precision unknown; 18 covers the overwhelming majority
	}
	value, err := utils.ParseDecimal(req.Amount, decimals)
	if err != nil || value.Sign() <= 0 {
		return entity.TransferReceipt{}, fmt.Errorf("%w: %q", entity.ErrInvalidAmount, req.Amount)
	}
	if !common.IsHexAddress(req.Asset.ContractAddress) {
		return entity.TransferReceipt{}, fmt.Errorf("%w: bad token contract %q", entity.ErrSubmissionFailed, req.Asset.ContractAddress)
	}
	contract := common.HexToAddress(req.Asset.ContractAddress)

	callData, err := parsedERC20ABI.Pack("transfer", recipient, value)
	if err != nil {
		return entity.TransferReceipt{}, fmt.Errorf("%w: pack transfer: %v", entity.ErrSubmissionFailed, err)
	}

	key, err := hdkey.DeriveKey(req.SeedPhrase)
	if err != nil {
		return entity.TransferReceipt{}, err
	}

	receipt, txHash, submitErr := c.submitAndWait(ctx, key, contract, nil, callData)
	return c.normalizeReceipt(req, key, receipt, txHash, submitErr)
}

func (c *EVMClient) sendNFT(ctx context.Context, req entity.TransferRequest, recipient common.Address) (entity.TransferReceipt, error) {
	if !common.IsHexAddress(req.Asset.ContractAddress) {
		return entity.TransferReceipt{}, fmt.Errorf("%w: bad token contract %q", entity.ErrSubmissionFailed, req.Asset.ContractAddress)
	}
	contract := common.HexToAddress(req.Asset.ContractAddress)

	tokenID, err := utils.ParseUint(req.Asset.TokenID)
	if err != nil {
		return entity.TransferReceipt{}, fmt.Errorf("%w: bad token id %q", entity.ErrSubmissionFailed, req.Asset.TokenID)
	}

	key, err := hdkey.DeriveKey(req.SeedPhrase)
	if err != nil {
		return entity.TransferReceipt{}, err
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)

	var callData []byte
	switch req.Asset.Standard {
	case entity.StandardERC721, entity.StandardERC721A:
		callData, err = parsedERC721ABI.Pack("transferFrom", owner, recipient, tokenID)
	case entity.StandardERC1155:
		// No implicit amount for semi-fungible transfers.
		amount, amountErr := utils.ParseUint(req.Amount)
		if amountErr != nil || amount.Sign() <= 0 {
			return entity.TransferReceipt{}, fmt.Errorf("%w: ERC-1155 transfer requires a positive amount", entity.ErrInvalidAmount)
		}
		callData, err = parsedERC1155ABI.Pack("safeTransferFrom", owner, recipient, tokenID, amount, []byte{})
	default:
		return entity.TransferReceipt{}, fmt.Errorf("%w: unsupported token standard %q", entity.ErrSubmissionFailed, req.Asset.Standard)
	}
	if err != nil {
		return entity.TransferReceipt{}, fmt.Errorf("%w: pack call: %v", entity.ErrSubmissionFailed, err)
	}

	receipt, txHash, submitErr := c.submitAndWait(ctx, key, contract, nil, callData)
	return c.normalizeReceipt(req, key, receipt, txHash, submitErr)
}

// submitAndWait signs and broadcasts a transaction, then polls for its
// receipt until inclusion or the confirmation timeout. The broadcast hash is
// returned even when confirmation times out, so callers can point the user at
// an explorer.
func (c *EVMClient) submitAndWait(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	to common.Address,
	value *big.Int,
	callData []byte,
) (*types.Receipt, common.Hash, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	nonce, err := c.ethClient.PendingNonceAt(callCtx, from)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: fetch nonce: %v", entity.ErrSubmissionFailed, err)
	}
	gasPrice, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: fetch gas price: %v", entity.ErrSubmissionFailed, err)
	}
	gasLimit, err := c.ethClient.EstimateGas(callCtx, ethereum.CallMsg{From: from, To: &to, Value: value, Data: callData})
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: estimate gas: %v", entity.ErrSubmissionFailed, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     callData,
	})
	chainID := new(big.Int).SetUint64(c.desc.ChainID)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: sign: %v", entity.ErrSubmissionFailed, err)
	}
	if err := c.ethClient.SendTransaction(callCtx, signedTx); err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: broadcast: %v", entity.ErrSubmissionFailed, err)
	}

	c.logger.Info("Transaction broadcast",
		zap.String("hash", signedTx.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("nonce", nonce))

	receipt, err := c.waitMined(ctx, signedTx.Hash())
	return receipt, signedTx.Hash(), err
}

// waitMined polls for the transaction receipt until the confirmation timeout.
// Once broadcast, a signed transaction cannot be withdrawn; on timeout the
// transfer may still land later, so the hash travels with the error.
func (c *EVMClient) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	deadline := time.NewTimer(c.confirmTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(c.pollInterval)
	defer tick.Stop()

	for {
		receiptCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
		receipt, err := c.ethClient.TransactionReceipt(receiptCtx, txHash)
		cancel()
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", entity.ErrReceiptTimeout, txHash.Hex())
		case <-deadline.C:
			c.logger.Warn("Confirmation wait timed out", zap.String("hash", txHash.Hex()))
			return nil, fmt.Errorf("%w: %s", entity.ErrReceiptTimeout, txHash.Hex())
		case <-tick.C:
		}
	}
}

// normalizeReceipt turns a confirmed chain receipt into the display shape.
// For token transfers the authoritative recipient/amount come from the
// decoded Transfer/TransferSingle event when one is present in the receipt's
// logs; decoding failure silently degrades to the request's own values.
func (c *EVMClient) normalizeReceipt(
	req entity.TransferRequest,
	key *ecdsa.PrivateKey,
	receipt *types.Receipt,
	txHash common.Hash,
	submitErr error,
) (entity.TransferReceipt, error) {
	from := crypto.PubkeyToAddress(key.PublicKey).Hex()

	if submitErr != nil {
		pending := entity.TransferReceipt{
			ChainKey:    c.desc.Key,
			FromAddress: from,
			ToAddress:   req.Recipient,
			Amount:      c.displayAmount(req),
			FeePaid:     "0",
			Status:      entity.StatusPending,
		}
		if txHash != (common.Hash{}) {
			// Broadcast happened; only confirmation is in doubt.
			pending.TransactionHash = txHash.Hex()
			pending.ExplorerURL = c.desc.TxURL(txHash.Hex())
		}
		return pending, submitErr
	}

	normalized := entity.TransferReceipt{
		ChainKey:        c.desc.Key,
		TransactionHash: receipt.TxHash.Hex(),
		FromAddress:     from,
		ToAddress:       req.Recipient,
		Amount:          c.displayAmount(req),
		FeePaid:         c.feePaid(receipt),
		Status:          mapStatus(receipt.Status),
		ExplorerURL:     c.desc.TxURL(receipt.TxHash.Hex()),
	}

	if to, amount, ok := c.decodeTransferEvent(req, receipt); ok {
		normalized.ToAddress = to
		if amount != "" {
			normalized.Amount = amount
		}
	}
	return normalized, nil
}

// displayAmount is the request-side amount used when no event is decodable.
func (c *EVMClient) displayAmount(req entity.TransferRequest) string {
	if req.Asset.Kind == entity.AssetNFT &&
		(req.Asset.Standard == entity.StandardERC721 || req.Asset.Standard == entity.StandardERC721A) {
		return "1"
	}
	return req.Amount
}

func (c *EVMClient) feePaid(receipt *types.Receipt) string {
	gasPrice := receipt.EffectiveGasPrice
	if gasPrice == nil {
		return "0"
	}
	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(receipt.GasUsed))
	return utils.FormatBigIntFixed(fee, c.desc.NativeDecimals, 5)
}

// decodeTransferEvent scans the receipt's logs for the standard transfer
// event of the asset's contract. Non-standard contracts may emit nothing
// decodable; that is not an error.
func (c *EVMClient) decodeTransferEvent(req entity.TransferRequest, receipt *types.Receipt) (to, amount string, ok bool) {
	if req.Asset.Kind == entity.AssetNative {
		return "", "", false
	}
	contract := common.HexToAddress(req.Asset.ContractAddress)

	for _, log := range receipt.Logs {
		if log.Address != contract || len(log.Topics) == 0 {
			continue
		}
		switch {
		case req.Asset.Kind == entity.AssetERC20 && log.Topics[0] == transferEventSig && len(log.Topics) == 3:
			// Transfer(from indexed, to indexed, value) - value in data.
			value := new(big.Int).SetBytes(log.Data)
			decimals := req.Asset.Decimals
			if decimals == 0 {
				decimals = 18
			}
			formatted, err := utils.FormatBigInt(value, decimals)
			if err != nil {
				c.logger.Debug("Failed to format transfer event value", zap.Error(err))
				return "", "", false
			}
			return common.BytesToAddress(log.Topics[2].Bytes()).Hex(), formatted, true

		case req.Asset.Kind == entity.AssetNFT && log.Topics[0] == transferEventSig && len(log.Topics) == 4:
			// Transfer(from indexed, to indexed, tokenId indexed) - ERC-721.
			return common.BytesToAddress(log.Topics[2].Bytes()).Hex(), "1", true

		case req.Asset.Kind == entity.AssetNFT && log.Topics[0] == transferSingleSig && len(log.Topics) == 4:
			// TransferSingle(operator, from, to indexed; id, value in data).
			if len(log.Data) < 64 {
				return "", "", false
			}
			value := new(big.Int).SetBytes(log.Data[32:64])
			return common.BytesToAddress(log.Topics[3].Bytes()).Hex(), value.String(), true
		}
	}
	return "", "", false
}

func mapStatus(status uint64) entity.TransferStatus {
	switch status {
	case types.ReceiptStatusSuccessful:
		return entity.StatusSuccess
	case types.ReceiptStatusFailed:
		return entity.StatusFailed
	default:
		return entity.StatusPending
	}
}
