package service

import (
	"sort"
	"strings"

	"pocket_wallet/internal/domain/entity"
	"pocket_wallet/internal/pkg/utils"
)

// TransferDirection classifies a history record relative to one wallet.
type TransferDirection string

const (
	DirectionSent     TransferDirection = "Sent"
	DirectionReceived TransferDirection = "Received"
)

const dayLabelLayout = "Monday, January 2, 2006"

// HistoryMerger combines the token-transfer and NFT-transfer feeds into one
// timestamp-ordered activity list and enriches NFT records with images from
// the wallet's current inventory.
type HistoryMerger struct {
	ipfsGateway      string
	placeholderImage string
}

func NewHistoryMerger(ipfsGateway, placeholderImage string) *HistoryMerger {
	if ipfsGateway == "" {
		ipfsGateway = utils.DefaultIPFSGateway
	}
	return &HistoryMerger{ipfsGateway: ipfsGateway, placeholderImage: placeholderImage}
}

// Merge appends both feeds, attaches inventory images to NFT records and
// sorts by block timestamp, newest first. The sort is stable so records
// sharing a timestamp keep their feed order.
func (m *HistoryMerger) Merge(tokenTransfers, nftTransfers []entity.HistoryRecord, inventory []entity.NftItem) []entity.HistoryRecord {
	merged := make([]entity.HistoryRecord, 0, len(tokenTransfers)+len(nftTransfers))
	merged = append(merged, tokenTransfers...)

	byContract := make(map[string]entity.NftItem, len(inventory))
	for _, item := range inventory {
		byContract[strings.ToLower(item.TokenAddress)] = item
	}

	for _, record := range nftTransfers {
		if item, ok := byContract[strings.ToLower(record.TokenAddress)]; ok {
			if item.Metadata.Image != "" {
				record.Image = utils.RewriteIPFSURL(item.Metadata.Image, m.ipfsGateway)
			} else {
				record.Image = m.placeholderImage
			}
		}
		merged = append(merged, record)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].BlockTimestamp.After(merged[j].BlockTimestamp)
	})
	return merged
}

// GroupByDay buckets an already ordered history list into calendar days.
// Day labels follow the record's own timestamp location.
func (m *HistoryMerger) GroupByDay(records []entity.HistoryRecord) []entity.HistoryDay {
	var days []entity.HistoryDay
	for _, record := range records {
		label := record.BlockTimestamp.Format(dayLabelLayout)
		if len(days) == 0 || days[len(days)-1].Label != label {
			days = append(days, entity.HistoryDay{Label: label})
		}
		last := &days[len(days)-1]
		last.Records = append(last.Records, record)
	}
	return days
}

// Direction reports whether the wallet sent or received the transfer.
// Address comparison is case-insensitive; the provider mixes checksummed and
// lowercase forms.
func Direction(record entity.HistoryRecord, walletAddress string) TransferDirection {
	if strings.EqualFold(record.FromAddress, walletAddress) {
		return DirectionSent
	}
	return DirectionReceived
}
