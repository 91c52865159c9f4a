package logostore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pocket_wallet/internal/app/port"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// placeholderFile is served for symbols with no bundled icon. Symbols longer
// than five characters are almost always LP shares or scam tokens with no
// icon upstream, so they skip the disk lookup entirely.
const (
	placeholderFile = "placeholder.png"
	maxSymbolLen    = 5
)

// Store serves token logo images from a directory of PNG files named by
// lowercased symbol. Reads go through a TTL cache; a miss on disk is cached
// too, as a placeholder marker.
type Store struct {
	dir         string
	cache       *gocache.Cache
	placeholder []byte
	logger      *zap.Logger
}

// NewStore loads the placeholder image eagerly; a store that cannot serve
// its fallback is misconfigured.
func NewStore(dir string, cacheTTL time.Duration, logger *zap.Logger) (*Store, error) {
	placeholder, err := os.ReadFile(filepath.Join(dir, placeholderFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load placeholder logo: %w", err)
	}
	return &Store{
		dir:         dir,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
		placeholder: placeholder,
		logger:      logger.Named("LogoStore"),
	}, nil
}

var _ port.LogoProvider = (*Store)(nil)

// Logo returns the PNG bytes for a symbol, falling back to the placeholder
// when no icon exists. The error return is reserved for empty symbols.
func (s *Store) Logo(symbol string) ([]byte, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if len(symbol) > maxSymbolLen {
		return s.placeholder, nil
	}

	if cached, found := s.cache.Get(symbol); found {
		return cached.([]byte), nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, symbol+".png"))
	if err != nil {
		s.logger.Debug("No logo on disk, serving placeholder", zap.String("symbol", symbol))
		data = s.placeholder
	}
	s.cache.Set(symbol, data, gocache.DefaultExpiration)
	return data, nil
}

// Placeholder returns the generic logo image.
func (s *Store) Placeholder() []byte {
	return s.placeholder
}
