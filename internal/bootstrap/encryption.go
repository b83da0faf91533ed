package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/marketplace-console/internal/data/cryptoutil"
)

// BuildSessionSealer turns SESSION_ENCRYPTION_KEYS into a key ring. With no keys, sessions are
// stored as plain JSON and a warning is logged outside development.
//
//nolint:ireturn // callers only need the Sealer behaviour
func BuildSessionSealer(keys []string, isDev bool, logger *slog.Logger) (cryptoutil.Sealer, error) {
	parsed := make([][]byte, 0, len(keys))
	for i, raw := range keys {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		key, err := cryptoutil.ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("session key %d: %w", i+1, err)
		}
		parsed = append(parsed, key)
	}

	if len(parsed) == 0 {
		if logger != nil && !isDev {
			logger.Warn("SESSION_ENCRYPTION_KEYS is empty; sessions holding backend tokens are stored unencrypted")
		}
		return cryptoutil.Plain{}, nil
	}

	ring, err := cryptoutil.NewKeyRing(parsed...)
	if err != nil {
		return nil, fmt.Errorf("build session key ring: %w", err)
	}
	// Sessions written before keys were configured stay readable until they expire.
	ring.AcceptPlaintext = true
	if logger != nil {
		logger.Info("session encryption enabled", "keys", len(parsed))
	}
	return ring, nil
}
