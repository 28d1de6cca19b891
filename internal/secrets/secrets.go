// Package secrets reads API credentials from an external secret store so
// they do not have to live in the environment of the host running the sync.
//
// Every source returns values keyed by the environment variable they stand
// in for (ADP_CLIENT_ID, TALENTLMS_API_KEY, ...); config.ApplySecrets merges
// them into the loaded configuration.
package secrets

import (
	"context"
	"strings"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/config"
)

// Keys lists the credentials a store may provide.
var Keys = []string{
	"ADP_CLIENT_ID",
	"ADP_CLIENT_SECRET",
	"ADP_CERT_PEM",
	"ADP_KEY_PEM",
	"TALENTLMS_DOMAIN",
	"TALENTLMS_API_KEY",
	"SFTP_PASS",
}

// Fetch loads credentials from the configured source. An empty source
// returns no values.
func Fetch(ctx context.Context, cfg config.SecretsConfig) (map[string]string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "":
		return map[string]string{}, nil
	case "keeper":
		return FromKeeper(cfg.KeeperConfig, cfg.KeeperRecordUID)
	case "aws":
		return FromAWS(ctx, cfg.AWSSecretID)
	default:
		return nil, apperr.Newf(apperr.CodeConfig, "secrets", "unknown SECRETS_SOURCE %q (want keeper or aws)", cfg.Source)
	}
}

func isKnownKey(k string) bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}
