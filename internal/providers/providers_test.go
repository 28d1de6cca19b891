package providers_test

import (
	"testing"

	"adp-lms-sync/internal/providers"
	"adp-lms-sync/internal/providers/adp"
	"adp-lms-sync/internal/providers/talentlms"
)

func TestImplementations(t *testing.T) {
	var _ providers.WorkerSource = (*adp.Directory)(nil)
	var _ providers.AccountStore = (*talentlms.Store)(nil)
}
