package secrets

import (
	"strings"

	ksm "github.com/keeper-security/secrets-manager-go/core"

	"adp-lms-sync/internal/apperr"
)

const (
	keeperCertFile = "adp.pem"
	keeperKeyFile  = "adp.key"
)

// keeperRecord is the part of *ksm.Record the field mapping needs.
type keeperRecord interface {
	Password() string
	GetFieldValueByType(fieldType string) string
	GetCustomFieldsByLabel(label string) []map[string]interface{}
}

// FromKeeper reads credentials from a Keeper Secrets Manager record.
//
// Custom fields labelled with a key name (e.g. "TALENTLMS_API_KEY") win.
// The record login/password stand in for the ADP client id/secret, and the
// attached files adp.pem / adp.key hold the ADP client certificate.
func FromKeeper(configBase64, recordUID string) (map[string]string, error) {
	if strings.TrimSpace(configBase64) == "" {
		return nil, apperr.New(apperr.CodeConfig, "secrets: keeper", "missing env KSM_CONFIG_BASE64")
	}

	sm := ksm.NewSecretsManager(&ksm.ClientOptions{
		Config: ksm.NewMemoryKeyValueStorage(configBase64),
	})

	var filter []string
	if uid := strings.TrimSpace(recordUID); uid != "" {
		filter = append(filter, uid)
	}

	records, err := sm.GetSecrets(filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeAuth, "secrets: keeper", err)
	}
	if len(records) == 0 {
		return nil, apperr.New(apperr.CodeConfig, "secrets: keeper", "no record shared with this application")
	}

	r := records[0]
	out := fromKeeperRecord(r)
	if files := r.FindFiles(keeperCertFile); len(files) > 0 {
		setIfEmpty(out, "ADP_CERT_PEM", string(files[0].GetFileData()))
	}
	if files := r.FindFiles(keeperKeyFile); len(files) > 0 {
		setIfEmpty(out, "ADP_KEY_PEM", string(files[0].GetFileData()))
	}
	return out, nil
}

func fromKeeperRecord(r keeperRecord) map[string]string {
	out := map[string]string{}
	for _, k := range Keys {
		if v, ok := customFieldString(r.GetCustomFieldsByLabel(k)); ok {
			out[k] = v
		}
	}
	setIfEmpty(out, "ADP_CLIENT_ID", r.GetFieldValueByType("login"))
	setIfEmpty(out, "ADP_CLIENT_SECRET", r.Password())
	return out
}

// customFieldString returns the first non-empty string among the field
// values. Keeper stores values as a list even for single-valued fields.
func customFieldString(fields []map[string]interface{}) (string, bool) {
	for _, f := range fields {
		switch v := f["value"].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s, true
			}
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s), true
				}
			}
		}
	}
	return "", false
}

func setIfEmpty(m map[string]string, k, v string) {
	if strings.TrimSpace(v) == "" || m[k] != "" {
		return
	}
	m[k] = v
}
