package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/config"
)

type fakeSecretsAPI struct {
	value *string
	err   error
	asked string
}

func (f *fakeSecretsAPI) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestFromAWSKeepsKnownKeys(t *testing.T) {
	api := &fakeSecretsAPI{value: aws.String(`{"TALENTLMS_API_KEY":"k1","ADP_CLIENT_ID":"id","UNRELATED":"x","SFTP_PASS":""}`)}

	got, err := fromAWS(context.Background(), api, "prod/sync")

	require.NoError(t, err)
	assert.Equal(t, "prod/sync", api.asked)
	assert.Equal(t, map[string]string{"TALENTLMS_API_KEY": "k1", "ADP_CLIENT_ID": "id"}, got)
}

func TestFromAWSErrors(t *testing.T) {
	_, err := fromAWS(context.Background(), &fakeSecretsAPI{err: errors.New("AccessDenied")}, "s")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = fromAWS(context.Background(), &fakeSecretsAPI{}, "s")
	assert.ErrorIs(t, err, apperr.ErrConfig)

	_, err = fromAWS(context.Background(), &fakeSecretsAPI{value: aws.String("not json")}, "s")
	assert.ErrorIs(t, err, apperr.ErrConfig)
}

func TestFromAWSMissingID(t *testing.T) {
	_, err := FromAWS(context.Background(), " ")
	assert.ErrorIs(t, err, apperr.ErrConfig)
}

type fakeKeeperRecord struct {
	login, password string
	custom          map[string][]map[string]interface{}
}

func (r fakeKeeperRecord) Password() string { return r.password }

func (r fakeKeeperRecord) GetFieldValueByType(fieldType string) string {
	if fieldType == "login" {
		return r.login
	}
	return ""
}

func (r fakeKeeperRecord) GetCustomFieldsByLabel(label string) []map[string]interface{} {
	return r.custom[label]
}

func TestFromKeeperRecord(t *testing.T) {
	r := fakeKeeperRecord{
		login:    "adp-client",
		password: "adp-secret",
		custom: map[string][]map[string]interface{}{
			"TALENTLMS_API_KEY": {{"value": []interface{}{"lms-key"}}},
			"TALENTLMS_DOMAIN":  {{"value": "acme"}},
			"ADP_CLIENT_ID":     {{"value": []interface{}{""}}},
		},
	}

	got := fromKeeperRecord(r)

	assert.Equal(t, "lms-key", got["TALENTLMS_API_KEY"])
	assert.Equal(t, "acme", got["TALENTLMS_DOMAIN"])
	assert.Equal(t, "adp-client", got["ADP_CLIENT_ID"])
	assert.Equal(t, "adp-secret", got["ADP_CLIENT_SECRET"])
}

func TestFromKeeperMissingConfig(t *testing.T) {
	_, err := FromKeeper("", "")
	assert.ErrorIs(t, err, apperr.ErrConfig)
}

func TestFetch(t *testing.T) {
	got, err := Fetch(context.Background(), config.SecretsConfig{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Fetch(context.Background(), config.SecretsConfig{Source: "vault"})
	assert.ErrorIs(t, err, apperr.ErrConfig)
}
