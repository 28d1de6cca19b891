package secrets

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	json "github.com/goccy/go-json"

	"adp-lms-sync/internal/apperr"
)

type secretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// FromAWS reads a JSON object secret from AWS Secrets Manager using the
// default credential chain. Keys outside Keys are ignored.
func FromAWS(ctx context.Context, secretID string) (map[string]string, error) {
	if strings.TrimSpace(secretID) == "" {
		return nil, apperr.New(apperr.CodeConfig, "secrets: aws", "missing env AWS_SECRET_ID")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfig, "secrets: aws", err)
	}
	return fromAWS(ctx, secretsmanager.NewFromConfig(cfg), secretID)
}

func fromAWS(ctx context.Context, api secretValueAPI, secretID string) (map[string]string, error) {
	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeAuth, "secrets: aws get "+secretID, err)
	}

	raw := aws.ToString(out.SecretString)
	if raw == "" {
		return nil, apperr.Newf(apperr.CodeConfig, "secrets: aws", "secret %s has no string value", secretID)
	}

	var all map[string]string
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, apperr.Wrap(apperr.CodeConfig, "secrets: aws decode "+secretID, err)
	}

	values := make(map[string]string, len(all))
	for k, v := range all {
		if isKnownKey(k) && strings.TrimSpace(v) != "" {
			values[k] = v
		}
	}
	return values, nil
}
