package config

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM overlays parameters from AWS SSM Parameter Store onto the config
// map. Parameter names below the prefix are normalized to env-style keys, so
// "/sitesmith/openai-api-key" becomes "OPENAI_API_KEY". Values already set in
// the environment are overwritten; the parameter store is the source of truth
// when a prefix is configured.
func LoadSSM(ctx context.Context, config map[string]string, prefix string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := ssm.NewFromConfig(awsCfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, param := range page.Parameters {
			key := normalizeParameterName(aws.ToString(param.Name))
			if key == "" {
				continue
			}
			config[key] = aws.ToString(param.Value)
			loaded++
		}
	}

	log.Info().Int("parameters", loaded).Str("prefix", prefix).Msg("Loaded configuration from SSM Parameter Store")
	return nil
}

func normalizeParameterName(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(base, "-", "_"))
}
