package metrics

import (
	"context"
	"fmt"
	"os"

	"storefront-service/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
)

// LoadAWSConfig loads the default AWS config. AWS_CLOUDWATCH_ENDPOINT or
// AWS_ENDPOINT point the SDK at LocalStack instead of AWS.
func LoadAWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := os.Getenv("AWS_CLOUDWATCH_ENDPOINT")
	if endpoint == "" {
		endpoint = os.Getenv("AWS_ENDPOINT")
	}
	if endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
		logger.Log.Debug("custom aws endpoint configured",
			zap.String("endpoint", endpoint),
			zap.String("region", cfg.Region),
		)
	}

	return cfg, nil
}
