package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

type cloudWatchLogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsWriter ships each written log line to a CloudWatch Logs stream.
// It implements io.Writer so it can be tee'd into the zap core.
type CloudWatchLogsWriter struct {
	mu            sync.Mutex
	client        cloudWatchLogsAPI
	logGroupName  string
	logStreamName string
	sequenceToken *string
}

// NewCloudWatchLogsWriter creates the log group (if missing) and a fresh stream for service.
func NewCloudWatchLogsWriter(ctx context.Context, service string) (*CloudWatchLogsWriter, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	group := os.Getenv("CLOUDWATCH_LOG_GROUP")
	if group == "" {
		group = "/storefront/services"
	}
	stream := fmt.Sprintf("%s-%d", service, time.Now().Unix())

	return newCloudWatchLogsWriter(ctx, cloudwatchlogs.NewFromConfig(cfg), group, stream)
}

func newCloudWatchLogsWriter(ctx context.Context, api cloudWatchLogsAPI, group, stream string) (*CloudWatchLogsWriter, error) {
	w := &CloudWatchLogsWriter{client: api, logGroupName: group, logStreamName: stream}

	_, err := api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: aws.String(group)})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return nil, fmt.Errorf("failed to ensure log group: %w", err)
		}
	}

	_, err = api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create log stream: %w", err)
	}

	return w, nil
}

// Write implements io.Writer. Delivery failures go to stderr and never fail the write.
func (w *CloudWatchLogsWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	out, err := w.client.PutLogEvents(context.Background(), &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(w.logGroupName),
		LogStreamName: aws.String(w.logStreamName),
		SequenceToken: w.sequenceToken,
		LogEvents: []types.InputLogEvent{{
			Message:   aws.String(string(p)),
			Timestamp: aws.Int64(time.Now().UnixMilli()),
		}},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "CloudWatch write error: %v\n", err)
		return len(p), nil
	}
	w.sequenceToken = out.NextSequenceToken
	return len(p), nil
}
