package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	sc "github.com/dmitrijs2005/softhub/internal/server/config"
	"github.com/dmitrijs2005/softhub/internal/server/models"
)

type messageSender interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newSQSClientFromConfig = func(cfg aws.Config, optFns ...func(*sqs.Options)) messageSender {
		return sqs.NewFromConfig(cfg, optFns...)
	}
)

type SQSNotifier struct {
	client   messageSender
	queueURL string
}

// NewSQSNotifier builds an SQS client sharing the region and static
// credentials of the S3 mirror settings.
func NewSQSNotifier(ctx context.Context, c *sc.Config) (*SQSNotifier, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.S3Region)}
	if c.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.S3AccessKey, c.S3SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newSQSClientFromConfig(cfg, func(o *sqs.Options) {
		if c.SQSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.SQSBaseEndpoint)
		}
	})

	return &SQSNotifier{client: client, queueURL: c.SQSQueueURL}, nil
}

func (n *SQSNotifier) SoftwareUploaded(ctx context.Context, record models.SoftwareRecord) error {
	body, err := json.Marshal(newUploadEvent(record))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventSoftwareUploaded),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", n.queueURL, err)
	}
	return nil
}
