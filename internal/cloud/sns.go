package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient wraps AWS SNS for violation alert fan-out.
type SNSClient struct {
	svc      *sns.Client
	topicArn string
	ctx      context.Context
}

func NewSNSClient(region, topicArn string) (*SNSClient, error) {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
		ctx:      ctx,
	}, nil
}

// SendAlert publishes a message to the alert topic.
func (c *SNSClient) SendAlert(subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	_, err := c.svc.Publish(c.ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	return nil
}

// SendViolationAlert formats and publishes a flow-rule violation.
func (c *SNSClient) SendViolationAlert(canalID string, flowRate, minFlow, maxFlow float64) error {
	subject := fmt.Sprintf("Irrigation Alert: Flow Violation on %s", canalID)
	message := fmt.Sprintf(
		"Flow Rule Violation\n\n"+
			"Canal: %s\n"+
			"Flow Rate: %.2f L/min\n"+
			"Allowed Range: %.2f - %.2f L/min\n"+
			"Time: %s\n\n"+
			"Please investigate the canal supply.",
		canalID,
		flowRate,
		minFlow,
		maxFlow,
		time.Now().Format(time.RFC3339),
	)

	return c.SendAlert(subject, message)
}
