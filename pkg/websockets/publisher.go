package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// PostToConnectionAPI is the part of the API Gateway management client used here.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher pushes messages through the API Gateway WebSocket API.
type DefaultPublisher struct {
	store       ConnectionLister
	connManager ConnectionManager
	apiGwClient PostToConnectionAPI
}

// NewPublisher creates a DefaultPublisher that posts to apiEndpoint.
func NewPublisher(cfg aws.Config, store ConnectionLister, connManager ConnectionManager, apiEndpoint string) *DefaultPublisher {
	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})
	return NewPublisherWithClient(store, connManager, apiGwClient)
}

// NewPublisherWithClient creates a DefaultPublisher around an existing client.
func NewPublisherWithClient(store ConnectionLister, connManager ConnectionManager, client PostToConnectionAPI) *DefaultPublisher {
	return &DefaultPublisher{
		store:       store,
		connManager: connManager,
		apiGwClient: client,
	}
}

var _ Publisher = (*DefaultPublisher)(nil)

// Publish sends a message to its addressee's connections, or to every
// connection when the message has no addressee. Stale connections are removed.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	var (
		connectionIDs []string
		err           error
	)
	if message.UserID != "" {
		connectionIDs, err = p.store.GetUserConnections(ctx, message.UserID)
	} else {
		connectionIDs, err = p.store.GetAllConnections(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to get connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			slog.Info("stale connection found, deleting", "connectionId", connectionID)
			if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
				slog.Error("failed to delete stale connection", "error", err)
			}
		} else {
			slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
		}
	}

	return nil
}
