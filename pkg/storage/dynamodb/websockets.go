package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	connectionsPartition = "connections"
	connectionsPKIndex   = "pk-index"
	connectionsUserIndex = "user_id-index"
)

// WebSocketConnection represents a record in the WebSocket connections table.
type WebSocketConnection struct {
	ConnectionID string `dynamodbav:"connection_id"`
	PK           string `dynamodbav:"pk"`
	UserID       string `dynamodbav:"user_id,omitempty"`
}

// AddConnection saves a WebSocket connection, tagged with the user who opened it.
func (s *Store) AddConnection(ctx context.Context, connectionID, userID string) error {
	item, err := attributevalue.MarshalMap(WebSocketConnection{
		ConnectionID: connectionID,
		PK:           connectionsPartition,
		UserID:       userID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put connection: %w", err)
	}

	return nil
}

// RemoveConnection deletes a WebSocket connection ID from the database.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"connection_id": connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection key: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	return nil
}

// GetAllConnections retrieves every open connection ID.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	return s.queryConnections(ctx, connectionsPKIndex, "pk", connectionsPartition)
}

// GetUserConnections retrieves the connection IDs opened by one user.
func (s *Store) GetUserConnections(ctx context.Context, userID string) ([]string, error) {
	return s.queryConnections(ctx, connectionsUserIndex, "user_id", userID)
}

func (s *Store) queryConnections(ctx context.Context, index, keyAttr, keyValue string) ([]string, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.WebsocketConnectionsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(keyAttr + " = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: keyValue},
		},
		ProjectionExpression: aws.String("connection_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections table: %w", err)
	}

	var connections []WebSocketConnection
	if err := attributevalue.UnmarshalListOfMaps(items, &connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(connections))
	for i, conn := range connections {
		ids[i] = conn.ConnectionID
	}
	return ids, nil
}
