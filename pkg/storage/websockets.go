package storage

import "context"

// WebSocketManager stores the API Gateway WebSocket connections that receive
// reservation updates.
type WebSocketManager interface {
	// AddConnection records a connection. userID may be empty for anonymous clients.
	AddConnection(ctx context.Context, connectionID, userID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
	// GetUserConnections returns the connections opened by userID.
	GetUserConnections(ctx context.Context, userID string) ([]string, error)
}
