package websockets

import "context"

// NoOpPublisher is a publisher that drops every message. It is used when no
// WebSocket API endpoint is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
