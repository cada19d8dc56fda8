package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler tracks the WebSocket clients that receive reservation and payment
// updates, both behind API Gateway and on the development server.
type Handler struct {
	connManager websockets.ConnectionManager
	hub         *websockets.LocalHub
}

// NewHandler creates a new Handler. hub may be nil when only the API Gateway
// routes are served.
func NewHandler(connManager websockets.ConnectionManager, hub *websockets.LocalHub) *Handler {
	return &Handler{
		connManager: connManager,
		hub:         hub,
	}
}

// HandleConnect records a new API Gateway connection together with the user
// resolved by the route authorizer.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	userID := authorizedUser(request.RequestContext.Authorizer)
	slog.InfoContext(ctx, "client connected", "connection_id", connectionID, "user_id", userID)

	if err := h.connManager.AddConnection(ctx, connectionID, userID); err != nil {
		slog.ErrorContext(ctx, "failed to save connection", "connection_id", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect forgets an API Gateway connection.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.InfoContext(ctx, "client disconnected", "connection_id", connectionID)

	if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
		slog.ErrorContext(ctx, "failed to delete connection", "connection_id", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault acknowledges client messages. Clients only listen.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.DebugContext(ctx, "ignoring client message", "connection_id", request.RequestContext.ConnectionID)
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// authorizedUser reads the principal a Lambda authorizer attached to the
// connect request. Anonymous clients get broadcasts only.
func authorizedUser(authorizer interface{}) string {
	claims, ok := authorizer.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range []string{"principalId", "userId"} {
		if id, ok := claims[key].(string); ok && id != "" {
			return id
		}
	}
	return ""
}

var upgrader = websocket.Upgrader{
	// Local development only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades a development-server request and keeps the connection
// registered with the local hub until the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.Error(w, "websocket hub not configured", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	connectionID := uuid.NewString()
	userID := identity.FromContext(r.Context()).UserID
	slog.InfoContext(r.Context(), "client connected locally", "connection_id", connectionID, "user_id", userID)

	h.hub.Register(connectionID, userID, conn)
	defer func() {
		h.hub.Unregister(connectionID)
		slog.InfoContext(r.Context(), "client disconnected locally", "connection_id", connectionID)
	}()

	// Reading is how a close is detected.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.WarnContext(r.Context(), "unexpected close", "connection_id", connectionID, "error", err)
			}
			return
		}
	}
}
