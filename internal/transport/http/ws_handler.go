package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"chaining-quiz-service/internal/app"
	"chaining-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type WSHandler struct {
	service  *app.PlacementService
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PlacementService, log logrus.FieldLogger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type indexPayload struct {
	Index int `json:"index"`
}

type selectPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one placement
// play-through per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("lang")
	userID := r.URL.Query().Get("userId")
	if language == "" || userID == "" {
		http.Error(w, "missing lang or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	view, err := h.service.Start(ctx, language, userID)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	log := h.log.WithField("session_id", view.SessionID)
	// Closing the socket early abandons the play-through.
	defer h.service.Abandon(ctx, view.SessionID)

	if !h.writeView(conn, log, view) {
		return
	}

	for view.Result == nil {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("ws read ended")
			}
			return
		}

		next, err := h.dispatch(r, view.SessionID, inbound)
		if err != nil {
			if errors.Is(err, errBadPayload) || app.IsClientError(err) {
				log.WithError(err).WithField("message_type", inbound.Type).Debug("rejected client message")
			} else {
				log.WithError(err).Error("placement action failed")
			}
			if !h.writeError(conn, err) {
				return
			}
			if next.SessionID == "" {
				continue
			}
		}
		view = next
		if !h.writeView(conn, log, view) {
			return
		}
	}
}

var (
	errBadPayload  = errors.New("invalid payload")
	errUnsupported = errors.New("unsupported message type")
)

func (h *WSHandler) dispatch(r *http.Request, sessionID string, inbound inboundMessage) (domain.SessionView, error) {
	ctx := r.Context()
	switch inbound.Type {
	case "pick", "unpick":
		var payload indexPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return domain.SessionView{}, errBadPayload
		}
		if inbound.Type == "pick" {
			return h.service.Pick(ctx, sessionID, payload.Index)
		}
		return h.service.Unpick(ctx, sessionID, payload.Index)
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return domain.SessionView{}, errBadPayload
		}
		return h.service.Select(ctx, sessionID, payload.Option)
	case "reset":
		return h.service.Reset(ctx, sessionID)
	case "submit":
		return h.service.Submit(ctx, sessionID)
	default:
		return domain.SessionView{}, errUnsupported
	}
}

// writeView sends the state snapshot, followed by the result once scored.
func (h *WSHandler) writeView(conn *websocket.Conn, log logrus.FieldLogger, view domain.SessionView) bool {
	if err := conn.WriteJSON(outboundMessage[domain.SessionView]{Type: "state", Payload: view}); err != nil {
		log.WithError(err).Warn("ws write error")
		return false
	}
	if view.Result == nil {
		return true
	}
	if err := conn.WriteJSON(outboundMessage[domain.ScoreResult]{Type: "result", Payload: *view.Result}); err != nil {
		log.WithError(err).Warn("ws write error")
		return false
	}
	return true
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) bool {
	msg := outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: clientMessage(err)}}
	return conn.WriteJSON(msg) == nil
}

// clientMessage hides store failures behind a generic message.
func clientMessage(err error) string {
	if errors.Is(err, errBadPayload) || errors.Is(err, errUnsupported) || app.IsClientError(err) {
		return err.Error()
	}
	return "internal error"
}
