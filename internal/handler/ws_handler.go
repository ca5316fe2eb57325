package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sheetwise/sheetwise-backend/internal/service"
	ws "github.com/sheetwise/sheetwise-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a live attempt: answer capture, countdown state and
// submission over a single connection.
type WSHandler struct {
	attemptService *service.AttemptService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(attemptService *service.AttemptService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		attemptService: attemptService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// AttemptStream godoc
// WS /ws/v1/attempts/:id/stream
// Upgrades to WebSocket for live answer recording and countdown polling.
func (h *WSHandler) AttemptStream(c *gin.Context) {
	attemptID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt ID"})
		return
	}

	attempt, err := h.attemptService.GetByID(c.Request.Context(), attemptID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		return
	}
	if attempt.Submitted() {
		c.JSON(http.StatusConflict, gin.H{"error": "attempt already submitted"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("attempt_id", attemptID).Logger()
	wsLog.Info().Msg("Taker connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionAnswer:
			h.handleAnswer(conn, attemptID, &msg)
		case ws.ActionSubmit:
			if h.handleSubmit(conn, wsLog, attemptID) {
				return
			}
		case ws.ActionState:
			h.handleState(conn, attemptID)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleAnswer upserts one answer for the streamed attempt.
func (h *WSHandler) handleAnswer(conn *websocket.Conn, attemptID int, msg *ws.RequestPayload) {
	if msg.QuestionID == 0 || msg.SelectedOption == nil {
		ws.WriteError(conn, "question_id and selected_option are required")
		return
	}

	attempt, err := h.attemptService.RecordAnswer(context.Background(), attemptID, msg.QuestionID, *msg.SelectedOption)
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}

	ws.WriteTyped(conn, ws.AnswerSavedResponse{
		Event:    ws.EventSuccess,
		Status:   "saved",
		Answered: len(attempt.Answers),
	})
}

// handleSubmit scores the attempt and reports the result. Returns true
// when the stream should end (the attempt reached its terminal state).
func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, attemptID int) bool {
	attempt, err := h.attemptService.Submit(context.Background(), attemptID, nil)
	if err != nil {
		ws.WriteError(conn, err.Error())
		return false
	}

	wsLog.Info().
		Float64("score", *attempt.Score).
		Int("percent", *attempt.Percent).
		Msg("Attempt submitted over stream")

	ws.WriteTyped(conn, ws.GradedResponse{
		Event:   ws.EventGraded,
		Status:  "completed",
		Score:   *attempt.Score,
		Percent: *attempt.Percent,
	})
	return true
}

// handleState reports the countdown snapshot.
func (h *WSHandler) handleState(conn *websocket.Conn, attemptID int) {
	state, err := h.attemptService.State(context.Background(), attemptID)
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}

	ws.WriteTyped(conn, ws.StateResponse{
		Event:            ws.EventState,
		RemainingSeconds: state.RemainingSeconds,
		Answered:         state.Answered,
		Submitted:        state.Submitted,
	})
}
