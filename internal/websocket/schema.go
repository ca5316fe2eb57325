package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionSubmit Action = "submit"
	ActionState  Action = "state"
	ActionPing   Action = "ping"
)

// RequestPayload covers every client action; fields beyond Action are
// only read for the actions that need them.
type RequestPayload struct {
	Action         Action `json:"action"`
	QuestionID     int    `json:"question_id,omitempty"`
	SelectedOption *int   `json:"selected_option,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError   Event = "error"
	EventSuccess Event = "success"
	EventGraded  Event = "graded"
	EventState   Event = "state"
	EventPong    Event = "pong"
)

// AnswerSavedResponse acknowledges a recorded answer.
type AnswerSavedResponse struct {
	Event    Event  `json:"event"`
	Status   string `json:"status"`
	Answered int    `json:"answered"`
}

// GradedResponse carries the final scores after submission.
type GradedResponse struct {
	Event   Event   `json:"event"`
	Status  string  `json:"status"`
	Score   float64 `json:"score"`
	Percent int     `json:"percent"`
}

// StateResponse is the countdown snapshot for rendering the timer.
type StateResponse struct {
	Event            Event   `json:"event"`
	RemainingSeconds float64 `json:"remaining_seconds"`
	Answered         int     `json:"answered"`
	Submitted        bool    `json:"submitted"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
