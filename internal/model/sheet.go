package model

// Question is a single scorable item on a sheet. The canonical form
// carries text and an explicit option list. The legacy index-only form
// arrives without either and is normalized to a fixed A/B/C/D option set
// before the sheet is stored, so the rest of the system only ever sees
// questions with options.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

// Sheet is a test definition: questions, marking weights and time limit.
// Sheets are created whole and never mutated afterward.
type Sheet struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// TimeLimit is in minutes.
	TimeLimit    int     `json:"time_limit"`
	CorrectMarks float64 `json:"correct_marks"`
	// NegativeMarks is stored non-negative and applied as a deduction.
	NegativeMarks float64    `json:"negative_marks"`
	Questions     []Question `json:"questions"`
}

// CreateSheetRequest is the payload for creating a new sheet.
type CreateSheetRequest struct {
	Title         string                  `json:"title" binding:"required,min=1,max=255"`
	Description   string                  `json:"description" binding:"required,max=2000"`
	TimeLimit     int                     `json:"time_limit" binding:"required,min=1,max=480"`
	CorrectMarks  float64                 `json:"correct_marks" binding:"min=0"`
	NegativeMarks float64                 `json:"negative_marks" binding:"min=0"`
	Questions     []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// CreateQuestionRequest is one question inside a CreateSheetRequest.
// Text and options may both be omitted for the legacy index-only form.
type CreateQuestionRequest struct {
	ID            int      `json:"id" binding:"required,min=1"`
	Text          string   `json:"text" binding:"omitempty,max=2000"`
	Options       []string `json:"options" binding:"omitempty,min=2,max=10,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" binding:"omitempty,min=0"`
}

// AnswerKeyEntry maps one question id to its correct option.
type AnswerKeyEntry struct {
	QuestionID    int `json:"question_id" binding:"required,min=1"`
	CorrectOption int `json:"correct_option" binding:"min=0"`
}

// SetAnswerKeyRequest is the payload for supplying an answer key after
// sheet creation, for sheets whose questions omit an embedded answer.
type SetAnswerKeyRequest struct {
	Entries []AnswerKeyEntry `json:"entries" binding:"required,min=1,dive"`
}
