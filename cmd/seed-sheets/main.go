// Command seed-sheets posts a couple of demo sheets against a running
// server. Storage is in-process, so seeding goes through the public API
// rather than a database connection.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sheetwise/sheetwise-backend/internal/config"
	"github.com/sheetwise/sheetwise-backend/internal/logger"
	"github.com/sheetwise/sheetwise-backend/internal/model"
)

func intPtr(v int) *int { return &v }

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.ServerPort
	}

	sheets := []model.CreateSheetRequest{
		{
			Title:         "General Knowledge Warm-Up",
			Description:   "Five quick questions, no negative marking.",
			TimeLimit:     10,
			CorrectMarks:  1,
			NegativeMarks: 0,
			Questions: []model.CreateQuestionRequest{
				{ID: 1, Text: "Which planet is closest to the sun?", Options: []string{"Venus", "Mercury", "Mars", "Earth"}, CorrectAnswer: intPtr(1)},
				{ID: 2, Text: "How many continents are there?", Options: []string{"five", "six", "seven", "eight"}, CorrectAnswer: intPtr(2)},
				{ID: 3, Text: "What is the chemical symbol for water?", Options: []string{"H2O", "CO2", "NaCl", "O2"}, CorrectAnswer: intPtr(0)},
				{ID: 4, Text: "Which ocean is the largest?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectAnswer: intPtr(3)},
				{ID: 5, Text: "How many sides does a hexagon have?", Options: []string{"five", "six", "seven"}, CorrectAnswer: intPtr(1)},
			},
		},
		{
			Title:         "Legacy Bubble Sheet",
			Description:   "Index-only questions with A-D choices and negative marking.",
			TimeLimit:     15,
			CorrectMarks:  4,
			NegativeMarks: 1,
			Questions: []model.CreateQuestionRequest{
				{ID: 1, CorrectAnswer: intPtr(0)},
				{ID: 2, CorrectAnswer: intPtr(3)},
				{ID: 3, CorrectAnswer: intPtr(1)},
				{ID: 4, CorrectAnswer: intPtr(2)},
			},
		},
	}

	client := &http.Client{Timeout: 10 * time.Second}

	fmt.Printf("=== Seeding %d Sheets ===\n", len(sheets))

	for _, sheet := range sheets {
		body, err := json.Marshal(sheet)
		if err != nil {
			log.Fatal().Err(err).Msg("Marshal sheet")
		}

		resp, err := client.Post(baseURL+"/sheets", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatal().Err(err).Str("base_url", baseURL).Msg("POST /sheets failed")
		}
		if resp.StatusCode != http.StatusOK {
			log.Fatal().Int("status", resp.StatusCode).Str("title", sheet.Title).Msg("Seed rejected")
		}
		resp.Body.Close()

		fmt.Printf("  seeded: %s\n", sheet.Title)
	}

	fmt.Println("Done.")
}
