package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Interactive terminal client for a running assistant instance. Keeps
// the session id between turns so the server-side memory applies.
type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type queryResponse struct {
	SessionID        string `json:"session_id"`
	Answer           string `json:"answer"`
	Response         string `json:"response"`
	DetectedLanguage string `json:"detected_language"`
	Citations        []struct {
		Source string `json:"source"`
		Page   string `json:"page"`
	} `json:"citations"`
	DocumentsUsed    int   `json:"documents_used"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

func main() {
	var (
		baseURL string
		bot     string
	)
	flag.StringVar(&baseURL, "url", "http://localhost:3000/api", "API base URL")
	flag.StringVar(&bot, "bot", "assistant", "assistant | drugbot")
	flag.Parse()

	endpoint := baseURL + "/assistant/query"
	if bot == "drugbot" {
		endpoint = baseURL + "/drugbot/query"
	}

	color.Cyan("Grant Assistant CLI (%s)", bot)
	color.Cyan("Type a question, or 'exit' to quit.\n")

	scanner := bufio.NewScanner(os.Stdin)
	sessionID := ""

	for {
		color.Set(color.FgYellow)
		fmt.Print("you> ")
		color.Unset()

		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		res, err := ask(endpoint, query, sessionID)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		sessionID = res.SessionID

		answer := res.Answer
		if answer == "" {
			answer = res.Response
		}
		color.Green("\n%s\n", answer)

		if len(res.Citations) > 0 {
			color.White("Sources:")
			for _, c := range res.Citations {
				color.White("  - %s (%s)", c.Source, c.Page)
			}
		}
		color.HiBlack("[lang=%s docs=%d %dms session=%s]\n",
			res.DetectedLanguage, res.DocumentsUsed, res.ProcessingTimeMs, res.SessionID)
	}
}

func ask(endpoint, query, sessionID string) (*queryResponse, error) {
	payload, _ := json.Marshal(queryRequest{Query: query, SessionID: sessionID})

	resp, err := http.Post(endpoint, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("bad response: %s", string(body))
	}
	if !env.Success {
		return nil, fmt.Errorf("%s", env.Message)
	}

	var res queryResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
