package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"tripweave/planner"
)

type AIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI() {
	model := os.Getenv("HF_MODEL")
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}

	aiClient = &AIClient{
		apiKey: os.Getenv("HUGGINGFACE_API_KEY"),
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if aiClient.apiKey != "" {
		fmt.Println("✅ AI (HuggingFace) initialized with model:", model)
	} else {
		fmt.Println("⚠️  HUGGINGFACE_API_KEY not set — trip summaries will use fallback text")
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// SummarizePlan asks the model for a short narrative of the composed
// day-by-day plan. Purely decorative: the itinerary is already final when
// this runs, and any failure falls back to a generated line.
func (c *AIClient) SummarizePlan(plan planner.Plan) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("huggingface API key not configured")
	}

	reqBody := hfRequest{
		Inputs: buildPlanPrompt(plan),
		Parameters: hfParameters{
			MaxNewTokens:   300,
			Temperature:    0.6,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.model)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == 503 {
		return "", fmt.Errorf("AI model is loading, please retry in a few seconds")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HuggingFace API error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %v", err)
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", fmt.Errorf("empty response from AI")
	}
	return hfResp[0].GeneratedText, nil
}

func buildPlanPrompt(plan planner.Plan) string {
	prompt := fmt.Sprintf(`[INST] You are a helpful travel assistant. Summarize this %d-day trip to %s for %d traveler(s), total cost $%.0f.

Day-by-day plan:
`, plan.TripDays, plan.Destination.Name, plan.Travelers, plan.TotalCost)

	for _, day := range plan.Days {
		prompt += fmt.Sprintf("Day %d (%s):\n", day.DayIndex+1, day.Date.Format("Mon 02 Jan"))
		for _, it := range day.Items {
			prompt += fmt.Sprintf("  %s %s\n", it.Window.Start.Format("15:04"), it.Title)
		}
	}

	prompt += `
In 120 words or fewer, describe the rhythm of the trip and one highlight per day where possible. Be warm but factual. [/INST]`
	return prompt
}

// FallbackSummary produces a deterministic one-liner when the AI call is
// unavailable.
func FallbackSummary(plan planner.Plan) string {
	activities := 0
	for _, it := range plan.Items {
		if it.Category == planner.CategoryActivity {
			activities++
		}
	}
	note := ""
	if len(plan.Diagnostics.Entries) > 0 {
		note = fmt.Sprintf(" %d planning note(s) attached.", len(plan.Diagnostics.Entries))
	}
	return fmt.Sprintf("%d days in %s with %d scheduled activities. Estimated total $%.0f for %d traveler(s).%s",
		plan.TripDays, plan.Destination.Name, activities, plan.TotalCost, plan.Travelers, note)
}
