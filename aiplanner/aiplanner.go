package aiplanner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"app/models"
)

const geminiModel = "gemini-1.5-pro-latest"

const systemPrompt = `You are a beauty tourism consultant. Generate a schedule using ONLY the provided real activities.

CRITICAL RULES:
- Use ONLY activityId values from the provided available activities list
- Day 1: Focus on consultations and planning
- Day 2+: Main treatments and procedures
- Final day: Follow-ups and recovery activities
- Schedule items during business hours when possible
- Use realistic time slots and durations
- Each activityId must match exactly from the available activities

OUTPUT FORMAT:
- activityId: Must be exact match from available activities
- scheduledTime: Format as "HH:MM" (e.g., "09:00", "14:30")
- duration: Format as "1h", "2h", "30min", etc.
- status: Always "planned"
- notes: Brief description or special instructions`

// Planner produces free-text schedule drafts with Gemini, constrained to
// real catalog activities. It is independent of the scheduling engine; the
// engine's structured pipeline never calls it.
type Planner struct {
	apiKey string
}

// New builds a planner for the given API key.
func New(apiKey string) *Planner {
	return &Planner{apiKey: apiKey}
}

// Draft asks Gemini for a schedule over the provided activity pool and
// validates every returned activity id against it. The caller should fall
// back to FallbackDraft on error.
func (p *Planner) Draft(ctx context.Context, req *models.TripRequest, pool []models.ActivityCandidate) (*models.AIDraftSchedule, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("no available activities provided")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(systemPrompt+"\n\n"+BuildPrompt(req, pool)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text := strings.TrimSpace(fmt.Sprint(resp.Candidates[0].Content.Parts[0]))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var draft models.AIDraftSchedule
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}

	ValidateDraft(&draft, pool)
	return &draft, nil
}

// BuildPrompt renders the trip details and activity list into the request
// prompt.
func BuildPrompt(req *models.TripRequest, pool []models.ActivityCandidate) string {
	var activities strings.Builder
	for _, act := range pool {
		fmt.Fprintf(&activities, "- %s: %s at %s ($%.0f, %s, Hours: %s)\n",
			act.ActivityID, act.Name, act.Location.Name, act.Price.Amount, act.Theme, FormatHours(act.WorkingHours))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a beauty tourism schedule using ONLY the provided real activities.\n\n")
	fmt.Fprintf(&b, "TRIP DETAILS:\n")
	fmt.Fprintf(&b, "- Region: %s\n", req.Region)
	fmt.Fprintf(&b, "- Dates: %s to %s\n", req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "- Themes: %s\n", strings.Join(req.Themes, ", "))
	fmt.Fprintf(&b, "- Budget: $%.0f USD\n", req.Budget)
	fmt.Fprintf(&b, "- Solution Type: %s\n", req.SolutionType)
	if req.SpecialRequests != "" {
		fmt.Fprintf(&b, "- Special Requests: %s\n", req.SpecialRequests)
	}
	fmt.Fprintf(&b, "\nAVAILABLE ACTIVITIES (use activityId exactly as shown):\n%s", activities.String())
	fmt.Fprintf(&b, "\nIMPORTANT:\n")
	fmt.Fprintf(&b, "- activityId must match exactly from the available activities list\n")
	fmt.Fprintf(&b, "- scheduledTime should be in HH:MM format (e.g., \"09:00\", \"14:30\")\n")
	fmt.Fprintf(&b, "- duration should be like \"1h\", \"2h\", \"30min\"\n")
	fmt.Fprintf(&b, "- Only use activities that are provided in the list above\n")
	return b.String()
}

// FormatHours summarizes a weekly table as the typical weekday window.
func FormatHours(hours models.WorkingHours) string {
	if len(hours) == 0 {
		return "Not specified"
	}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		if h, ok := hours[day]; ok && h.IsOpen && h.OpenTime != "" && h.CloseTime != "" {
			return h.OpenTime + "-" + h.CloseTime
		}
	}
	return "Varies by day"
}

// ValidateDraft replaces activity ids that do not exist in the pool with
// the first available activity, annotating the item.
func ValidateDraft(draft *models.AIDraftSchedule, pool []models.ActivityCandidate) {
	valid := make(map[string]bool, len(pool))
	for _, act := range pool {
		valid[act.ActivityID] = true
	}
	for di := range draft.Schedule {
		for ii := range draft.Schedule[di].Items {
			item := &draft.Schedule[di].Items[ii]
			if valid[item.ActivityID] {
				continue
			}
			item.ActivityID = pool[0].ActivityID
			item.Notes = strings.TrimSpace(item.Notes + " (Activity ID corrected)")
		}
	}
}

// FallbackDraft returns the placeholder draft used when generation fails.
func FallbackDraft() *models.AIDraftSchedule {
	customPrice := 200.0
	return &models.AIDraftSchedule{
		Schedule: []models.ScheduleDay{{
			Date:      time.Now().Format("2006-01-02"),
			DayNumber: 1,
			Items: []models.ScheduleItem{{
				ActivityID:    "fallback_activity_001",
				ScheduledTime: "09:00",
				Duration:      "2h",
				Status:        models.ItemPlanned,
				Notes:         "Comprehensive consultation and planning",
				CustomPrice:   &customPrice,
			}},
			Notes: "Schedule generation failed - showing fallback data",
		}},
	}
}
