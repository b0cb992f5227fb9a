package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SlackNotifier sends alerts to a Slack webhook.
type SlackNotifier struct {
	webhookURL string
	channel    string
	client     *http.Client
}

// NewSlackNotifier creates a Slack webhook notifier.
func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) Send(ctx context.Context, alert Alert) error {
	color := "#ff9900" // orange
	if alert.Level == AlertCritical {
		color = "#ff0000" // red
	}

	payload := slackPayload{
		Channel: s.channel,
		Attachments: []slackAttachment{
			{
				Color: color,
				Title: fmt.Sprintf("Cloud Cost Optimizer: budget %s", string(alert.Level)),
				Fields: []slackField{
					{Title: "Project", Value: alert.ProjectName, Short: true},
					{Title: "Budget", Value: fmt.Sprintf("INR %d", alert.BudgetINR), Short: true},
					{Title: "Monthly Cost", Value: fmt.Sprintf("INR %.0f", alert.MonthlyCost), Short: true},
					{Title: "Variance", Value: fmt.Sprintf("INR %.0f", alert.VarianceINR), Short: true},
					{Title: "Identified Savings", Value: fmt.Sprintf("INR %d", alert.SavingsINR), Short: true},
				},
				Footer: "Cloud Cost Optimizer",
				Ts:     time.Now().Unix(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send slack alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}
	return nil
}

type slackPayload struct {
	Channel     string            `json:"channel,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	Ts     int64        `json:"ts"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}
