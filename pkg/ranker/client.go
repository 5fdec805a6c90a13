package ranker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bvggies/recommendersystem/pkg/utils"

	"go.uber.org/zap"
)

const systemPrompt = "You are a travel recommendation system. " +
	`Answer only with a JSON object of the form {"trip_ids": ["<id>", ...]} listing trip ids best first.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type ranking struct {
	TripIDs []string `json:"trip_ids"`
}

type Client struct {
	cfg        utils.RankerConfig
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg utils.RankerConfig, log *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        log.With(zap.String("client", "ranker")),
	}
}

// Rank performs one call bounded by the configured timeout.
func (c *Client) Rank(ctx context.Context, req *Request) ([]string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, ErrUnavailable.Wrap(fmt.Errorf("marshal ranking request: %w", err))
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, ErrUnavailable.Wrap(fmt.Errorf("build ranking request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ErrUnavailable.Wrap(fmt.Errorf("call ranking service: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, ErrUnavailable.Wrap(fmt.Errorf("read ranking response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrUnavailable.Wrap(fmt.Errorf("ranking service returned status %d", resp.StatusCode))
	}

	ids, err := parseRanking(body)
	if err != nil {
		return nil, ErrUnavailable.Wrap(err)
	}

	c.log.Debug("Ranking received",
		zap.Int("candidates", len(req.Candidates)),
		zap.Int("ranked", len(ids)),
		zap.Duration("duration", time.Since(start)),
	)
	return ids, nil
}

// parseRanking accepts exactly one JSON object with a non-empty trip_ids list
// as the message content; anything else is rejected as a whole.
func parseRanking(body []byte) ([]string, error) {
	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New("completion has no choices")
	}

	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(chat.Choices[0].Message.Content)))
	dec.DisallowUnknownFields()

	var r ranking
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode ranking content: %w", err)
	}
	if dec.More() {
		return nil, errors.New("trailing data after ranking object")
	}
	if len(r.TripIDs) == 0 {
		return nil, errors.New("ranking has no trip ids")
	}
	return r.TripIDs, nil
}

func buildPrompt(req *Request) string {
	var b strings.Builder

	b.WriteString("Rank the available trips for this passenger.\n\n")
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Fare range: %.2f - %.2f\n", req.FareMin, req.FareMax)

	history, _ := json.Marshal(req.History)
	fmt.Fprintf(&b, "- Previous bookings: %s\n", history)

	routes := "None"
	if len(req.PreferredRoutes) > 0 {
		routes = strings.Join(req.PreferredRoutes, ", ")
	}
	fmt.Fprintf(&b, "- Preferred routes: %s\n\n", routes)

	b.WriteString("Available trips:\n")
	for i, c := range req.Candidates {
		vehicle := c.VehicleType
		if vehicle == "" {
			vehicle = "unknown"
		}
		fmt.Fprintf(&b, "%d. id=%s %s to %s, fare %.2f, rating %.1f, vehicle %s, departure %s\n",
			i+1, c.ID, c.Origin, c.Destination, c.Fare, c.Rating, vehicle, c.Departure.Format(time.RFC3339))
	}

	b.WriteString("\nConsider price, rating, vehicle comfort, departure time and the preferences above. ")
	b.WriteString(`Return {"trip_ids": [...]} using only ids from the list.`)
	return b.String()
}
