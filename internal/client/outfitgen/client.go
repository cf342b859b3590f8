// Package outfitgen calls the generation relay and records successful
// generations in the history ledger.
package outfitgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/qiwen5/dressup/internal/client/history"
	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/session"
	"github.com/qiwen5/dressup/internal/common"
	"github.com/qiwen5/dressup/internal/logging"
)

// DefaultTimeout bounds one generation call. Generation is the only
// long-running operation in the client; timing out is a retryable failure
// and never writes to the ledger.
const DefaultTimeout = 60 * time.Second

// MaxPromptLen bounds the generation prompt.
const MaxPromptLen = 500

// Params describes one generation request.
type Params struct {
	Prompt           string         `json:"prompt"`
	CharacterName    string         `json:"characterName,omitempty"`
	AdditionalParams map[string]any `json:"additionalParams,omitempty"`
}

// Result is a finished generation, including the ledger entry written for it.
type Result struct {
	Message     string
	ImageURL    string
	Output      string
	HistoryItem *models.HistoryItem
}

type generateRequest struct {
	Prompt           string         `json:"prompt"`
	CharacterName    string         `json:"characterName"`
	AdditionalParams map[string]any `json:"additionalParams"`
	UserID           string         `json:"userId"`
}

type generateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	Output   string `json:"output"`
	Error    string `json:"error"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	history  *history.Service
	sessions *session.Service
	log      logging.Logger
}

// New builds a relay client. timeout <= 0 falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, hist *history.Service, sessions *session.Service, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		history:  hist,
		sessions: sessions,
		log:      log,
	}
}

// ValidateParams checks p before any network call.
func (c *Client) ValidateParams(p Params) error {
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("prompt is required: %w", common.ErrValidation)
	}
	if len(p.Prompt) > MaxPromptLen {
		return fmt.Errorf("prompt exceeds %d characters: %w", MaxPromptLen, common.ErrValidation)
	}
	return nil
}

// Generate runs one generation for the logged-in user and, on success,
// appends the result to the user's ledger.
func (c *Client) Generate(ctx context.Context, p Params) (*Result, error) {
	if err := c.ValidateParams(p); err != nil {
		return nil, err
	}

	current, err := c.sessions.Current()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no user logged in: %w", common.ErrValidation)
	}

	body, err := json.Marshal(generateRequest{
		Prompt:           p.Prompt,
		CharacterName:    p.CharacterName,
		AdditionalParams: p.AdditionalParams,
		UserID:           current.ID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-outfit", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "generation call failed", "error", err)
		return nil, fmt.Errorf("calling relay: %w: %v", common.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decoding relay response: %w: %v", common.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK || !gr.Success {
		msg := gr.Error
		if msg == "" {
			msg = gr.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		c.log.Warn(ctx, "generation rejected", "status", resp.StatusCode, "error", msg)
		return nil, fmt.Errorf("generation failed: %s: %w", msg, common.ErrUpstream)
	}

	item, err := c.history.Add(history.NewItem{
		UserID:        current.ID,
		Prompt:        p.Prompt,
		ImageURL:      gr.ImageURL,
		CharacterName: p.CharacterName,
		Metadata: map[string]any{
			"parameters": p.AdditionalParams,
			"output":     gr.Output,
		},
	})
	if err != nil {
		// the image was generated; a ledger write failure should not
		// look like a generation failure
		c.log.Error(ctx, "recording generation in history", "error", err)
	}

	return &Result{
		Message:     gr.Message,
		ImageURL:    gr.ImageURL,
		Output:      gr.Output,
		HistoryItem: item,
	}, nil
}

// RegenerateFromHistory replays a past generation by ledger id.
func (c *Client) RegenerateFromHistory(ctx context.Context, historyID string) (*Result, error) {
	current, err := c.sessions.Current()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no user logged in: %w", common.ErrValidation)
	}

	item, err := c.history.ByID(current.ID, historyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("history item %s not found: %w", historyID, common.ErrValidation)
	}

	p := Params{
		Prompt:        item.Prompt,
		CharacterName: item.CharacterName,
	}
	if params, ok := item.Metadata["parameters"].(map[string]any); ok {
		p.AdditionalParams = params
	}
	return c.Generate(ctx, p)
}

// IsRetryable reports whether err is a transient upstream failure the caller
// may retry (timeouts included).
func IsRetryable(err error) bool {
	return errors.Is(err, common.ErrUpstream)
}
