package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/normalize"
)

// StartSessionRequest begins mining on a land with the given tools.
type StartSessionRequest struct {
	LandID       string   `json:"land_id" validate:"required"`
	ToolIDs      []string `json:"tool_ids" validate:"required,min=1,dive,required"`
	ResourceKind string   `json:"resource_kind" validate:"required,oneof=wood iron stone grain seed brick yld"`
}

// SynthesizeRequest asks the backend to craft a new tool from resources.
type SynthesizeRequest struct {
	Kind     string `json:"tool_type" validate:"required,oneof=pickaxe axe hoe"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CollectResult is the outcome of a collect or stop command.
type CollectResult struct {
	SessionID string  `json:"session_id"`
	Collected float64 `json:"collected"`
}

// StartSession validates and submits the start command, returning the
// created session.
func (c *Client) StartSession(ctx context.Context, req StartSessionRequest) (*domain.MiningSession, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	data, err := c.post(ctx, PathSessionStart, req)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, PathSessionStart, err)
	}
	session := normalize.Session(normalize.Raw(raw))
	return &session, nil
}

// StopSession ends the session; any pending output is settled server-side
// and reported back.
func (c *Client) StopSession(ctx context.Context, sessionID string) (*CollectResult, error) {
	return c.sessionCommand(ctx, PathSessionStop, sessionID)
}

// CollectSession collects pending output without ending the session.
func (c *Client) CollectSession(ctx context.Context, sessionID string) (*CollectResult, error) {
	return c.sessionCommand(ctx, PathSessionCollect, sessionID)
}

func (c *Client) sessionCommand(ctx context.Context, path, sessionID string) (*CollectResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}
	body := map[string]string{"session_id": sessionID}
	data, err := c.post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, path, err)
	}
	// Collected amount carries the same alias history as session output.
	r := normalize.Apply(normalize.Raw(raw), normalize.Table{
		{Canonical: "session_id", Aliases: []string{"session_id", "id"}},
		{Canonical: "collected", Aliases: []string{"collected_amount", "collected", "amount"}},
	})
	return &CollectResult{
		SessionID: normalize.Str(r["session_id"]),
		Collected: normalize.Number(r["collected"]),
	}, nil
}

// SynthesizeTool validates and submits a tool synthesis command.
func (c *Client) SynthesizeTool(ctx context.Context, req SynthesizeRequest) ([]domain.Tool, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	data, err := c.post(ctx, PathSynthesize, req)
	if err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, PathSynthesize, err)
	}
	tools := make([]domain.Tool, 0, len(entries))
	for _, entry := range entries {
		tools = append(tools, normalize.Tool(normalize.Raw(entry)))
	}
	return tools, nil
}
