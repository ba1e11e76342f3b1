package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/normalize"
)

// FetchResourceStats returns per-kind balances, the wallet summary and the
// lifetime output counter.
func (c *Client) FetchResourceStats(ctx context.Context) (*domain.ResourceStats, error) {
	raw, err := c.getRaw(ctx, PathResourceStats, nil)
	if err != nil {
		return nil, err
	}
	stats := normalize.Stats(raw)
	return &stats, nil
}

// FetchInventory returns the full inventory snapshot. Category filters the
// listing server-side; includePrices asks the backend to appraise values.
func (c *Client) FetchInventory(ctx context.Context, category string, includePrices bool) (*domain.InventorySnapshot, error) {
	query := url.Values{}
	query.Set(QueryParamCategory, category)
	if includePrices {
		query.Set(QueryParamIncludePrices, "true")
	}
	raw, err := c.getRaw(ctx, PathInventory, query)
	if err != nil {
		return nil, err
	}
	snapshot := normalize.Inventory(raw, time.Now().Unix())
	return &snapshot, nil
}

// FetchWallet returns the TDB/YLD balances.
func (c *Client) FetchWallet(ctx context.Context) (*domain.Wallet, error) {
	raw, err := c.getRaw(ctx, PathWallet, nil)
	if err != nil {
		return nil, err
	}
	wallet := normalize.Wallet(raw)
	return &wallet, nil
}

// FetchSessions returns all of the user's mining sessions.
func (c *Client) FetchSessions(ctx context.Context) ([]domain.MiningSession, error) {
	list, err := c.getRawList(ctx, PathSessions, nil)
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.MiningSession, 0, len(list))
	for _, entry := range list {
		sessions = append(sessions, normalize.Session(entry))
	}
	return sessions, nil
}

// FetchTools returns the user's tools with durability and status.
func (c *Client) FetchTools(ctx context.Context) ([]domain.Tool, error) {
	list, err := c.getRawList(ctx, PathToolStats, nil)
	if err != nil {
		return nil, err
	}
	tools := make([]domain.Tool, 0, len(list))
	for _, entry := range list {
		tools = append(tools, normalize.Tool(entry))
	}
	return tools, nil
}

// getRaw fetches and decodes a single-object payload.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) (normalize.Raw, error) {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, path, err)
	}
	return normalize.Raw(raw), nil
}

// getRawList fetches and decodes a list payload. The backend emits both a
// bare JSON array and an {"items": [...]} wrapper depending on endpoint age.
func (c *Client) getRawList(ctx context.Context, path string, query url.Values) ([]normalize.Raw, error) {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err == nil {
		return toRawList(entries), nil
	}

	var wrapped struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, path, err)
	}
	return toRawList(wrapped.Items), nil
}

func toRawList(entries []map[string]any) []normalize.Raw {
	out := make([]normalize.Raw, 0, len(entries))
	for _, entry := range entries {
		out = append(out, normalize.Raw(entry))
	}
	return out
}
