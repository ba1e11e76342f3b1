package poller

import (
	"context"
	"time"

	"github.com/yieldland/minehub/internal/backend"
	"github.com/yieldland/minehub/internal/domain"
)

// Sink receives the outcome of every fetch cycle. The view store implements
// it; tasks never hold view state themselves.
type Sink interface {
	SetWallet(w *domain.Wallet, fetchedAt int64)
	SetResources(r *domain.ResourceStats, fetchedAt int64)
	SetInventory(inv *domain.InventorySnapshot, fetchedAt int64)
	SetSessions(sessions []domain.MiningSession, fetchedAt int64)
	SetTools(tools []domain.Tool, fetchedAt int64)
	SetFailure(source, message string)
}

// SourceConfig binds one data source to its polling interval and fetch.
type SourceConfig struct {
	Name     string
	Interval time.Duration
	Fetch    FetchFunc
}

// Intervals carries the per-source polling cadence, normally taken from
// configuration.
type Intervals struct {
	Wallet    time.Duration
	Resources time.Duration
	Inventory time.Duration
	Sessions  time.Duration
	Tools     time.Duration
}

// BuildSources wires the five standard data sources against the backend
// client and the sink. Each fetch returns the sink write as its apply step,
// so the task discards results of fetches that went stale mid-flight. A
// failed fetch records the failure on the sink and returns the error; it
// never clears the last good value.
func BuildSources(client *backend.Client, sink Sink, clock Clock, intervals Intervals) []SourceConfig {
	return []SourceConfig{
		{
			Name:     domain.SourceWallet,
			Interval: intervals.Wallet,
			Fetch: func(ctx context.Context) (ApplyFunc, error) {
				wallet, err := client.FetchWallet(ctx)
				if err != nil {
					return func() { sink.SetFailure(domain.SourceWallet, err.Error()) }, err
				}
				fetchedAt := clock.Now().Unix()
				return func() { sink.SetWallet(wallet, fetchedAt) }, nil
			},
		},
		{
			Name:     domain.SourceResources,
			Interval: intervals.Resources,
			Fetch: func(ctx context.Context) (ApplyFunc, error) {
				stats, err := client.FetchResourceStats(ctx)
				if err != nil {
					return func() { sink.SetFailure(domain.SourceResources, err.Error()) }, err
				}
				fetchedAt := clock.Now().Unix()
				return func() { sink.SetResources(stats, fetchedAt) }, nil
			},
		},
		{
			Name:     domain.SourceInventory,
			Interval: intervals.Inventory,
			Fetch: func(ctx context.Context) (ApplyFunc, error) {
				snapshot, err := client.FetchInventory(ctx, "", true)
				if err != nil {
					return func() { sink.SetFailure(domain.SourceInventory, err.Error()) }, err
				}
				fetchedAt := clock.Now().Unix()
				return func() { sink.SetInventory(snapshot, fetchedAt) }, nil
			},
		},
		{
			Name:     domain.SourceSessions,
			Interval: intervals.Sessions,
			Fetch: func(ctx context.Context) (ApplyFunc, error) {
				sessions, err := client.FetchSessions(ctx)
				if err != nil {
					return func() { sink.SetFailure(domain.SourceSessions, err.Error()) }, err
				}
				fetchedAt := clock.Now().Unix()
				return func() { sink.SetSessions(sessions, fetchedAt) }, nil
			},
		},
		{
			Name:     domain.SourceTools,
			Interval: intervals.Tools,
			Fetch: func(ctx context.Context) (ApplyFunc, error) {
				tools, err := client.FetchTools(ctx)
				if err != nil {
					return func() { sink.SetFailure(domain.SourceTools, err.Error()) }, err
				}
				fetchedAt := clock.Now().Unix()
				return func() { sink.SetTools(tools, fetchedAt) }, nil
			},
		},
	}
}
