package backend

import "time"

// Endpoint paths. These are backend contracts, not ours to redesign.
const (
	PathResourceStats  = "/production/resources/stats/"
	PathInventory      = "/production/inventory/"
	PathWallet         = "/wallet/balance/"
	PathSessions       = "/production/mining/sessions/"
	PathSessionStart   = "/production/mining/sessions/start/"
	PathSessionStop    = "/production/mining/sessions/stop/"
	PathSessionCollect = "/production/mining/sessions/collect/"
	PathToolStats      = "/production/tools/stats/"
	PathSynthesize     = "/production/tools/synthesize/"
)

// Query parameter names for the inventory endpoint
const (
	QueryParamCategory      = "category"
	QueryParamIncludePrices = "include_prices"
)

// Client defaults
const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Second
	CacheSize       = 64
)

// Log Messages
const (
	LogMsgRequestCompleted = "Backend request completed"
)
