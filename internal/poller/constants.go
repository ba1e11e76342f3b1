package poller

import "time"

// Settlement timing. The worker wakes early (standby), re-schedules close to
// the boundary, and fires shortly after it so the backend has settled the
// hour before the priority refresh lands.
const (
	SettlementStandbyThreshold = 10 * time.Minute
	SettlementStandbyLead      = 5 * time.Minute
	SettlementFireGrace        = 2 * time.Second
	SettlementJitterTolerance  = 1 * time.Second
)

// DispatchRetryDelay is how long a task waits before re-arming after the
// worker queue rejected its fetch job.
const DispatchRetryDelay = 2 * time.Second

// Log messages
const (
	LogMsgPollerStarted       = "Poller started"
	LogMsgPollerStopped       = "Poller stopped"
	LogMsgTaskEnabled         = "Poll task enabled"
	LogMsgTaskDisabled        = "Poll task disabled"
	LogMsgTriggerCoalesced    = "Poll trigger coalesced, fetch already in flight"
	LogMsgDispatchRejected    = "Fetch job rejected by worker queue"
	LogMsgEventPublishFailed  = "Event publish failed"
	LogMsgUnauthorizedHalt    = "Backend rejected credentials, polling halted"
	LogMsgPollingResumed      = "Polling resumed"
	LogMsgSettlementStandby   = "Settlement worker on standby"
	LogMsgSettlementApproach  = "Settlement boundary approaching"
	LogMsgSettlementTriggered = "Settlement boundary reached, priority refresh fired"
)

// Error classes for fetch failure metrics.
const (
	ErrorClassTransport    = "transport"
	ErrorClassUnauthorized = "unauthorized"
	ErrorClassBusiness     = "business"
	ErrorClassDecode       = "decode"
	ErrorClassUnknown      = "unknown"
)
