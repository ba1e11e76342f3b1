package worker

// Log messages
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerPoolFull   = "Worker queue full, job dropped"
	LogMsgWorkerPoolClosed = "Worker pool stopped"
)

// Defaults
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 32
)
