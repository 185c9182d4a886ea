package bootstrap

// Shutdown log messages
const (
	LogMsgShuttingDownServer    = "Shutting down application"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgServerStopped         = "Application stopped"
	LogMsgServiceShutdownFailed = " service shutdown failed"
)

// Service names used in shutdown logging
const (
	ServiceNameChallenge = "challenge"
)
