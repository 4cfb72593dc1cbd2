package application

import "expvar"

// authStats is exported at /debug/vars under "auth".
var authStats = expvar.NewMap("auth")

const (
	statLoginSucceeded     = "login_succeeded"
	statLoginFailed        = "login_failed"
	statResetRequested     = "reset_requested"
	statResetUnknownEmail  = "reset_unknown_email"
	statResetCompleted     = "reset_completed"
	statResetRejected      = "reset_rejected"
	statNotificationFailed = "notification_failed"
	statRegistered         = "registered"
)
