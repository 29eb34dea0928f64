// Package timeouts defines shared timeout constants used across the console.
// Centralizing these values prevents drift between call sites and makes the
// durations discoverable.
package timeouts

import "time"

// APIRequest caps the time allowed for a single REST call from the admin
// console to the platform API.
const APIRequest = 10 * time.Second

// APIReachable caps the total time spent checking the platform API at startup.
const APIReachable = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ToastDismiss is how long a mutation outcome toast stays visible.
const ToastDismiss = 3 * time.Second

// ViewState is how long an idle list page keeps its cached collection and query.
const ViewState = 30 * time.Minute

// NotificationPoll is the navbar unread-count polling interval.
const NotificationPoll = 30 * time.Second
