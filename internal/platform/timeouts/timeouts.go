// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// UpstreamRequest caps a single call to the content workspace API.
const UpstreamRequest = 10 * time.Second

// ContentCache is how long scanned content and rendered documents stay fresh.
const ContentCache = 5 * time.Minute

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SceneTick is the default interval between mood frames streamed to a
// scene session.
const SceneTick = 50 * time.Millisecond

// ContentScan bounds a full workspace scan, which issues several upstream
// requests.
const ContentScan = 30 * time.Second
