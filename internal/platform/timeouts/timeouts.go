// Package timeouts defines the HTTP and gRPC server limits used by every
// console process, so the values stay in one place.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write bounds a full response write; pages are rendered from memory.
const Write = 15 * time.Second

// Idle caps keep-alive connections between requests.
const Idle = 60 * time.Second

// Shutdown limits how long a server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
