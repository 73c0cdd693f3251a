// Package restclient implements the HTTP plumbing shared by all of the API endpoint
// callers: request/response types, the transport over net/http, retry of transient
// failures, response classification, and an optional circuit breaker.
package restclient
