// Package processor implements the request dispatcher. A single loop
// consumes inbound requests in arrival order and runs each request's
// synchronous part (capturing or replacing the dictionary slot) before the
// next request is taken. Conversions run as independent goroutines that each
// publish exactly one response.
package processor
