// Package api provides HTTP handlers for the practice session API.
//
// Handlers translate between the wire format and the engine service:
// they decode and validate payloads, resolve URL parameters, and map
// internal errors to sanitized responses via MapErrorToStatusCode and
// GetSafeErrorMessage. Challenge views never include the canonical
// answer order.
package api
