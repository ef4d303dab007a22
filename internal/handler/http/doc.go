// Package http implements the REST transport of mentor-hub.
//
// It wires chi routes to the service layer and carries the cross-cutting
// concerns of every request: trace ids, access logging, metrics, rate
// limiting of the auth endpoints, access token authentication and the role
// gate that re-reads the live user before any protected handler runs.
// Every JSON response uses the [models.APIResponse] envelope.
package http
