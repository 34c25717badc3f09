// Package http provides the REST surface for the notegate gateway.
//
// # Endpoints
//
//   - GET  /health        health check (public)
//   - GET  /stats         bandwidth and usage statistics
//   - GET  /listNotes     all bucket keys
//   - POST /readNote      read a note by filename
//   - POST /writeNote     write or overwrite a note
//   - GET  /canvas        list canvas documents
//   - POST /canvas        create a canvas (409 when it exists)
//   - GET  /canvas/{name} read a canvas
//   - PUT  /canvas/{name} update an existing canvas (404 when absent)
//   - DEL  /canvas/{name} delete an existing canvas (404 when absent)
//   - GET  /docs          interactive documentation page (public)
//   - GET  /openapi.yaml  OpenAPI description (public)
//
// All responses are JSON; error bodies are {"error": "<message>"}.
//
// # Authentication
//
// BearerAuth compares the Authorization header against "Bearer <token>"
// in constant time. When no token is configured the gate is open:
//
//	r.Use(http.BearerAuth(cfg.Token))
//
// # Bandwidth accounting
//
// The Bandwidth middleware wraps the response writer to count outgoing
// bytes and takes incoming bytes from the request Content-Length, falling
// back to counting what the handler reads when the length is undeclared.
// Incoming bytes reach the stats.Tracker before the handler runs; the
// request count and outgoing bytes follow once it finishes, keyed by the
// matched route pattern. Requests that matched no route are bucketed
// under "unknown".
package http
