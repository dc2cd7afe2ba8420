// Package httpclient provides a configurable HTTP client for talking to
// remote generation engines: base-URL resolution, JSON and multipart
// request encoding, bearer/API-key auth, typed error classification, and
// optional retry via the resilience package.
package httpclient
