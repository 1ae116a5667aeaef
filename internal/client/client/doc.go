// Package client contains the client-side building blocks for talking to
// the dialogs backend.
//
// # Overview
//
//  1. A transport-agnostic API contract (Client) covering both auth schemes:
//     the legacy widget endpoints (/api/auth, /api/dialogs) and the v1
//     bearer endpoints (/api/v1/auth/telegram, /api/v1/dialogs/...).
//  2. A JSON-over-HTTP implementation (HTTPClient) that tags every request
//     with an X-Request-ID and maps status codes to sentinel errors.
//  3. Local store bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite file and applies the embedded goose migrations.
//
// # Error Handling
//
// 401/403 map to common.ErrUnauthorized, 502/503/504 and transport failures
// to common.ErrUnavailable, success:false answers to ErrRejected. Match with
// errors.Is.
//
// Requests are never retried. Every call honours its context.
package client
