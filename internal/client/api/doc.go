// Package api contains the client-side transport for the finledger backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, recurring bills, transactions, and reference data.
//  2. A concrete REST implementation (see HTTPClient) that attaches the
//     persisted bearer token and a request id via an http.RoundTripper
//     interceptor and maps non-2xx responses to *Error.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable; HTTP-level rejections decode into
// *Error, recoverable with errors.As or the Is* helpers (IsUnauthorized,
// IsForbidden, IsRateLimited, IsVerificationRequired).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; the configured http.Client timeout
// bounds each request.
package api
