/*
Package clients provides the HTTP client for the tenant provisioning API.

The Client wraps a standard http.Client with a fixed per-call timeout and a
JSON request/response codec, and exposes one typed method per backend
endpoint:

  - Login - password step of the admin login
  - VerifyMFA - TOTP step, returns the bearer access token
  - CreateTenant - provision a new tenant
  - GetTenant - fetch the current tenant record snapshot

# Error Semantics

Callers need to branch on how a call failed, so the client keeps the two
failure classes apart:

  - A non-2xx response surfaces as *HTTPError carrying the status code and a
    truncated response body. The request itself completed; the backend
    rejected it.
  - A network-level failure (timeout, connection refused, DNS) surfaces as
    the underlying transport error, wrapped. errors.As against *HTTPError
    distinguishes the two.

The client never retries. Retry and polling policy belongs to the verifier
layer, which knows which calls are safe to repeat.
*/
package clients
