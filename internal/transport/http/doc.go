// Package http provides the HTTP transport: the chi router, the catalog and
// regression handlers, and the request middleware (request IDs, structured
// request logging, rate limiting).
//
// Handlers talk to the service layer through DatasetServiceInterface and
// never load data themselves. Regression guardrail outcomes (schema error,
// sample too small, computation error) are HTTP 200 with the guardrail text
// in the report body: they are analysis results, not transport failures.
package http
