// Package rxnorm implements the interaction.Provider interface against an
// RxNorm-style drug/herb interaction HTTP API. It owns the resilience policy
// for external lookups: per-call timeouts, bounded retries with exponential
// backoff and jitter, and client-side rate limiting. Callers see only the
// sentinel errors from the interaction package.
package rxnorm
