// Package aggregates defines domain-facing aggregate contracts for
// customer, workforce, contract, catalog and billing writes.
//
// These contracts intentionally avoid persistence/transport implementation details
// and represent semantic write boundaries where invariants must be enforced atomically.
package aggregates
