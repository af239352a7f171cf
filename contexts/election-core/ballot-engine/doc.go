// Package ballotengine implements the permissioned phased ballot inside
// the election-core context.
//
// The module owns the workflow state machine (six strictly forward
// phases), the voter whitelist, the ordered proposal registry, vote
// casting with the one-vote invariant, and the deterministic tally. Every
// command validates its preconditions against an aggregate snapshot and
// commits the mutation together with its outbox events, so rejected
// operations leave state untouched. Business rules stay in
// application/domain layers behind ports and adapters.
package ballotengine
