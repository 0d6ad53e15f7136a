// Package identity manages the active dfx identity as an explicit,
// single-slot register.
//
// The dfx tool keeps "the active identity" in its own persisted
// configuration, which makes it process-global shared state. Context models
// that register explicitly: every privileged operation saves the caller's
// identity, switches, and restores it on every exit path. Provisioner
// builds on Context to create and destroy ephemeral identities, tracking
// what it created so teardown can remove exactly that.
//
// Concurrent use against the same dfx configuration is unsafe; callers are
// expected to run strictly sequentially.
package identity
