// Package canister drives the deployment lifecycle of a single canister
// through the dfx tool: create, build, install, id resolution, and the
// stop/uninstall/delete cleanup sequence.
//
// Deploy runs as a state machine that rolls back on failure: a failure
// after creation triggers cleanup of whatever was provisioned, and the
// caller's active identity is restored on every exit path. Cleanup itself
// is best-effort and never fails its caller; it is used both for rollback
// inside Deploy and for final teardown.
package canister
