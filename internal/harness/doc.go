// Package harness is the top-level driver of a run: it validates the run
// descriptor, provisions any requested ephemeral identities, materializes
// argument templates, deploys the selected canister exactly once, records
// the validation, prints the summary, and then tears down every canister
// and identity the run created, success or failure.
//
// Teardown problems are surfaced as warnings; only the validation outcome
// determines the exit code. A malformed or incomplete descriptor is a
// StartupError with its own distinct exit code, and in that case no
// deployment or teardown is attempted.
package harness
