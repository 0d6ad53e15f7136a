// Package dfx wraps the external dfx command-line tool behind a typed
// collaborator interface.
//
// Every logical operation the harness needs (identity queries and switches,
// canister create/build/install/stop/uninstall/delete, id resolution) is a
// single method on the Tool interface, so orchestration code never deals
// with command lines directly and tests can substitute a fake Tool.
//
// The CLI implementation invokes the dfx binary as a blocking subprocess
// and captures combined stdout/stderr. A nonzero exit status is surfaced as
// an *ExecError carrying the exit code and the captured output for
// diagnostics.
//
// # Usage Example
//
//	tool := dfx.NewCLI("dfx")
//	who, err := tool.Whoami()
//	if err != nil {
//	    // dfx could not report an active identity
//	}
//	if err := tool.CreateCanister("hello"); err != nil {
//	    var execErr *dfx.ExecError
//	    if errors.As(err, &execErr) {
//	        fmt.Println(execErr.Output)
//	    }
//	}
//
// There is no cancellation or timeout handling at this layer: a hung dfx
// process blocks the caller. Invocations are strictly sequential.
package dfx
