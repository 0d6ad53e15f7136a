package dfx

import (
	"fmt"
	"strings"
)

// Tool is the collaborator interface over the external dfx binary.
// One method per logical operation; implementations block until the
// underlying command exits.
type Tool interface {
	// Identity operations
	Whoami() (string, error)
	NewIdentity(name string) error
	UseIdentity(name string) error
	RemoveIdentity(name string) error
	GetPrincipal() (string, error)

	// Canister lifecycle operations
	CreateCanister(name string) error
	Build(name string) error
	// Install installs the built code for name. If argFilePath is non-empty
	// the file's content is passed as the canister init argument.
	Install(name, argFilePath string) error
	CanisterID(name string) (string, error)
	Stop(name string) error
	UninstallCode(name string) error
	DeleteCanister(name string) error
}

// ExecError describes a dfx invocation that exited nonzero. Output holds
// the combined stdout/stderr captured from the command.
type ExecError struct {
	Args     []string
	ExitCode int
	Output   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("dfx %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}
