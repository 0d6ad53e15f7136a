package dfx

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/forria64/dolphinex/pkg/logging"
)

// DefaultBinary is the dfx executable resolved from PATH when no explicit
// binary path is configured.
const DefaultBinary = "dfx"

// CLI is the Tool implementation that shells out to the dfx binary.
type CLI struct {
	binary string
}

// NewCLI returns a CLI driving the given dfx binary. An empty binary falls
// back to DefaultBinary.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{binary: binary}
}

// run executes the dfx binary with args, blocking until it exits, and
// returns the combined stdout/stderr. A nonzero exit yields an *ExecError.
func (c *CLI) run(args ...string) (string, error) {
	cmd := exec.Command(c.binary, args...)

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	logging.Debug("dfx", "Running: %s %s", c.binary, strings.Join(args, " "))
	runErr := cmd.Run()
	output := combined.String()

	if runErr != nil {
		exitCode := -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		execErr := &ExecError{Args: args, ExitCode: exitCode, Output: output}
		logging.Debug("dfx", "Command failed: %v", execErr)
		return output, execErr
	}
	return output, nil
}

// Whoami reports the currently active dfx identity.
func (c *CLI) Whoami() (string, error) {
	out, err := c.run("identity", "whoami")
	if err != nil {
		return "", fmt.Errorf("failed to query active identity: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// NewIdentity creates a new dfx identity.
func (c *CLI) NewIdentity(name string) error {
	if _, err := c.run("identity", "new", name); err != nil {
		return fmt.Errorf("failed to create identity '%s': %w", name, err)
	}
	return nil
}

// UseIdentity makes name the active dfx identity.
func (c *CLI) UseIdentity(name string) error {
	if _, err := c.run("identity", "use", name); err != nil {
		return fmt.Errorf("failed to switch to identity '%s': %w", name, err)
	}
	return nil
}

// RemoveIdentity deletes a dfx identity.
func (c *CLI) RemoveIdentity(name string) error {
	if _, err := c.run("identity", "remove", name); err != nil {
		return fmt.Errorf("failed to remove identity '%s': %w", name, err)
	}
	return nil
}

// GetPrincipal reports the principal of the active identity.
func (c *CLI) GetPrincipal() (string, error) {
	out, err := c.run("identity", "get-principal")
	if err != nil {
		return "", fmt.Errorf("failed to query principal: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CreateCanister registers a new canister with the local replica.
func (c *CLI) CreateCanister(name string) error {
	if _, err := c.run("canister", "create", name); err != nil {
		return fmt.Errorf("failed to create canister '%s': %w", name, err)
	}
	return nil
}

// Build compiles the canister.
func (c *CLI) Build(name string) error {
	if _, err := c.run("build", name); err != nil {
		return fmt.Errorf("failed to build canister '%s': %w", name, err)
	}
	return nil
}

// Install installs the built code, optionally passing the content of
// argFilePath as the init argument.
func (c *CLI) Install(name, argFilePath string) error {
	args := []string{"canister", "install", name}
	if argFilePath != "" {
		content, err := os.ReadFile(argFilePath)
		if err != nil {
			return fmt.Errorf("failed to read argument file '%s': %w", argFilePath, err)
		}
		args = append(args, "--argument", string(content))
	}
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("failed to install canister '%s': %w", name, err)
	}
	return nil
}

// CanisterID resolves the canister id assigned by the replica.
func (c *CLI) CanisterID(name string) (string, error) {
	out, err := c.run("canister", "id", name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve id of canister '%s': %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// Stop stops a running canister.
func (c *CLI) Stop(name string) error {
	if _, err := c.run("canister", "stop", name); err != nil {
		return fmt.Errorf("failed to stop canister '%s': %w", name, err)
	}
	return nil
}

// UninstallCode removes the installed code from a canister.
func (c *CLI) UninstallCode(name string) error {
	if _, err := c.run("canister", "uninstall-code", name); err != nil {
		return fmt.Errorf("failed to uninstall code of canister '%s': %w", name, err)
	}
	return nil
}

// DeleteCanister deletes a canister from the replica.
func (c *CLI) DeleteCanister(name string) error {
	if _, err := c.run("canister", "delete", name); err != nil {
		return fmt.Errorf("failed to delete canister '%s': %w", name, err)
	}
	return nil
}
