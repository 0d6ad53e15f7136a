// Package dfxtest provides a scripted in-memory dfx.Tool for tests.
//
// The fake tracks the active identity, known identities and canisters the
// way a real dfx installation would, records every call, and lets tests
// inject failures per operation so identity-restore and rollback paths can
// be exercised without a dfx binary.
package dfxtest

import (
	"fmt"

	"github.com/forria64/dolphinex/internal/dfx"
)

// Call records a single operation the fake received.
type Call struct {
	Op  string
	Arg string
}

// Fake is an in-memory dfx.Tool.
type Fake struct {
	// Active is the currently active identity.
	Active string
	// Principals maps known identity names to their principals.
	Principals map[string]string
	// CanisterIDs maps created canister names to assigned ids.
	CanisterIDs map[string]string
	// FailOn maps an op name ("Build") or op+arg ("UseIdentity default")
	// to the error that operation should return.
	FailOn map[string]error
	// Calls is every operation received, in order.
	Calls []Call
	// InstallArgs records the argument-file path passed to Install per
	// canister (empty when none was passed).
	InstallArgs map[string]string

	nextCanister int
}

var _ dfx.Tool = (*Fake)(nil)

// New returns a Fake with the given identity active. The active identity
// and "default" are pre-registered with derived principals.
func New(active string) *Fake {
	f := &Fake{
		Active:      active,
		Principals:  make(map[string]string),
		CanisterIDs: make(map[string]string),
		FailOn:      make(map[string]error),
		InstallArgs: make(map[string]string),
	}
	f.Principals[active] = principalFor(active)
	f.Principals["default"] = principalFor("default")
	return f
}

func principalFor(name string) string {
	return fmt.Sprintf("%s-principal", name)
}

// Fail arranges for the named operation to return err. The key is the
// method name, optionally followed by a space and the argument, e.g.
// "Build" or "UseIdentity default".
func (f *Fake) Fail(key string, err error) {
	f.FailOn[key] = err
}

// CallsFor returns the recorded calls matching op.
func (f *Fake) CallsFor(op string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) record(op, arg string) error {
	f.Calls = append(f.Calls, Call{Op: op, Arg: arg})
	if arg != "" {
		if err, ok := f.FailOn[op+" "+arg]; ok {
			return err
		}
	}
	if err, ok := f.FailOn[op]; ok {
		return err
	}
	return nil
}

func (f *Fake) Whoami() (string, error) {
	if err := f.record("Whoami", ""); err != nil {
		return "", err
	}
	return f.Active, nil
}

func (f *Fake) NewIdentity(name string) error {
	if err := f.record("NewIdentity", name); err != nil {
		return err
	}
	if _, exists := f.Principals[name]; exists {
		return fmt.Errorf("identity '%s' already exists", name)
	}
	f.Principals[name] = principalFor(name)
	return nil
}

func (f *Fake) UseIdentity(name string) error {
	if err := f.record("UseIdentity", name); err != nil {
		return err
	}
	if _, exists := f.Principals[name]; !exists {
		return fmt.Errorf("identity '%s' does not exist", name)
	}
	f.Active = name
	return nil
}

func (f *Fake) RemoveIdentity(name string) error {
	if err := f.record("RemoveIdentity", name); err != nil {
		return err
	}
	if _, exists := f.Principals[name]; !exists {
		return fmt.Errorf("identity '%s' does not exist", name)
	}
	delete(f.Principals, name)
	return nil
}

func (f *Fake) GetPrincipal() (string, error) {
	if err := f.record("GetPrincipal", ""); err != nil {
		return "", err
	}
	return f.Principals[f.Active], nil
}

func (f *Fake) CreateCanister(name string) error {
	if err := f.record("CreateCanister", name); err != nil {
		return err
	}
	f.nextCanister++
	f.CanisterIDs[name] = fmt.Sprintf("canister-id-%d", f.nextCanister)
	return nil
}

func (f *Fake) Build(name string) error {
	return f.record("Build", name)
}

func (f *Fake) Install(name, argFilePath string) error {
	f.InstallArgs[name] = argFilePath
	return f.record("Install", name)
}

func (f *Fake) CanisterID(name string) (string, error) {
	if err := f.record("CanisterID", name); err != nil {
		return "", err
	}
	id, ok := f.CanisterIDs[name]
	if !ok {
		return "", fmt.Errorf("canister '%s' does not exist", name)
	}
	return id, nil
}

func (f *Fake) Stop(name string) error {
	return f.record("Stop", name)
}

func (f *Fake) UninstallCode(name string) error {
	return f.record("UninstallCode", name)
}

func (f *Fake) DeleteCanister(name string) error {
	if err := f.record("DeleteCanister", name); err != nil {
		return err
	}
	delete(f.CanisterIDs, name)
	return nil
}
