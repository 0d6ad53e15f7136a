package identity

import (
	"github.com/forria64/dolphinex/internal/dfx"
	"github.com/forria64/dolphinex/internal/reporting"
	"github.com/forria64/dolphinex/pkg/logging"
)

// DefaultAdminIdentity is the dfx identity used for privileged operations
// and never removed during teardown.
const DefaultAdminIdentity = "default"

// Provisioner creates and destroys ephemeral dfx identities, tracking every
// identity it created in a Registry so teardown can remove exactly those.
type Provisioner struct {
	tool     dfx.Tool
	ctx      *Context
	registry *Registry
	admin    string
}

// NewProvisioner returns a Provisioner. An empty admin falls back to
// DefaultAdminIdentity.
func NewProvisioner(tool dfx.Tool, ctx *Context, admin string) *Provisioner {
	if admin == "" {
		admin = DefaultAdminIdentity
	}
	return &Provisioner{
		tool:     tool,
		ctx:      ctx,
		registry: NewRegistry(),
		admin:    admin,
	}
}

// Registry exposes the side table of created identities.
func (p *Provisioner) Registry() *Registry {
	return p.registry
}

// Create makes a new identity, switches to it to query its principal, and
// reverts to the identity that was active before the call. Creation runs in
// the caller's own context; no privileged switch is needed. A failure after
// the identity was created reverts best-effort and returns the error
// without deleting the half-made identity.
func (p *Provisioner) Create(name string) (Record, error) {
	original, err := p.ctx.Current()
	if err != nil {
		return Record{}, &ProvisionError{Name: name, Step: "query identity", Err: err}
	}

	if err := p.tool.NewIdentity(name); err != nil {
		return Record{}, &ProvisionError{Name: name, Step: "create", Err: err}
	}

	if err := p.ctx.SwitchTo(name); err != nil {
		p.revert(original)
		return Record{}, &ProvisionError{Name: name, Step: "switch", Err: err}
	}

	principal, err := p.tool.GetPrincipal()
	if err != nil {
		p.revert(original)
		return Record{}, &ProvisionError{Name: name, Step: "query principal", Err: err}
	}

	p.registry.Add(name, principal)
	p.revert(original)
	return Record{Name: name, Principal: principal}, nil
}

// Remove switches to the administrative identity, deletes name if it is
// tracked, drops it from the registry, and restores the caller's identity.
// A failed switch to the administrative identity fails the removal; the
// deletion itself is best-effort.
func (p *Provisioner) Remove(name string) error {
	err := p.ctx.WithPrivileged(p.admin, func() error {
		if _, tracked := p.registry.Principal(name); !tracked {
			return nil
		}
		if err := p.tool.RemoveIdentity(name); err != nil {
			logging.Warn("identity", "Best-effort removal of identity '%s' failed: %v", name, err)
		}
		p.registry.Remove(name)
		return nil
	})
	if err != nil {
		return &RemoveError{Name: name, Err: err}
	}
	return nil
}

// RemoveAll removes every tracked identity except the administrative one
// and the reserved "default", never stopping early. Per-identity failures
// are collected in the returned aggregate.
func (p *Provisioner) RemoveAll() reporting.Aggregate {
	var agg reporting.Aggregate
	for _, name := range p.registry.Names() {
		if name == p.admin || name == DefaultAdminIdentity {
			continue
		}
		agg.Add(name, p.Remove(name))
	}
	return agg
}

// AdminPrincipal reports the principal of the administrative identity by
// briefly switching to it.
func (p *Provisioner) AdminPrincipal() (string, error) {
	var principal string
	err := p.ctx.WithPrivileged(p.admin, func() error {
		out, err := p.tool.GetPrincipal()
		if err != nil {
			return err
		}
		principal = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return principal, nil
}

// revert is the best-effort switch back used on Create's exit paths.
func (p *Provisioner) revert(original string) {
	if original == "" {
		return
	}
	if err := p.ctx.SwitchTo(original); err != nil {
		logging.Warn("identity", "Failed to revert to identity '%s': %v", original, err)
	}
}
