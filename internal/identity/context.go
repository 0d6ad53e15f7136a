package identity

import (
	"github.com/forria64/dolphinex/internal/dfx"
	"github.com/forria64/dolphinex/pkg/logging"
)

// Context owns the save/switch/restore discipline for the active dfx
// identity. It holds a single save slot: one privileged section at a time.
type Context struct {
	tool dfx.Tool

	// saved holds the identity that was active when the current privileged
	// section was entered; meaningful only while privileged is true.
	saved      string
	privileged bool
}

// NewContext returns a Context operating through the given tool.
func NewContext(tool dfx.Tool) *Context {
	return &Context{tool: tool}
}

// Current reports the active identity.
func (c *Context) Current() (string, error) {
	name, err := c.tool.Whoami()
	if err != nil {
		return "", &QueryError{Err: err}
	}
	return name, nil
}

// SwitchTo makes name the active identity.
func (c *Context) SwitchTo(name string) error {
	if err := c.tool.UseIdentity(name); err != nil {
		return &SwitchError{Name: name, Err: err}
	}
	return nil
}

// WithPrivileged saves the active identity, switches to privilegedName,
// runs body, and restores the saved identity regardless of body's outcome.
//
// A failed initial save or initial switch short-circuits with its own error
// and body is never invoked; in both cases the caller's identity was not
// changed, so no restore is attempted. The restore's own failure is logged
// but never overrides body's result. Re-entrant use returns
// ErrNestedPrivileged.
func (c *Context) WithPrivileged(privilegedName string, body func() error) error {
	if c.privileged {
		return ErrNestedPrivileged
	}

	saved, err := c.Current()
	if err != nil {
		return err
	}
	if err := c.SwitchTo(privilegedName); err != nil {
		return err
	}

	c.privileged = true
	c.saved = saved
	defer func() {
		if restoreErr := c.tool.UseIdentity(saved); restoreErr != nil {
			logging.Warn("identity", "Failed to restore identity '%s': %v", saved, restoreErr)
		}
		c.privileged = false
		c.saved = ""
	}()

	return body()
}
