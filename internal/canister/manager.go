package canister

import (
	"os"

	"github.com/forria64/dolphinex/internal/candid"
	"github.com/forria64/dolphinex/internal/dfx"
	"github.com/forria64/dolphinex/internal/identity"
	"github.com/forria64/dolphinex/internal/reporting"
	"github.com/forria64/dolphinex/pkg/logging"
)

// Manager drives canister deployments and owns the deployed-unit table.
type Manager struct {
	tool     dfx.Tool
	ctx      *identity.Context
	registry *Registry
	admin    string
	argsDir  string
	reporter reporting.Reporter
}

// NewManager returns a Manager deploying through tool under the given
// administrative identity. An empty admin falls back to
// identity.DefaultAdminIdentity. reporter may be nil.
func NewManager(tool dfx.Tool, ctx *identity.Context, admin, argsDir string, reporter reporting.Reporter) *Manager {
	if admin == "" {
		admin = identity.DefaultAdminIdentity
	}
	return &Manager{
		tool:     tool,
		ctx:      ctx,
		registry: NewRegistry(),
		admin:    admin,
		argsDir:  argsDir,
		reporter: reporter,
	}
}

// Registry exposes the side table of deployed canisters.
func (m *Manager) Registry() *Registry {
	return m.registry
}

func (m *Manager) step(format string, args ...interface{}) {
	if m.reporter != nil {
		m.reporter.ReportStep(format, args...)
	}
}

// Deploy runs create, build, install and id resolution for name under the
// administrative identity, restoring the caller's identity on every exit
// path. templatePath, when set, selects the prepared argument file for the
// install step; a missing argument file just omits the install argument.
// Failures after creation trigger rollback cleanup before returning.
func (m *Manager) Deploy(name, templatePath string) (Record, error) {
	var rec Record
	err := m.ctx.WithPrivileged(m.admin, func() error {
		argFile := m.resolveArgFile(templatePath)

		m.step("Create canister '%s'", name)
		if err := m.tool.CreateCanister(name); err != nil {
			// Nothing was provisioned, no cleanup needed.
			return &DeployError{Name: name, Stage: StageCreate, Err: err}
		}

		m.step("Build canister '%s'", name)
		if err := m.tool.Build(name); err != nil {
			m.rollback(name)
			return &DeployError{Name: name, Stage: StageBuild, Err: err}
		}

		m.step("Install canister '%s'", name)
		if err := m.tool.Install(name, argFile); err != nil {
			m.rollback(name)
			return &DeployError{Name: name, Stage: StageInstall, Err: err}
		}

		m.step("Resolve id of canister '%s'", name)
		id, err := m.tool.CanisterID(name)
		if err != nil {
			m.rollback(name)
			return &DeployError{Name: name, Stage: StageResolve, Err: err}
		}

		rec = Record{Name: name, CanisterID: id}
		m.registry.Add(name, id)
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// resolveArgFile returns the prepared argument-file path derived from the
// template, or "" when no template is configured or the file was never
// materialized.
func (m *Manager) resolveArgFile(templatePath string) string {
	if templatePath == "" {
		return ""
	}
	argFile := candid.ArgFilePath(templatePath, m.argsDir)
	if _, err := os.Stat(argFile); err != nil {
		return ""
	}
	return argFile
}

// rollback runs cleanup during a failed deploy, surfacing problems as
// warnings only.
func (m *Manager) rollback(name string) {
	if agg := m.Cleanup(name); !agg.OK() {
		logging.Warn("canister", "Rollback of '%s' incomplete: %v", name, agg.Err())
	}
}

// Cleanup stops, uninstalls and deletes a canister under the administrative
// identity, then restores whichever identity was active before. Every step
// is best-effort: a failed stop does not prevent the uninstall, a failed
// switch does not prevent the canister operations. The returned aggregate
// records which steps failed; Cleanup itself never fails the caller.
func (m *Manager) Cleanup(name string) reporting.Aggregate {
	var agg reporting.Aggregate

	original, err := m.tool.Whoami()
	agg.Add("query identity", err)

	agg.Add("switch to "+m.admin, m.tool.UseIdentity(m.admin))
	agg.Add("stop", m.tool.Stop(name))
	agg.Add("uninstall-code", m.tool.UninstallCode(name))
	agg.Add("delete", m.tool.DeleteCanister(name))

	if original != "" {
		agg.Add("restore "+original, m.tool.UseIdentity(original))
	}
	return agg
}

// RemoveAll cleans up every tracked canister, aggregating failures without
// stopping, then unconditionally clears the table.
func (m *Manager) RemoveAll() reporting.Aggregate {
	var agg reporting.Aggregate
	for _, name := range m.registry.Names() {
		m.step("Clean up canister '%s'", name)
		if cleanup := m.Cleanup(name); !cleanup.OK() {
			agg.Add(name, cleanup.Err())
		}
	}
	m.registry.Clear()
	return agg
}
