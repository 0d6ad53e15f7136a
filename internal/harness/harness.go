package harness

import (
	"fmt"

	"github.com/forria64/dolphinex/internal/candid"
	"github.com/forria64/dolphinex/internal/canister"
	"github.com/forria64/dolphinex/internal/config"
	"github.com/forria64/dolphinex/internal/dfx"
	"github.com/forria64/dolphinex/internal/identity"
	"github.com/forria64/dolphinex/internal/reporting"
	"github.com/forria64/dolphinex/pkg/logging"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitValidationFailed = 1
	ExitStartup          = 2
)

// successSentinel is the expected outcome every deployment validation is
// compared against.
const successSentinel = "Success"

// StartupError is the fatal, immediate-exit error class: malformed or
// missing input. It maps to ExitStartup.
type StartupError struct {
	Reason string
}

func (e *StartupError) Error() string {
	return e.Reason
}

// Options configures a Harness beyond the descriptor.
type Options struct {
	Settings config.Settings
	Reporter reporting.Reporter
	// Tool overrides the dfx collaborator; nil builds a CLI from
	// Settings.DfxBinary.
	Tool dfx.Tool
	// KeepResources skips teardown, leaving deployed canisters and created
	// identities in place for inspection.
	KeepResources bool
}

// Harness drives one end-to-end run.
type Harness struct {
	descriptor  config.Descriptor
	settings    config.Settings
	reporter    reporting.Reporter
	tool        dfx.Tool
	provisioner *identity.Provisioner
	manager     *canister.Manager
	counters    reporting.Counters
	keep        bool
}

// New assembles a Harness for the given descriptor.
func New(descriptor config.Descriptor, opts Options) *Harness {
	settings := opts.Settings
	defaults := config.DefaultSettings()
	if settings.DfxBinary == "" {
		settings.DfxBinary = defaults.DfxBinary
	}
	if settings.AdminIdentity == "" {
		settings.AdminIdentity = defaults.AdminIdentity
	}
	if settings.ArgsDir == "" {
		settings.ArgsDir = defaults.ArgsDir
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = reporting.NewConsoleReporter(nil, false)
	}
	tool := opts.Tool
	if tool == nil {
		tool = dfx.NewCLI(settings.DfxBinary)
	}

	ctx := identity.NewContext(tool)
	return &Harness{
		descriptor:  descriptor,
		settings:    settings,
		reporter:    reporter,
		tool:        tool,
		provisioner: identity.NewProvisioner(tool, ctx, settings.AdminIdentity),
		manager:     canister.NewManager(tool, ctx, settings.AdminIdentity, settings.ArgsDir, reporter),
		keep:        opts.KeepResources,
	}
}

// Run executes the full flow and returns the process exit code. The error
// is non-nil only for startup errors; validation failures are reflected in
// the exit code alone.
func (h *Harness) Run() (int, error) {
	selected := h.descriptor.SelectedCanister
	if selected == "" {
		return ExitStartup, &StartupError{Reason: "no selected canister specified"}
	}

	h.reporter.ReportRunStart(selected)

	h.provisionIdentities()
	h.processTemplates()

	templatePath := h.descriptor.Canisters[selected].TemplatePath
	_, err := h.manager.Deploy(selected, templatePath)
	actual := successSentinel
	if err != nil {
		actual = "Failed"
		logging.Error("harness", err, "Deployment of '%s' failed", selected)
	}
	v := h.counters.Record(fmt.Sprintf("Deploy %s", selected), actual, successSentinel)
	h.reporter.ReportValidation(v)

	h.reporter.ReportSummary(h.counters)

	h.teardown()
	h.reporter.ReportRunEnd()

	if h.counters.AllPassed() {
		return ExitOK, nil
	}
	return ExitValidationFailed, nil
}

// provisionIdentities creates the ephemeral identities the descriptor asks
// for. Failures are warnings: the deployment under test may not need them.
func (h *Harness) provisionIdentities() {
	for _, name := range h.descriptor.Identities {
		h.reporter.ReportStep("Create identity '%s'", name)
		if _, err := h.provisioner.Create(name); err != nil {
			h.reporter.ReportWarning("failed to provision identity '%s': %v", name, err)
		}
	}
}

// processTemplates materializes argument files for every canister with a
// template, feeding in the configured template vars plus the principals of
// identities created this run and, when needed, the admin principal as
// owner_principal.
func (h *Harness) processTemplates() {
	vars := h.templateVars()
	if agg := candid.ProcessAll(h.descriptor.TemplatePaths(), vars, h.settings.ArgsDir); !agg.OK() {
		h.reporter.ReportWarning("template pass incomplete: %v", agg.Err())
	}
}

func (h *Harness) templateVars() map[string]string {
	vars := make(map[string]string)
	for k, v := range h.settings.TemplateVars {
		vars[k] = v
	}
	for _, name := range h.provisioner.Registry().Names() {
		if principal, ok := h.provisioner.Registry().Principal(name); ok {
			if _, taken := vars[name+"_principal"]; !taken {
				vars[name+"_principal"] = principal
			}
		}
	}
	if _, ok := vars["owner_principal"]; !ok && h.hasTemplates() {
		principal, err := h.provisioner.AdminPrincipal()
		if err != nil {
			h.reporter.ReportWarning("could not resolve owner_principal: %v", err)
		} else {
			vars["owner_principal"] = principal
		}
	}
	return vars
}

func (h *Harness) hasTemplates() bool {
	for _, cfg := range h.descriptor.Canisters {
		if cfg.TemplatePath != "" {
			return true
		}
	}
	return false
}

// teardown removes all deployed canisters, then all created identities.
// It always runs to completion; problems are reported as warnings and
// never affect the exit code.
func (h *Harness) teardown() {
	if h.keep {
		h.reporter.ReportWarning("keep-resources set: skipping teardown of %d canister(s) and %d identity(ies)",
			h.manager.Registry().Len(), h.provisioner.Registry().Len())
		return
	}
	if agg := h.manager.RemoveAll(); !agg.OK() {
		h.reporter.ReportWarning("canister teardown incomplete: %v", agg.Err())
	}
	if agg := h.provisioner.RemoveAll(); !agg.OK() {
		h.reporter.ReportWarning("identity teardown incomplete: %v", agg.Err())
	}
}
