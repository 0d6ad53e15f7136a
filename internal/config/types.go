package config

// CanisterConfig describes one canister known to the run descriptor.
type CanisterConfig struct {
	// TemplatePath points at the init-argument template for this canister;
	// empty means the canister is installed without an init argument.
	TemplatePath string `json:"template_path"`
}

// Descriptor is the structured document supplied at startup: the canisters
// under test and which one this run deploys.
type Descriptor struct {
	Canisters        map[string]CanisterConfig `json:"canisters"`
	SelectedCanister string                    `json:"selected_canister"`
	// Identities are ephemeral dfx identities to provision before the
	// deployment; their principals become template vars named
	// "<name>_principal". All of them are removed during teardown.
	Identities []string `json:"identities,omitempty"`
}

// TemplatePaths returns the name → template-path mapping for the template
// pass.
func (d Descriptor) TemplatePaths() map[string]string {
	paths := make(map[string]string, len(d.Canisters))
	for name, cfg := range d.Canisters {
		paths[name] = cfg.TemplatePath
	}
	return paths
}

// Settings controls how the harness drives dfx.
type Settings struct {
	// DfxBinary is the dfx executable to invoke; resolved from PATH when
	// not an absolute path.
	DfxBinary string `yaml:"dfx_binary"`
	// AdminIdentity is the privileged identity used for mutating
	// operations; it is never removed during teardown.
	AdminIdentity string `yaml:"admin_identity"`
	// ArgsDir is where materialized argument files are written.
	ArgsDir string `yaml:"args_dir"`
	// TemplateVars are the placeholder substitutions for argument
	// templates.
	TemplateVars map[string]string `yaml:"template_vars"`
}
