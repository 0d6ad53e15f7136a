package config

// DefaultSettings returns the built-in settings layer.
func DefaultSettings() Settings {
	return Settings{
		DfxBinary:     "dfx",
		AdminIdentity: "default",
		ArgsDir:       "args",
		TemplateVars:  map[string]string{},
	}
}
