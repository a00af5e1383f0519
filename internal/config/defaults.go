package config

// DefaultWorkspace is the workspace directory used when the definition
// does not set one: the project root itself.
const DefaultWorkspace = "."

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Workspace == "" {
		cfg.Workspace = DefaultWorkspace
	}
}
