package graph

// Config controls how inspectors build declaration trees
type Config struct {
	IncludeUnexported bool `yaml:"includeUnexported" toml:"includeUnexported" json:"includeUnexported"`
	SkipTests         bool `yaml:"skipTests" toml:"skipTests" json:"skipTests"`
	SkipBodies        bool `yaml:"skipBodies" toml:"skipBodies" json:"skipBodies"` // do not build statement nodes
}

func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: true,
		SkipTests:         true,
	}
}
