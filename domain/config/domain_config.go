package config

import (
	"fmt"
	"time"
)

// HardMaxGraphDepth bounds every configured graph depth
const HardMaxGraphDepth = 3

// DomainConfig holds the configurable rules of entry and graph handling
type DomainConfig struct {
	// Graph walking
	MaxGraphDepth     int `yaml:"max_graph_depth"`
	DefaultGraphDepth int `yaml:"default_graph_depth"`
	GraphConcurrency  int `yaml:"graph_concurrency"`

	// Concept tables
	ConceptRetryInterval time.Duration `yaml:"concept_retry_interval"`
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxGraphDepth:        HardMaxGraphDepth,
		DefaultGraphDepth:    1,
		GraphConcurrency:     32,
		ConceptRetryInterval: 30 * time.Second,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// local stores are slow to fan out against
	config.GraphConcurrency = 8
	config.ConceptRetryInterval = 5 * time.Second

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "development", "test":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks the configuration and caps the graph depths
func (c *DomainConfig) Validate() error {
	if c.MaxGraphDepth < 0 {
		return fmt.Errorf("max graph depth must not be negative, got %d", c.MaxGraphDepth)
	}
	if c.MaxGraphDepth > HardMaxGraphDepth {
		c.MaxGraphDepth = HardMaxGraphDepth
	}
	if c.DefaultGraphDepth < 0 {
		return fmt.Errorf("default graph depth must not be negative, got %d", c.DefaultGraphDepth)
	}
	if c.DefaultGraphDepth > c.MaxGraphDepth {
		c.DefaultGraphDepth = c.MaxGraphDepth
	}
	if c.GraphConcurrency <= 0 {
		return fmt.Errorf("graph concurrency must be positive, got %d", c.GraphConcurrency)
	}
	if c.ConceptRetryInterval <= 0 {
		return fmt.Errorf("concept retry interval must be positive, got %s", c.ConceptRetryInterval)
	}
	return nil
}
