package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDomainConfig(t *testing.T) {
	assert.Equal(t, 8, LoadDomainConfig("development").GraphConcurrency)
	assert.Equal(t, 32, LoadDomainConfig("production").GraphConcurrency)
	assert.Equal(t, 30*time.Second, LoadDomainConfig("staging").ConceptRetryInterval)
}

func TestDomainConfigValidate(t *testing.T) {
	t.Run("depths are capped", func(t *testing.T) {
		c := DefaultDomainConfig()
		c.MaxGraphDepth = 10
		c.DefaultGraphDepth = 7
		require.NoError(t, c.Validate())
		assert.Equal(t, HardMaxGraphDepth, c.MaxGraphDepth)
		assert.Equal(t, HardMaxGraphDepth, c.DefaultGraphDepth)
	})

	t.Run("default depth follows a lower max", func(t *testing.T) {
		c := DefaultDomainConfig()
		c.MaxGraphDepth = 0
		require.NoError(t, c.Validate())
		assert.Equal(t, 0, c.DefaultGraphDepth)
	})

	tests := []struct {
		name   string
		modify func(c *DomainConfig)
	}{
		{"negative max depth", func(c *DomainConfig) { c.MaxGraphDepth = -1 }},
		{"negative default depth", func(c *DomainConfig) { c.DefaultGraphDepth = -1 }},
		{"no concurrency", func(c *DomainConfig) { c.GraphConcurrency = 0 }},
		{"no retry interval", func(c *DomainConfig) { c.ConceptRetryInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultDomainConfig()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}
