package field

import (
	"strconv"

	"sparse-grids/internal/sparse"
)

// Config controls the activation field dimensions and pass parallelism.
type Config struct {
	// Size is the grid side length in cells.
	Size int
	// NodeBudget caps lazily allocated hierarchy nodes; zero is unlimited.
	NodeBudget int64
	// Workers bounds the goroutines used by full-grid passes; zero uses every
	// CPU.
	Workers int
}

// DefaultConfig returns the standard 512×512 configuration.
func DefaultConfig() Config {
	return Config{Size: sparse.DefaultConfig().Size}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed%sparse.OuterSpan == 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["node_budget"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			c.NodeBudget = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}
