package Maps

import (
	"math"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultInitialCapacity = 1 << 4
	//MaximumCapacity is the largest table length; it's a power of two.
	MaximumCapacity           = 1 << 30
	DefaultLoadFactor float32 = 0.75
	//DefaultTreeifyThreshold is the chain length at which a bucket becomes a tree.
	DefaultTreeifyThreshold = 8
	//DefaultUntreeifyThreshold is the tree size at or below which a bucket becomes a chain again.
	DefaultUntreeifyThreshold = 6
	//DefaultMinTreeifyCapacity is the smallest table length whose buckets may be trees. Below it the table grows
	//instead.
	DefaultMinTreeifyCapacity = 64
)

// Config holds the tunables of a hash map. The zero value of InitialCapacity means "no hint": the table is allocated
// with DefaultInitialCapacity on the first insertion.
type Config struct {
	InitialCapacity    int     `toml:"initial-capacity"`
	LoadFactor         float32 `toml:"load-factor"`
	TreeifyThreshold   int     `toml:"treeify-threshold"`
	UntreeifyThreshold int     `toml:"untreeify-threshold"`
	MinTreeifyCapacity int     `toml:"min-treeify-capacity"`
}

func DefaultConfig() Config {
	return Config{
		LoadFactor:         DefaultLoadFactor,
		TreeifyThreshold:   DefaultTreeifyThreshold,
		UntreeifyThreshold: DefaultUntreeifyThreshold,
		MinTreeifyCapacity: DefaultMinTreeifyCapacity,
	}
}

// Validate reports the first setting that can't be used, wrapped around ErrInvalidArgument.
func (c *Config) Validate() error {
	if c.InitialCapacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "illegal initial capacity: %d", c.InitialCapacity)
	}
	if lf := float64(c.LoadFactor); lf <= 0 || math.IsNaN(lf) {
		return errors.Wrapf(ErrInvalidArgument, "illegal load factor: %v", c.LoadFactor)
	}
	if c.TreeifyThreshold <= 2 {
		return errors.Wrapf(ErrInvalidArgument, "treeify threshold must be greater than 2: %d", c.TreeifyThreshold)
	}
	if c.UntreeifyThreshold < 0 || c.UntreeifyThreshold >= c.TreeifyThreshold {
		return errors.Wrapf(ErrInvalidArgument, "untreeify threshold %d not in [0,%d)", c.UntreeifyThreshold, c.TreeifyThreshold)
	}
	if n := c.MinTreeifyCapacity; n <= 0 || n&(n-1) != 0 || n > MaximumCapacity {
		return errors.Wrapf(ErrInvalidArgument, "min treeify capacity must be a power of two: %d", n)
	}
	return nil
}

// ParseConfig decodes a TOML document on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if _, err := toml.Decode(string(data), &c); err != nil {
		return c, errors.Wrap(err, "decode map config")
	}
	return c, c.Validate()
}
