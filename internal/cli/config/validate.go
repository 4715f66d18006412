package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.AngleMode != calc.Degrees && c.AngleMode != calc.Radians {
		return fmt.Errorf("angle_mode must be deg or rad")
	}
	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17, got %d", c.Precision)
	}
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q\nHint: use one of %v", c.OutputFormat, OutputFormats)
	}
	return nil
}
