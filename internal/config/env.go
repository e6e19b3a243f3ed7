// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the BIGCALC_ prefix) to the CLI flag
// name(s) it shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// intEnv returns an apply function that ignores values that are not integers.
func intEnv(set func(*AppConfig, int)) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			set(c, parsed)
		}
	}
}

// boolEnv returns an apply function backed by parseBoolEnv.
func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides,
// grouped numeric, duration, string, bool.
var envOverrides = []envOverride{
	{"THRESHOLD", []string{"threshold"}, intEnv(func(c *AppConfig, v int) { c.Threshold = v })},
	{"SKEW_THRESHOLD", []string{"skew-threshold"}, intEnv(func(c *AppConfig, v int) { c.SkewThreshold = v })},
	{"SKEW_MAX_LEN", []string{"skew-max-len"}, intEnv(func(c *AppConfig, v int) { c.SkewMaxLen = v })},
	{"NATIVE_MAX", []string{"native-max"}, intEnv(func(c *AppConfig, v int) { c.NativeMaxDigits = v })},
	{"MAX_TASKS", []string{"max-tasks"}, intEnv(func(c *AppConfig, v int) { c.MaxTasks = v })},
	{"MAX_DIGITS", []string{"max-digits"}, intEnv(func(c *AppConfig, v int) { c.MaxDigits = v })},
	{"RATE_LIMIT", []string{"rate-limit"}, intEnv(func(c *AppConfig, v int) { c.RateLimit = v })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"OP", []string{"op"}, func(c *AppConfig, v string) { c.Op = v }},
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"GC", []string{"gc"}, func(c *AppConfig, v string) { c.GCMode = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"SERVE", []string{"serve"}, func(c *AppConfig, v string) { c.Serve = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},

	{"SEQUENTIAL", []string{"sequential"}, boolEnv(func(c *AppConfig) *bool { return &c.Sequential })},
	{"VERBOSE", []string{"v", "verbose"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolEnv(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"CALCULATE", []string{"calculate", "c"}, boolEnv(func(c *AppConfig) *bool { return &c.ShowValue })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
	{"CALIBRATE", []string{"calibrate"}, boolEnv(func(c *AppConfig) *bool { return &c.Calibrate })},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, boolEnv(func(c *AppConfig) *bool { return &c.AutoCalibrate })},
	{"TRACE", []string{"trace"}, boolEnv(func(c *AppConfig) *bool { return &c.Trace })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
