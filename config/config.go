// Package config holds the values that can be configured through the
// external configuration file. It is read once at construction time;
// the engine never re-reads it mid-session.
package config

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Config holds all the data that can be configured in the external
// configuration file.
type Config struct {
	// Timeout is how long, in milliseconds, a session waits for a
	// label key before giving up and clearing its markers.
	Timeout int `json:"Timeout" yaml:"Timeout"`

	// JumpOnTrigger moves the cursor to the first match immediately,
	// before labels are assigned to the remaining matches.
	JumpOnTrigger bool `json:"JumpOnTrigger" yaml:"JumpOnTrigger"`

	// WordJump restricts matches to word-start occurrences.
	WordJump bool `json:"WordJump" yaml:"WordJump"`

	// Style configures how the demo viewer draws markers.
	Style StyleSet `json:"Style" yaml:"Style"`
}

// StyleSet names the colors used by the bundled viewer. Values are
// color names understood by tcell ("red", "aqua", ...).
type StyleSet struct {
	Label     string `json:"Label" yaml:"Label"`
	Remainder string `json:"Remainder" yaml:"Remainder"`
	Cursor    string `json:"Cursor" yaml:"Cursor"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.Init()
	return c
}

// Init initializes the Config with default values.
func (c *Config) Init() {
	c.Timeout = 1000
	c.JumpOnTrigger = true
	c.WordJump = true
	c.Style = StyleSet{
		Label:     "red",
		Remainder: "yellow",
		Cursor:    "aqua",
	}
}

// ReadFilename reads the YAML configuration file at filename over the
// current values. Keys that are absent from the file keep their
// defaults.
func (c *Config) ReadFilename(filename string) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read configuration file %s", filename)
	}

	if err := yaml.Unmarshal(buf, c); err != nil {
		return errors.Wrapf(err, "failed to parse configuration file %s", filename)
	}

	return errors.Wrap(c.Validate(), "invalid configuration")
}

// Validate checks the configured values for consistency.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.Errorf("Timeout must be >= 0, got %d", c.Timeout)
	}
	return nil
}

// TimeoutDuration returns the selection timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}
