package config

import "time"

// Backend describes how to reach the detection backend.
type Backend struct {
	URL            string        `yaml:"url" mapstructure:"url"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// Poll controls the emotions polling loop.
type Poll struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Display controls how the video display is surfaced.
type Display struct {
	// OpenBrowser opens the video feed in the system browser whenever
	// the video display becomes visible.
	OpenBrowser bool `yaml:"open_browser" mapstructure:"open_browser"`
}

// Log controls diagnostic logging.
type Log struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Timestamps bool   `yaml:"timestamps" mapstructure:"timestamps"`
}

// Config represents the .emocam/config.yaml file.
type Config struct {
	Backend Backend `yaml:"backend" mapstructure:"backend"`
	Poll    Poll    `yaml:"poll" mapstructure:"poll"`
	Display Display `yaml:"display" mapstructure:"display"`
	Log     Log     `yaml:"log" mapstructure:"log"`
}
