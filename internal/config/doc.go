// Package config provides the configuration of loanqa.
// It defines where the dataset lives, how it is generated, and which report
// and profile artifacts are written. Values are layered from built-in
// defaults, a YAML configuration file, LOANQA_* environment variables and
// finally command-line flags.
package config
