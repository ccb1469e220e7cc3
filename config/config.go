// Package config handles the ls8 command configuration.
//
// Options may be set in a TOML file named by the -config flag. Flags given
// on the command line override the file.
package config

import (
	"flag"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// Config is the emulator configuration.
type Config struct {
	Assembly         bool `toml:"assembly"`          // Program is assembly source.
	Trace            bool `toml:"trace"`             // Trace each instruction.
	Verbose          bool `toml:"verbose"`           // Verbose logging.
	SpeculativeFetch bool `toml:"speculative_fetch"` // Always fetch two operand bytes.
	TickLimit        int  `toml:"tick_limit"`        // Maximum instructions, 0 for no limit.
}

// ErrUndecoded lists configuration keys that are not understood.
type ErrUndecoded []string

func (err ErrUndecoded) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Load decodes the TOML file at path into cfg.
// Keys absent from the file leave cfg unchanged.
func Load(path string, cfg *Config) (err error) {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make(ErrUndecoded, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
		return
	}

	return
}

// Flags registers the configuration flags on fs.
func (cfg *Config) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&cfg.Assembly, "a", cfg.Assembly, "Program is assembly source, not binary text")
	fs.BoolVar(&cfg.Trace, "t", cfg.Trace, "Trace each instruction to stderr")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose mode")
	fs.BoolVar(&cfg.SpeculativeFetch, "speculative", cfg.SpeculativeFetch, "Always fetch two operand bytes")
	fs.IntVar(&cfg.TickLimit, "limit", cfg.TickLimit, "Maximum instructions to execute, 0 for no limit")
}

// Parse parses the command line arguments into a configuration.
// If a -config file is named, it is loaded, then the flags given on the
// command line are applied over it.
func Parse(fs *flag.FlagSet, arguments []string) (cfg Config, err error) {
	var path string

	cfg.Flags(fs)
	fs.StringVar(&path, "config", "", "TOML configuration file")

	err = fs.Parse(arguments)
	if err != nil {
		return
	}

	if len(path) == 0 {
		return
	}

	explicit := map[string]string{}
	fs.Visit(func(fl *flag.Flag) {
		explicit[fl.Name] = fl.Value.String()
	})

	err = Load(path, &cfg)
	if err != nil {
		return
	}

	for name, value := range explicit {
		err = fs.Set(name, value)
		if err != nil {
			return
		}
	}

	return
}
