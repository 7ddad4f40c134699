package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigFile string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.StringVar(&flags.ConfigFile, "config", "config.yaml", "Configuration file path")
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// SplitFlags holds the CLI flags for the offline split calculator.
type SplitFlags struct {
	File    string
	Verbose bool
}

// ParseSplitFlags parses command line flags for the split command.
func ParseSplitFlags() *SplitFlags {
	flags := &SplitFlags{}
	flag.StringVar(&flags.File, "file", "bill.yaml", "Bill file to compute")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
