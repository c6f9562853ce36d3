package config

import (
	"flag"
	"io"

	"github.com/OscarDom1/community-resource-platform/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     server base URL
//	-t string     token directory
//	-r duration   request timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-r"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.TokenDir, "t", cfg.TokenDir, "directory for the saved session token")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
