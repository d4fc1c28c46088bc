package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/softhub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   listen address (e.g. ":3001")
//	-k string   upload token
//	-d string   data directory
//	-f string   frontend build directory
//	-m int      max upload size, MiB
//	-strict     refuse to start without an upload token
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"a", "k", "d", "f", "m"}, "strict")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.UploadToken, "k", config.UploadToken, "upload token")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.FrontendDir, "f", config.FrontendDir, "frontend build directory")
	maxUpload := fs.Int64("m", config.MaxUploadSize/MiB, "max upload size (in MiB)")
	fs.BoolVar(&config.RequireUploadToken, "strict", config.RequireUploadToken, "refuse to start without upload token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.MaxUploadSize = *maxUpload * MiB
}
