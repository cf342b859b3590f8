package config

import (
	"flag"
	"os"
	"time"

	"github.com/qiwen5/dressup/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend kind: embedded or remote
//	-d string   path to the local SQLite database file
//	-a string   base URL of the generation relay
//	-t int      generation timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend kind (embedded|remote)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.RelayBaseURL, "a", cfg.RelayBaseURL, "base URL of the generation relay")
	generationTimeout := fs.Int("t", int(cfg.GenerationTimeout.Seconds()), "generation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.GenerationTimeout = time.Duration(*generationTimeout) * time.Second
}
