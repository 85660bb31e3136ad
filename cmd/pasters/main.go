// pasters is a command line client for paste.rs.
//
// Usage:
//
//	pasters get <value> [-o <path>]   Print or save a paste (id, paste.rs/<id> or URL)
//	pasters new <file>                Upload a file as a new paste
//	pasters serve [--addr <addr>]     Run a local paste.rs-compatible server
//	pasters version                   Print the version
package main

import (
	"context"
	"os"

	"github.com/tombowditch/pasters/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(cli.Run(context.Background(), version, os.Args[1:], os.Stdout, os.Stderr))
}
