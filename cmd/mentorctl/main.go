// Command mentorctl runs maintenance tasks against the mentor-hub database:
// schema migrations, bootstrap of the first administrator and manual
// pruning of stale refresh tokens.
//
// It reads the same environment variables as the server. A config file can
// be supplied with --config.
package main

import (
	"fmt"
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCommand(newCLI()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
