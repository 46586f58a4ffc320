// harrec CLI - tooling for HAR trace files produced by the recording client.
package main

import "github.com/getharrec/harrec/pkg/cli"

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})
	cli.Execute()
}
