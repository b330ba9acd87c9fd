// Command graphsrvd is the process entry point: it resolves the listening
// port (command-line argument 1 overrides the default, mirroring
// original_source/part_9/apps/server.cpp's run_server argv handling), builds
// the configuration, and runs the server until shutdown.
package main

import (
	"os"
	"strconv"

	"github.com/yarinkash1/graphsrv/internal/config"
	"github.com/yarinkash1/graphsrv/internal/logging"
	"github.com/yarinkash1/graphsrv/internal/server"
)

func main() {
	log := logging.New()

	argvPort := 0
	if len(os.Args) >= 2 {
		if p, err := strconv.Atoi(os.Args[1]); err == nil && p > 0 {
			argvPort = p
		}
	}

	cfg := config.Load(argvPort)

	if err := server.Run(cfg, log); err != nil {
		log.WithError(err).Error("graphsrvd: fatal bootstrap error")
		os.Exit(1)
	}
	os.Exit(0)
}
