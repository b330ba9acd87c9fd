// Package config reads process configuration from environment variables,
// following the teacher's cmd/server/main.go getenvInt idiom (and
// internal/router's getDurEnv) rather than a flags/config library: every
// setting here is a single scalar read once at bootstrap, which is exactly
// what the teacher's own getenv helpers are for, so pulling in a config
// library (viper, koanf, …) would only wrap a handful of os.Getenv calls the
// codebase already has a working idiom for — see DESIGN.md for the full
// stdlib-vs-library accounting.
package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/yarinkash1/graphsrv/internal/pipeline"
)

// DefaultPort mirrors the reference server's compile-time PORT constant.
const DefaultPort = 9090

// Config holds every environment-overridable setting the server reads at
// startup.
type Config struct {
	Port             int
	Workers          int
	Queues           pipeline.QueueCapacities
	IdleTimeout      time.Duration
	IdleRecheckAfter time.Duration
}

// Load builds a Config from the environment, applying argvPort (command-line
// argument 1, or 0 if absent) as the port override the original's run_server
// honors ahead of the PORT default.
func Load(argvPort int) Config {
	port := DefaultPort
	if argvPort > 0 {
		port = argvPort
	}
	port = getenvInt("PORT", port)

	return Config{
		Port:    port,
		Workers: workerCount(),
		Queues: pipeline.QueueCapacities{
			MaxFlow: getenvInt("QUEUE_MAX_FLOW", 0),
			SCC:     getenvInt("QUEUE_SCC", 0),
			MST:     getenvInt("QUEUE_MST", 0),
			Cliques: getenvInt("QUEUE_CLIQUES", 0),
			Agg:     getenvInt("QUEUE_AGG", 0),
		},
		IdleTimeout:      getDurEnv("IDLE_TIMEOUT", 30*time.Second),
		IdleRecheckAfter: getDurEnv("IDLE_RECHECK_AFTER", 200*time.Millisecond),
	}
}

// workerCount implements max(4, min(8, hardware_concurrency())), overridable
// via WORKERS for tests that want a tiny pool.
func workerCount() int {
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	hc := runtime.NumCPU()
	w := hc
	if w < 4 {
		w = 4
	}
	if w > 8 {
		w = 8
	}
	return w
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getDurEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
