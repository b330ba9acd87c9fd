package server

import (
	"os"
	"sync/atomic"
	"time"
)

var (
	started  = time.Now()
	connSeen uint64
)

// MarkConnAccepted records one more accepted connection for the process
// uptime/connection-count snapshot logged on SIGUSR1.
func MarkConnAccepted() { atomic.AddUint64(&connSeen, 1) }

func Uptime() time.Duration { return time.Since(started) }
func ConnCount() uint64     { return atomic.LoadUint64(&connSeen) }
func PID() int              { return os.Getpid() }
func StartedAt() time.Time  { return started }
