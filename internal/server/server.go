// Package server wires the acceptor pool, pipeline, and lifecycle controller
// together into a running graph service. Grounded on
// original_source/part_9/apps/server.cpp's run_server (socket create, bind,
// listen, start pipeline, start Leader–Follower loop, stop pipeline on
// return) and the teacher's internal/server.ListenAndServe bootstrap shape.
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/yarinkash1/graphsrv/internal/acceptor"
	"github.com/yarinkash1/graphsrv/internal/config"
	"github.com/yarinkash1/graphsrv/internal/connection"
	"github.com/yarinkash1/graphsrv/internal/lifecycle"
	"github.com/yarinkash1/graphsrv/internal/pipeline"
)

// Run creates the listening socket, starts the pipeline and the
// Leader-Follower acceptor pool, and blocks until shutdown. It returns nil on
// a clean shutdown and a non-nil error on bootstrap failure (bind/listen),
// matching the exit-code contract in SPEC_FULL.md §6: callers should exit 1
// on a non-nil error and 0 otherwise.
func Run(cfg config.Config, log *logrus.Logger) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("server: listen on port %d: %w", cfg.Port, err)
	}
	defer ln.Close()

	ctrl := lifecycle.New(log, cfg.IdleTimeout, cfg.IdleRecheckAfter)
	ctrl.SetListener(ln)
	ctrl.OnFlush = func() {
		log.WithField("pid", PID()).
			WithField("uptime", Uptime()).
			WithField("connections_seen", ConnCount()).
			Info("server: process snapshot")
	}
	stopSignals := ctrl.WatchSignals()
	defer stopSignals()
	go ctrl.WatchIdle()

	pipe := pipeline.New(log, cfg.Queues)
	pipe.Start(context.Background())

	log.WithField("port", cfg.Port).WithField("workers", cfg.Workers).
		Info("server: listening with Leader-Follower pool")

	pool := acceptor.New(ln, cfg.Workers, func(conn net.Conn) {
		MarkConnAccepted()
		connection.Handle(conn, pipe, ctrl, log)
	}, ctrl, log)

	var shutdownErrs *multierror.Error
	if err := pool.Run(); err != nil {
		shutdownErrs = multierror.Append(shutdownErrs, fmt.Errorf("acceptor pool: %w", err))
	}
	if err := pipe.Stop(); err != nil {
		shutdownErrs = multierror.Append(shutdownErrs, fmt.Errorf("pipeline stop: %w", err))
	}
	if shutdownErrs.ErrorOrNil() != nil {
		log.WithError(shutdownErrs).Warn("server: shutdown completed with stage errors")
	}

	log.Info("server: shutdown complete")
	return nil
}
