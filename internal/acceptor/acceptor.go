// Package acceptor implements the Leader–Follower worker pool: a fixed
// number of workers contend for a single listening socket, and exactly one
// at a time is blocked in Accept. Grounded on
// original_source/part_9/apps/server.cpp's lf_server_loop, translated from a
// condition-variable wait predicate to sync.Cond with the same mutex/CV
// shape the spec requires, and from detached std::thread + t.join() to
// golang.org/x/sync/errgroup for supervised shutdown join, mirroring the
// teacher's internal/sched.Pool worker-goroutine-per-slot structure.
package acceptor

import (
	"errors"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ConnHandler processes one accepted connection to completion.
type ConnHandler func(net.Conn)

// ShutdownAware is the subset of *lifecycle.Controller the pool needs to
// know whether to stop contending for leadership.
type ShutdownAware interface {
	ShutdownRequested() bool
	Done() <-chan struct{}
}

// Pool runs W worker goroutines implementing Leader–Follower over ln.
type Pool struct {
	ln      net.Listener
	workers int
	handle  ConnHandler
	ctrl    ShutdownAware
	log     *logrus.Logger

	mu         sync.Mutex
	cond       *sync.Cond
	leaderBusy bool
}

// New constructs a Pool. Call Run to start the worker goroutines; Run blocks
// until every worker has exited (normally only after shutdown).
func New(ln net.Listener, workers int, handle ConnHandler, ctrl ShutdownAware, log *logrus.Logger) *Pool {
	p := &Pool{ln: ln, workers: workers, handle: handle, ctrl: ctrl, log: log}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Run launches the fixed-size worker pool and blocks until every worker
// returns. A separate goroutine wakes all waiters once shutdown is
// requested, since sync.Cond has no native context/channel integration.
func (p *Pool) Run() error {
	stopWake := make(chan struct{})
	go func() {
		select {
		case <-p.ctrl.Done():
			p.mu.Lock()
			p.cond.Broadcast()
			p.mu.Unlock()
		case <-stopWake:
		}
	}()
	defer close(stopWake)

	g := &errgroup.Group{}
	for i := 0; i < p.workers; i++ {
		g.Go(p.worker)
	}
	return g.Wait()
}

// worker is the Leader–Follower loop run by each pool goroutine.
func (p *Pool) worker() error {
	for {
		p.mu.Lock()
		for p.leaderBusy && !p.ctrl.ShutdownRequested() {
			p.cond.Wait()
		}
		if p.ctrl.ShutdownRequested() {
			p.mu.Unlock()
			return nil
		}
		// Become the leader: from here until accept returns, no other
		// worker may call Accept.
		p.leaderBusy = true
		p.mu.Unlock()

		conn, err := p.ln.Accept()

		// Promote a follower immediately, before handling the connection.
		p.mu.Lock()
		p.leaderBusy = false
		p.mu.Unlock()
		p.cond.Signal()

		if err != nil {
			if p.ctrl.ShutdownRequested() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			p.log.WithError(err).Warn("acceptor: accept failed")
			continue
		}

		p.handle(conn)
	}
}
