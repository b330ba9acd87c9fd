// Package job defines the unit of work that flows through the pipeline.
// Grounded on original_source/part_9/include/pipeline.hpp's Job struct and
// the teacher's internal/jobs.Job (ID/Status/Result-slot shape), adapted from
// an HTTP job-tracking record to a pipeline-internal work item: no status
// enum or TTL-based GC here, since a Job's entire lifetime is one pass
// through the stages ending in exactly one aggregator reply.
package job

import (
	"net"
	"time"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// Kind selects which stages a Job traverses, per the routing table in
// SPEC_FULL.md §4.3.
type Kind string

const (
	KindPreview        Kind = "PREVIEW"
	KindAll            Kind = "ALL"
	KindSingleMaxFlow  Kind = "SINGLE_MAX_FLOW"
	KindSingleSCC      Kind = "SINGLE_SCC"
	KindSingleMST      Kind = "SINGLE_MST"
	KindSingleCliques  Kind = "SINGLE_CLIQUES"
)

// Job is constructed once by the connection handler and owned by exactly one
// stage at a time; handoff between stages is via a queue.Queue[*Job].
type Job struct {
	// ConnID correlates this Job's log lines with its owning connection; it
	// is not used for routing, the reply is delivered via Conn directly.
	ConnID string
	// Seq is this Job's 1-based sequence number within its connection,
	// carried for observability only.
	Seq int

	Kind     Kind
	Directed bool
	Graph    *graph.Graph
	Params   map[string]int

	// Conn is the client socket the aggregator writes the reply to. While the
	// Job is in flight only the aggregator stage writes to it; the connection
	// handler probes it for half-close after Wait returns.
	Conn net.Conn

	EnqueuedAt time.Time

	// Result slots, filled by their respective stage; empty until visited.
	MaxFlowResult string
	SCCResult     string
	MSTResult     string
	CliquesResult string

	// done is the one-shot completion latch: the aggregator closes it after
	// writing the reply, and the connection handler blocks on it before
	// reading the next request on the same connection. Modeled as a
	// closed-channel latch rather than sync.WaitGroup because it has exactly
	// one writer (the aggregator) and exactly one reader (the handler), and
	// because a closed channel is safe to wait on from a select alongside
	// other signals (e.g. shutdown) if a future stage needs that.
	done chan struct{}
}

// New constructs a Job ready for enqueueing. The completion latch starts
// un-signaled.
func New(connID string, seq int, kind Kind, directed bool, g *graph.Graph, params map[string]int, conn net.Conn) *Job {
	return &Job{
		ConnID:     connID,
		Seq:        seq,
		Kind:       kind,
		Directed:   directed,
		Graph:      g,
		Params:     params,
		Conn:       conn,
		EnqueuedAt: time.Now(),
		done:       make(chan struct{}),
	}
}

// Done signals the completion latch. Must be called exactly once, by the
// aggregator, after the reply has been written.
func (j *Job) Done() {
	close(j.done)
}

// Wait blocks until Done has been called.
func (j *Job) Wait() {
	<-j.done
}

// EntryStage reports which stage's queue this Job must be pushed to first,
// per the routing table in SPEC_FULL.md §4.3.
func (j *Job) EntryStage() string {
	switch j.Kind {
	case KindPreview:
		return "AGG"
	case KindSingleMaxFlow:
		return "MAX_FLOW"
	case KindSingleSCC:
		return "SCC"
	case KindSingleMST:
		return "MST"
	case KindSingleCliques:
		return "CLIQUES"
	default: // KindAll
		return "MAX_FLOW"
	}
}
