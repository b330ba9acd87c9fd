// Package pipeline wires the five stages (four algorithm stages plus the
// aggregator) together with blocking queues. Grounded on original_source/part_9/apps/server.cpp's
// stage_max_flow_loop/stage_scc_loop/stage_mst_loop/stage_cliques_loop/
// stage_aggregator_loop, restructured as methods on a Pipeline type in the
// teacher's internal/sched.Pool.Start style (one goroutine per stage,
// started once, joined on shutdown via golang.org/x/sync/errgroup instead of
// detached std::thread).
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/yarinkash1/graphsrv/internal/algorithm"
	"github.com/yarinkash1/graphsrv/internal/job"
	"github.com/yarinkash1/graphsrv/internal/protocol"
	"github.com/yarinkash1/graphsrv/internal/queue"
)

// QueueCapacities configures each stage's entry queue capacity (0 =
// unbounded). Q_agg defaults to unbounded in practice since the aggregator
// must never refuse a stage's hand-off.
type QueueCapacities struct {
	MaxFlow, SCC, MST, Cliques, Agg int
}

// Pipeline owns the five inter-stage queues and the goroutines that drain
// them.
type Pipeline struct {
	log *logrus.Logger

	qMaxFlow *queue.Queue[*job.Job]
	qSCC     *queue.Queue[*job.Job]
	qMST     *queue.Queue[*job.Job]
	qCliques *queue.Queue[*job.Job]
	qAgg     *queue.Queue[*job.Job]

	group *errgroup.Group
}

// New constructs a Pipeline; call Start to launch its stage goroutines.
func New(log *logrus.Logger, caps QueueCapacities) *Pipeline {
	return &Pipeline{
		log:      log,
		qMaxFlow: queue.New[*job.Job](caps.MaxFlow),
		qSCC:     queue.New[*job.Job](caps.SCC),
		qMST:     queue.New[*job.Job](caps.MST),
		qCliques: queue.New[*job.Job](caps.Cliques),
		qAgg:     queue.New[*job.Job](caps.Agg),
	}
}

// Submit pushes j onto the entry queue selected by its kind, per the routing
// table in SPEC_FULL.md §4.3.
func (p *Pipeline) Submit(j *job.Job) error {
	switch j.EntryStage() {
	case "AGG":
		return p.qAgg.Push(j)
	case "SCC":
		return p.qSCC.Push(j)
	case "MST":
		return p.qMST.Push(j)
	case "CLIQUES":
		return p.qCliques.Push(j)
	default: // MAX_FLOW, entered by both SINGLE_MAX_FLOW and ALL
		return p.qMaxFlow.Push(j)
	}
}

// Start launches one goroutine per stage, supervised by an errgroup so Wait
// can join them during shutdown.
func (p *Pipeline) Start(ctx context.Context) {
	g, _ := errgroup.WithContext(ctx)
	p.group = g

	g.Go(p.runMaxFlow)
	g.Go(p.runSCC)
	g.Go(p.runMST)
	g.Go(p.runCliques)
	g.Go(p.runAggregator)
}

// Stop closes all five queues in topological order (entry queues first, then
// the aggregator last) so in-flight Jobs drain without being dropped, then
// waits for every stage goroutine to exit.
func (p *Pipeline) Stop() error {
	p.qMaxFlow.Close()
	p.qSCC.Close()
	p.qMST.Close()
	p.qCliques.Close()
	p.qAgg.Close()
	if p.group != nil {
		return p.group.Wait()
	}
	return nil
}

func (p *Pipeline) runMaxFlow() error {
	for {
		j, err := p.qMaxFlow.Pop()
		if err != nil {
			return nil
		}
		j.MaxFlowResult = runStage("MAX_FLOW", j, p.log)
		if j.Kind == job.KindSingleMaxFlow {
			if err := p.qAgg.Push(j); err != nil {
				p.log.WithError(err).Warn("pipeline: max_flow stage could not hand off to aggregator")
			}
			continue
		}
		if err := p.qSCC.Push(j); err != nil {
			p.log.WithError(err).Warn("pipeline: max_flow stage could not hand off to scc")
		}
	}
}

func (p *Pipeline) runSCC() error {
	for {
		j, err := p.qSCC.Pop()
		if err != nil {
			return nil
		}
		j.SCCResult = runStage("SCC", j, p.log)
		if j.Kind == job.KindSingleSCC {
			if err := p.qAgg.Push(j); err != nil {
				p.log.WithError(err).Warn("pipeline: scc stage could not hand off to aggregator")
			}
			continue
		}
		if err := p.qMST.Push(j); err != nil {
			p.log.WithError(err).Warn("pipeline: scc stage could not hand off to mst")
		}
	}
}

func (p *Pipeline) runMST() error {
	for {
		j, err := p.qMST.Pop()
		if err != nil {
			return nil
		}
		j.MSTResult = runStage("MST", j, p.log)
		if j.Kind == job.KindSingleMST {
			if err := p.qAgg.Push(j); err != nil {
				p.log.WithError(err).Warn("pipeline: mst stage could not hand off to aggregator")
			}
			continue
		}
		if err := p.qCliques.Push(j); err != nil {
			p.log.WithError(err).Warn("pipeline: mst stage could not hand off to cliques")
		}
	}
}

func (p *Pipeline) runCliques() error {
	for {
		j, err := p.qCliques.Pop()
		if err != nil {
			return nil
		}
		j.CliquesResult = runStage("CLIQUES", j, p.log)
		if err := p.qAgg.Push(j); err != nil {
			p.log.WithError(err).Warn("pipeline: cliques stage could not hand off to aggregator")
		}
	}
}

func (p *Pipeline) runAggregator() error {
	for {
		j, err := p.qAgg.Pop()
		if err != nil {
			return nil
		}
		if err := reply(j); err != nil {
			p.log.WithError(xerrors.Errorf("aggregator: write reply: %w", err)).
				WithField("conn_id", j.ConnID).Warn("pipeline: failed to write reply")
		}
		j.Done()
	}
}

// runStage executes the named algorithm against the Job and converts any
// panic into the Job's error-string convention, mirroring the original's
// per-stage try/catch around run_alg_or_error: a stage never kills the
// pipeline, even on an unexpected algorithm failure.
func runStage(name string, j *job.Job, log *logrus.Logger) (result string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("stage", name).WithField("conn_id", j.ConnID).
				Errorf("pipeline: stage panic: %v", r)
			result = "Error: internal failure running " + name
		}
	}()
	return algorithm.Dispatch(name, j.Graph, j.Params, j.Directed)
}

// reply formats and writes the aggregator's response for a Job. It does not
// probe for half-close or close the connection: the connection handler does
// both after the Job's completion latch fires.
func reply(j *job.Job) error {
	var err error
	switch j.Kind {
	case job.KindPreview:
		err = protocol.WriteOK(j.Conn, protocol.SerializeGraphEdges(j.Graph))
	case job.KindSingleMaxFlow:
		err = protocol.WriteOK(j.Conn, j.MaxFlowResult)
	case job.KindSingleSCC:
		err = protocol.WriteOK(j.Conn, j.SCCResult)
	case job.KindSingleMST:
		err = protocol.WriteOK(j.Conn, j.MSTResult)
	case job.KindSingleCliques:
		err = protocol.WriteOK(j.Conn, j.CliquesResult)
	default: // ALL
		body := "RESULT MAX_FLOW=" + j.MaxFlowResult + "\n" +
			"RESULT SCC_COUNT=" + j.SCCResult + "\n" +
			"RESULT MST_WEIGHT=" + j.MSTResult + "\n" +
			"RESULT CLIQUES=" + j.CliquesResult + "\n"
		err = protocol.WriteOK(j.Conn, body)
	}
	return err
}
