// Package connection implements the per-connection request loop: read one
// request, build a Job, enqueue it, then wait for the aggregator's
// completion signal before reading the next one. Grounded on
// original_source/part_9/apps/server.cpp's handle_client and the teacher's
// internal/server.HandleConn (trace-field-per-connection, one function per
// socket), adapted from a one-shot HTTP/1.0 request into this package's
// persistent multi-request loop.
package connection

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yarinkash1/graphsrv/internal/graph"
	"github.com/yarinkash1/graphsrv/internal/job"
	"github.com/yarinkash1/graphsrv/internal/protocol"
	"github.com/yarinkash1/graphsrv/internal/randomgraph"
	"github.com/yarinkash1/graphsrv/internal/util"
)

// Submitter is the subset of *pipeline.Pipeline the handler needs; declared
// as an interface here so handler tests can substitute a fake pipeline.
type Submitter interface {
	Submit(j *job.Job) error
}

// ActivityTracker receives lifecycle notifications so the idle watchdog and
// active-client counter stay accurate; satisfied by *lifecycle.Controller.
type ActivityTracker interface {
	OnAccept()
	OnDisconnect()
	Touch()
	RequestShutdown()
}

// Handle runs the persistent per-connection loop until EXIT, SHUTDOWN, a
// socket error, or EOF. It always closes conn before returning.
func Handle(conn net.Conn, pipe Submitter, tracker ActivityTracker, log *logrus.Logger) {
	connID := util.NewID()
	logger := log.WithField("conn_id", connID)

	tracker.OnAccept()
	defer tracker.OnDisconnect()
	defer conn.Close()

	r := bufio.NewReader(conn)
	seq := 0

	for {
		raw, err := protocol.ReadFrame(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.WithError(err).Debug("connection: read error")
			}
			return
		}
		if raw == "" {
			return
		}
		tracker.Touch()

		if exit, shutdown := protocol.ClassifyFrame(raw); exit || shutdown {
			if exit {
				_ = protocol.WriteOK(conn, "BYE")
			} else {
				_ = protocol.WriteOK(conn, "SERVER_SHUTTING_DOWN")
				tracker.RequestShutdown()
			}
			return
		}

		seq++
		j, perr := buildJob(connID, seq, raw, conn)
		if perr != nil {
			_ = protocol.WriteErr(conn, perr.Error())
			if halfClosed(conn, r) {
				return
			}
			continue
		}

		if err := pipe.Submit(j); err != nil {
			logger.WithError(err).Warn("connection: pipeline closed, dropping request")
			return
		}

		j.Wait()
		tracker.Touch()

		if halfClosed(conn, r) {
			return
		}
	}
}

// buildJob parses raw into a Request, constructs the graph (explicit edges
// or random generation), and assembles a Job. Grounded on handle_client's
// steps 3-7.
func buildJob(connID string, seq int, raw string, conn net.Conn) (*job.Job, error) {
	req, err := protocol.Parse(raw)
	if err != nil {
		return nil, err
	}

	if req.V <= 0 {
		return nil, protocol.NewParseError("Missing/invalid V")
	}
	if req.V > protocol.VSafeMax {
		return nil, protocol.NewParseError("V too large")
	}

	var g *graph.Graph
	if req.Random {
		if req.E < 0 {
			return nil, protocol.NewParseError("Missing/invalid E")
		}
		e := protocol.ClampEdgeCount(req.V, req.E, req.Directed)
		wmin, wmax := protocol.NormalizeWeightRange(req.WMin, req.WMax)
		g, err = randomgraph.Generate(req.V, e, req.Seed, req.Directed, wmin, wmax)
		if err != nil {
			return nil, err
		}
	} else {
		g, err = graph.New(req.V, req.Directed)
		if err != nil {
			return nil, err
		}
		for _, e := range req.Edges {
			if e.U < 0 || e.V < 0 || e.U >= req.V || e.V >= req.V {
				return nil, protocol.NewParseError("Invalid EDGE vertex index")
			}
			if e.W <= 0 {
				return nil, protocol.NewParseError("Invalid EDGE weight")
			}
		}
		for _, e := range req.Edges {
			if err := g.AddEdge(e.U, e.V, e.W); err != nil {
				return nil, err
			}
		}
	}

	kind, err := kindFromAlg(req.Alg)
	if err != nil {
		return nil, err
	}

	return job.New(connID, seq, kind, req.Directed, g, req.Params, conn), nil
}

func kindFromAlg(alg string) (job.Kind, error) {
	switch alg {
	case "PREVIEW":
		return job.KindPreview, nil
	case "ALL":
		return job.KindAll, nil
	case "MAX_FLOW":
		return job.KindSingleMaxFlow, nil
	case "SCC":
		return job.KindSingleSCC, nil
	case "MST":
		return job.KindSingleMST, nil
	case "CLIQUES":
		return job.KindSingleCliques, nil
	default:
		return "", protocol.NewParseError("Unsupported algorithm")
	}
}

// halfClosed probes whether the peer has closed its write side without
// blocking the handler indefinitely: it gives the socket a brief deadline
// and attempts to Peek a byte through the same buffered reader the handler
// reads requests from, so any bytes it consumes remain visible to the next
// ReadFrame call. A clean EOF means the peer half-closed; a timeout means
// the connection is open with nothing pending yet, the common case. This is
// the Go analogue of original_source's peer_already_closed_write
// (MSG_PEEK|MSG_DONTWAIT).
func halfClosed(conn net.Conn, r *bufio.Reader) bool {
	if r.Buffered() > 0 {
		return false
	}
	_ = conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	_, err := r.Peek(1)
	_ = conn.SetReadDeadline(time.Time{})
	return errors.Is(err, io.EOF)
}
