package pipeline

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarinkash1/graphsrv/internal/graph"
	"github.com/yarinkash1/graphsrv/internal/job"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func readFramedReply(t *testing.T, client net.Conn) []string {
	t.Helper()
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	scanner := bufio.NewScanner(client)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "END" {
			break
		}
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func newPipeJob(t *testing.T, kind job.Kind) (*job.Job, net.Conn) {
	t.Helper()
	g, err := graph.New(3, true)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 2))
	require.NoError(t, g.AddEdge(1, 2, 3))
	require.NoError(t, g.AddEdge(2, 0, 1))

	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close(); _ = server.Close() })

	params := map[string]int{"SRC": 0, "SINK": 2, "K": 2}
	j := job.New("conn-test", 1, kind, true, g, params, server)
	return j, client
}

func TestPipeline_ALL_ProducesFourResultLinesInFixedOrder(t *testing.T) {
	p := New(testLogger(), QueueCapacities{})
	p.Start(context.Background())
	defer func() { require.NoError(t, p.Stop()) }()

	j, client := newPipeJob(t, job.KindAll)
	require.NoError(t, p.Submit(j))

	lines := readFramedReply(t, client)
	j.Wait()

	require.Len(t, lines, 5) // "OK" + 4 RESULT lines
	assert.Equal(t, "OK", lines[0])
	assert.Contains(t, lines[1], "RESULT MAX_FLOW=")
	assert.Contains(t, lines[2], "RESULT SCC_COUNT=")
	assert.Contains(t, lines[3], "RESULT MST_WEIGHT=")
	assert.Contains(t, lines[4], "RESULT CLIQUES=")
}

func TestPipeline_SinglesSkipDirectlyToAggregator(t *testing.T) {
	p := New(testLogger(), QueueCapacities{})
	p.Start(context.Background())
	defer func() { require.NoError(t, p.Stop()) }()

	j, client := newPipeJob(t, job.KindSingleMST)
	require.NoError(t, p.Submit(j))

	lines := readFramedReply(t, client)
	j.Wait()

	require.Len(t, lines, 2)
	assert.Equal(t, "OK", lines[0])
	// newPipeJob builds a directed graph, so the MST stage reports the
	// orientation mismatch; the reply is that stage's string verbatim.
	assert.Equal(t, "Error: cannot run MST on directed graph", lines[1])
	assert.Empty(t, j.MaxFlowResult)
	assert.Empty(t, j.SCCResult)
	assert.Empty(t, j.CliquesResult)
}

func TestPipeline_Preview_SerializesGraphWithoutRunningAlgorithms(t *testing.T) {
	p := New(testLogger(), QueueCapacities{})
	p.Start(context.Background())
	defer func() { require.NoError(t, p.Stop()) }()

	j, client := newPipeJob(t, job.KindPreview)
	require.NoError(t, p.Submit(j))

	lines := readFramedReply(t, client)
	j.Wait()

	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "OK", lines[0])
	assert.Contains(t, lines[1], "GRAPH 3 3")
	assert.Empty(t, j.MaxFlowResult)
}

func TestPipeline_Submit_RoutesByEntryStage(t *testing.T) {
	p := New(testLogger(), QueueCapacities{})

	g, err := graph.New(2, true)
	require.NoError(t, err)
	client, server := net.Pipe()
	defer func() { _ = client.Close(); _ = server.Close() }()

	j := job.New("c", 1, job.KindSingleSCC, true, g, nil, server)
	require.NoError(t, p.Submit(j))
	assert.Equal(t, 1, p.qSCC.Len())
	assert.Equal(t, 0, p.qMaxFlow.Len())
}

func TestPipeline_Stop_JoinsAllStageGoroutines(t *testing.T) {
	p := New(testLogger(), QueueCapacities{})
	p.Start(context.Background())
	require.NoError(t, p.Stop())
}
