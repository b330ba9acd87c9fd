package protocol

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ExplicitEdgesRequest(t *testing.T) {
	raw := "ALG ALL\nDIRECTED 1\nRANDOM 0\nV 3\nE 3\nEDGE 0 1 1\nEDGE 1 2 1\nEDGE 0 2 1\nPARAM SRC 0\nPARAM SINK 2\nEND\n"
	req, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ALL", req.Alg)
	assert.True(t, req.Directed)
	assert.False(t, req.Random)
	assert.Equal(t, 3, req.V)
	assert.Equal(t, 3, req.E)
	require.Len(t, req.Edges, 3)
	assert.Equal(t, Edge{0, 1, 1}, req.Edges[0])
	assert.Equal(t, 0, req.Params["SRC"])
	assert.Equal(t, 2, req.Params["SINK"])
}

func TestParse_UnknownDirective_ReturnsParseError(t *testing.T) {
	raw := "ALG ALL\nBOGUS 1\nEND\n"
	_, err := Parse(raw)
	require.Error(t, err)
	assert.Equal(t, "Unknown directive: BOGUS 1", err.Error())
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	raw := "ALG PREVIEW\n\nV 2\n\nEND\n"
	req, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "PREVIEW", req.Alg)
	assert.Equal(t, 2, req.V)
}

func TestParse_EdgeDefaultWeight(t *testing.T) {
	raw := "ALG MST\nEDGE 0 1\nEND\n"
	req, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, req.Edges, 1)
	assert.Equal(t, 1, req.Edges[0].W)
}

func TestClassifyFrame(t *testing.T) {
	exit, shutdown := ClassifyFrame("EXIT\n")
	assert.True(t, exit)
	assert.False(t, shutdown)

	exit, shutdown = ClassifyFrame("SHUTDOWN\n")
	assert.False(t, exit)
	assert.True(t, shutdown)

	exit, shutdown = ClassifyFrame("ALG ALL\nV 2\nEND\n")
	assert.False(t, exit)
	assert.False(t, shutdown)
}

func TestReadFrame_StopsAtEND(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("ALG ALL\nV 2\nEND\nGARBAGE_AFTER"))
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "ALG ALL\nV 2\nEND\n", frame)
}

func TestReadFrame_StopsAtEXIT(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("EXIT\n"))
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "EXIT\n", frame)
}

func TestClampEdgeCount_DirectedAndUndirected(t *testing.T) {
	assert.Equal(t, 6, ClampEdgeCount(4, 100, false)) // V(V-1)/2 = 6
	assert.Equal(t, 12, ClampEdgeCount(4, 100, true))  // V(V-1) = 12
	assert.Equal(t, 0, ClampEdgeCount(4, -5, false))
}

func TestNormalizeWeightRange_SwapsWhenInverted(t *testing.T) {
	wmin, wmax := NormalizeWeightRange(10, 2)
	assert.Equal(t, 2, wmin)
	assert.Equal(t, 10, wmax)

	wmin, wmax = NormalizeWeightRange(1, 5)
	assert.Equal(t, 1, wmin)
	assert.Equal(t, 5, wmax)
}

func TestWriteOK_FramesBodyWithENDAndTrailingNewline(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteOK(&b, "BYE"))
	assert.Equal(t, "OK\nBYE\nEND\n", b.String())
}

func TestWriteErr_Framing(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteErr(&b, "Missing/invalid V"))
	assert.Equal(t, "ERR\nMissing/invalid V\nEND\n", b.String())
}
