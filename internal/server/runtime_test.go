package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkConnAccepted_IncrementsConnCount(t *testing.T) {
	before := ConnCount()
	MarkConnAccepted()
	MarkConnAccepted()
	assert.Equal(t, before+2, ConnCount())
}

func TestUptime_GrowsOverTime(t *testing.T) {
	u1 := Uptime()
	time.Sleep(5 * time.Millisecond)
	u2 := Uptime()
	assert.Greater(t, u2, u1)
}

func TestPID_MatchesOSProcess(t *testing.T) {
	assert.Greater(t, PID(), 0)
}

func TestStartedAt_IsNotZero(t *testing.T) {
	assert.False(t, StartedAt().IsZero())
}
