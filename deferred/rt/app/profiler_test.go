package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerScopesKeepOrder(t *testing.T) {
	p := NewProfiler()
	p.BeginScope("load")
	p.EndScope("load")
	p.BeginScope("shade")
	p.EndScope("shade")
	p.BeginScope("load")
	p.EndScope("load")

	assert.Equal(t, []string{"load", "shade"}, p.Order)
}

func TestProfilerAccumulates(t *testing.T) {
	p := NewProfiler()
	p.Scopes["shade"] = 5 * time.Millisecond
	p.StartTimes["shade"] = time.Now().Add(-3 * time.Millisecond)
	d := p.EndScope("shade")

	assert.GreaterOrEqual(t, d, 3*time.Millisecond)
	assert.GreaterOrEqual(t, p.Scopes["shade"], 8*time.Millisecond)
	assert.Equal(t, time.Duration(0), p.EndScope("missing"))
}

func TestProfilerTimePropagatesError(t *testing.T) {
	p := NewProfiler()
	boom := errors.New("boom")
	err := p.Time("encode", func() error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Contains(t, p.Order, "encode")
}

func TestProfilerStatsString(t *testing.T) {
	p := NewProfiler()
	p.BeginScope("shade")
	p.EndScope("shade")
	p.AddCount("pixels", 64)
	p.AddCount("pixels", 64)
	p.AddCount("rows", 8)

	stats := p.GetStatsString()
	assert.Contains(t, stats, "shade")
	assert.Contains(t, stats, "pixels")
	assert.Contains(t, stats, "128")
	assert.Less(t, strings.Index(stats, "pixels"), strings.Index(stats, "rows"))
}
