// Package memmeter logs heap usage at pipeline stage boundaries.
package memmeter

import (
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Meter tracks the largest heap seen across Record calls.
type Meter struct {
	logger *log.Logger
	peak   uint64
}

func New(logger *log.Logger) *Meter {
	return &Meter{logger: logger}
}

// Record samples the heap and logs it under stage at debug level.
func (m *Meter) Record(stage string) uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc > m.peak {
		m.peak = ms.HeapAlloc
	}
	if m.logger != nil {
		m.logger.Debug("memory", "stage", stage, "heap", humanize.Bytes(ms.HeapAlloc), "sys", humanize.Bytes(ms.Sys))
	}
	return ms.HeapAlloc
}

// Peak is the largest heap recorded so far.
func (m *Meter) Peak() uint64 { return m.peak }

// PeakString formats Peak for humans, e.g. "12 MB".
func (m *Meter) PeakString() string { return humanize.Bytes(m.peak) }
