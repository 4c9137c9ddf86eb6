// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// processStats is the resource summary shown on the status page.
type processStats struct {
	Available  bool
	RSSMB      float64
	CPUPercent float64
	Threads    int32
	Goroutines int
}

// readProcessStats samples this process. Fields gopsutil cannot read on the
// current platform stay zero.
func readProcessStats() processStats {
	stats := processStats{Goroutines: runtime.NumGoroutine()}

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pids fit in int32
	if err != nil {
		return stats
	}
	if mem, err := p.MemoryInfo(); err == nil {
		stats.Available = true
		stats.RSSMB = float64(mem.RSS) / (1 << 20)
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if n, err := p.NumThreads(); err == nil {
		stats.Threads = n
	}
	return stats
}
