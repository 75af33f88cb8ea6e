package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a snapshot of the machine and this process, printed with the
// export performance report.
type HostStats struct {
	LogicalCPUs int
	Goroutines  int
	MemTotal    uint64
	MemUsedPct  float64
	ProcessRSS  uint64
	ProcessCPU  float64
}

// Snapshot collects host statistics. Fields that cannot be read on this
// platform are left zero and the first such error is returned alongside.
func Snapshot() (HostStats, error) {
	st := HostStats{Goroutines: runtime.NumGoroutine()}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	n, err := cpu.Counts(true)
	keep(err)
	st.LogicalCPUs = n

	if vm, err := mem.VirtualMemory(); err == nil {
		st.MemTotal = vm.Total
		st.MemUsedPct = vm.UsedPercent
	} else {
		keep(err)
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			st.ProcessRSS = info.RSS
		} else {
			keep(err)
		}
		if pct, err := proc.CPUPercent(); err == nil {
			st.ProcessCPU = pct
		} else {
			keep(err)
		}
	} else {
		keep(err)
	}

	return st, firstErr
}

func (s HostStats) String() string {
	return fmt.Sprintf("CPUs: %d | Goroutines: %d | Host memory: %s (%.1f%% used) | RSS: %s | Process CPU: %.1f%%",
		s.LogicalCPUs, s.Goroutines, FormatBytes(s.MemTotal), s.MemUsedPct, FormatBytes(s.ProcessRSS), s.ProcessCPU)
}

// FormatBytes renders n with a binary unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
