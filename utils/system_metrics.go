package utils

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// SystemSnapshot is the host load reported by the health endpoint.
type SystemSnapshot struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_used_percent"`
}

// GetSystemSnapshot samples CPU usage since the previous call without
// blocking, plus current memory usage. Failed samples are reported as 0.
func GetSystemSnapshot() SystemSnapshot {
	var snap SystemSnapshot

	percentage, err := cpu.Percent(0, false)
	if err != nil {
		zap.L().Warn("failed to read cpu usage", zap.Error(err))
	} else if len(percentage) > 0 {
		snap.CPUPercent = percentage[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		zap.L().Warn("failed to read memory usage", zap.Error(err))
	} else {
		snap.MemoryPercent = vm.UsedPercent
	}

	return snap
}
