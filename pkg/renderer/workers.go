package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// HostInfo describes the machine the renderer runs on
type HostInfo struct {
	CPUModel     string
	LogicalCores int
	ClockGHz     float64
	TotalRAMGB   uint64
}

// GetHostInfo queries CPU and memory details
func GetHostInfo() (HostInfo, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return HostInfo{}, fmt.Errorf("reading cpu info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return HostInfo{}, fmt.Errorf("no CPU information available")
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return HostInfo{}, fmt.Errorf("reading memory info: %w", err)
	}

	return HostInfo{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: DefaultWorkers(),
		ClockGHz:     cpuInfo[0].Mhz / 1000,
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

func (h HostInfo) String() string {
	return fmt.Sprintf("%s, %d logical cores @ %.2f GHz, %d GB RAM", h.CPUModel, h.LogicalCores, h.ClockGHz, h.TotalRAMGB)
}
