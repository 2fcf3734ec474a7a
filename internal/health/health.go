package health

import (
	"context"
	"time"

	"chem-backend/internal/metrics"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is the part of pgxpool.Pool the checker needs
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db         Pinger
	redisCheck func() bool
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type DetailedStatus struct {
	HealthStatus
	Redis string    `json:"redis"`
	Host  HostStats `json:"host"`
	Time  time.Time `json:"time"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      uint64  `json:"disk_used_bytes"`
	DiskTotal     uint64  `json:"disk_total_bytes"`
}

// NewHealthChecker builds a checker. redisCheck may be nil when Redis is
// not configured.
func NewHealthChecker(db Pinger, redisCheck func() bool) *HealthChecker {
	return &HealthChecker{db: db, redisCheck: redisCheck}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds cache and host resource information. Redis being down
// degrades the service but does not make it unhealthy.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	basic := h.CheckBasic()

	redisStatus := "disabled"
	if h.redisCheck != nil {
		redisStatus = "healthy"
		if !h.redisCheck() {
			redisStatus = "unavailable"
			if basic.Status == "healthy" {
				basic.Status = "degraded"
			}
		}
	}

	return DetailedStatus{
		HealthStatus: basic,
		Redis:        redisStatus,
		Host:         SampleHost(),
		Time:         time.Now(),
	}
}

func (h *HealthChecker) checkDatabase() ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: "unhealthy"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

// SampleHost reads CPU, memory and disk usage of the current host and
// publishes them to the host gauges.
func SampleHost() HostStats {
	var stats HostStats

	cpuPercents, _ := cpu.Percent(200*time.Millisecond, false)
	if len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}

	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = memStats.Used
		stats.MemoryTotal = memStats.Total
	}

	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = diskStats.Used
		stats.DiskTotal = diskStats.Total
	}

	metrics.CPUPercent.Set(stats.CPUPercent)
	metrics.MemoryPercent.Set(stats.MemoryPercent)
	metrics.DiskPercent.Set(stats.DiskPercent)
	return stats
}

// RunHostSampler refreshes the host gauges every interval until ctx ends
func RunHostSampler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			SampleHost()
		}
	}
}
