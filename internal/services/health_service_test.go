package services

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService_HealthCheck(t *testing.T) {
	svc := NewHealthService("1.2.0", "2026-03-01T00:00:00Z", nil)

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())
	assert.Contains(t, status.Runtime, "uptime_seconds")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthService_Version(t *testing.T) {
	svc := NewHealthService("1.2.0", "2026-03-01T00:00:00Z", nil)

	info := svc.Version(context.Background())

	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "2026-03-01T00:00:00Z", info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
}
