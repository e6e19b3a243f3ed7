package sysmon

import (
	"context"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s, err := Sample(context.Background())
	if err != nil {
		t.Skipf("system statistics unavailable: %v", err)
	}
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent <= 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.MemUsed > s.MemTotal {
		t.Errorf("MemUsed %d exceeds MemTotal %d", s.MemUsed, s.MemTotal)
	}
}
