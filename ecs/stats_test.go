package ecs

import (
	"testing"
	"time"
)

func TestSystemStatsRecord(t *testing.T) {
	var s systemStatsInternal
	s.record(3 * time.Millisecond)
	s.record(1 * time.Millisecond)
	s.record(2 * time.Millisecond)

	if s.executionCount != 3 {
		t.Errorf("expected 3 executions, got %d", s.executionCount)
	}
	if s.minDuration != time.Millisecond {
		t.Errorf("expected 1ms min, got %v", s.minDuration)
	}
	if s.maxDuration != 3*time.Millisecond {
		t.Errorf("expected 3ms max, got %v", s.maxDuration)
	}
	if s.lastDuration != 2*time.Millisecond {
		t.Errorf("expected 2ms last, got %v", s.lastDuration)
	}
}

type sleepSystem struct {
	SystemBase
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepSystem) Execute(frame *UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

type slowerSystem struct{ sleepSystem }

func TestSchedulerStats(t *testing.T) {
	world := NewWorld(WorldConfig{}, nil)
	scheduler := NewScheduler(world)

	stats := scheduler.Stats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	sys1 := &sleepSystem{SystemBase: NewSystemBase(CategoryPhysics, 0), sleepDur: time.Millisecond}
	sys2 := &slowerSystem{sleepSystem{SystemBase: NewSystemBase(CategoryRender, 0), sleepDur: 2 * time.Millisecond}}
	world.Systems.Register(sys1)
	world.Systems.Register(sys2)

	stats = scheduler.Stats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.Stats()

	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}
	if len(stats.Systems) != 2 {
		t.Fatalf("expected 2 system stats, got %d", len(stats.Systems))
	}
	if stats.Systems[0].Name != "sleepSystem" || stats.Systems[1].Name != "slowerSystem" {
		t.Errorf("unexpected system order %q, %q", stats.Systems[0].Name, stats.Systems[1].Name)
	}

	for _, sysStats := range stats.Systems {
		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}
		if sysStats.MinDuration == 0 {
			t.Errorf("expected non-zero min duration")
		}
		if sysStats.AvgDuration < sysStats.MinDuration || sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("average %v outside [%v, %v]", sysStats.AvgDuration, sysStats.MinDuration, sysStats.MaxDuration)
		}
	}

	if stats.Systems[1].MinDuration < 2*time.Millisecond {
		t.Errorf("expected render system to take at least 2ms, got %v", stats.Systems[1].MinDuration)
	}
}
