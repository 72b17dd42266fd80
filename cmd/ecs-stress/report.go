package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/kiln/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int
	Churn      int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	FinalEntities  int
	SlowSystems    []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes frame durations.
type Stats struct {
	Min, Max, Avg time.Duration
	P50, P95, P99 time.Duration
	Samples       []time.Duration
}

// Finalize sorts the samples and fills in the summary fields.
func (s *Stats) Finalize() {
	n := len(s.Samples)
	if n == 0 {
		return
	}
	slices.Sort(s.Samples)

	var total time.Duration
	for _, d := range s.Samples {
		total += d
	}
	s.Min, s.Max = s.Samples[0], s.Samples[n-1]
	s.Avg = total / time.Duration(n)
	s.P50 = s.percentile(50)
	s.P95 = s.percentile(95)
	s.P99 = s.percentile(99)
}

// percentile expects sorted samples.
func (s *Stats) percentile(p int) time.Duration {
	return s.Samples[(len(s.Samples)-1)*p/100]
}

// UpdatesPerSecond is the mean frame rate over the whole run.
func (r *Report) UpdatesPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalUpdates) / r.TotalTime.Seconds()
}

// SetSystems keeps the n systems with the highest average run time.
func (r *Report) SetSystems(stats []ecs.SystemStats, n int) {
	stats = slices.Clone(stats)
	slices.SortFunc(stats, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	r.SlowSystems = stats[:min(n, len(stats))]
}

const reportTemplate = `
# ECS Stress Test Report

## Configuration
| Setting             | Value |
|---------------------|-------|
| Duration            | {{.Duration}} |
| Initial entities    | {{.Entities}} |
| Component types     | {{.Components}} |
| Systems             | {{.Systems}} |
| Churn per frame     | {{.Churn}} |

## Frames
- {{.TotalUpdates}} updates in {{.TotalTime}} ({{printf "%.1f" .UpdatesPerSecond}}/s)
- avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- p50 {{.UpdateTime.P50}}, p95 {{.UpdateTime.P95}}, p99 {{.UpdateTime.P99}}
- {{.FinalEntities}} entities alive at the end

## Slowest Systems
{{range .SlowSystems -}}
- {{.Name}} ({{.Category}}, priority {{.Priority}}): avg {{.AvgDuration}}, max {{.MaxDuration}}, {{.EntityCount}} entities
{{end}}
## Memory (MiB)
| Metric      | Start | End | Delta |
|-------------|-------|-----|-------|
| Heap alloc  | {{mb .MemStatsStart.HeapAlloc}} | {{mb .MemStatsEnd.HeapAlloc}} | {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}} |
| Total alloc | {{mb .MemStatsStart.TotalAlloc}} | {{mb .MemStatsEnd.TotalAlloc}} | {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} |
| Sys         | {{mb .MemStatsStart.Sys}} | {{mb .MemStatsEnd.Sys}} | {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}} |

GC cycles: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pauses
- Total pause: {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
- Last pause:  {{ns (lastPause .MemStatsEnd)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
	"lastPause": func(m runtime.MemStats) int64 {
		if m.NumGC == 0 {
			return 0
		}
		return int64(m.PauseNs[(m.NumGC+255)%256])
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
