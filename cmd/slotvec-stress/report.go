package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/slotvec/slotvec"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	Seed        int64
	Initial     int
	InsertRatio float64

	// Results
	TotalOps       int64
	TotalTime      time.Duration
	Inserts        int64
	Removes        int64
	Reused         int64
	Rejected       int64
	MaxReuseIndex  int
	Collection     slotvec.Stats
	StepTime       Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats accumulates per-operation timings without keeping every sample.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

func (s *Stats) Add(sample time.Duration) {
	if s.Count == 0 || sample < s.Min {
		s.Min = sample
	}
	if sample > s.Max {
		s.Max = sample
	}
	s.total += sample
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# slotvec Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Initial Values:** {{.Initial}}
- **Insert Ratio:** {{printf "%.2f" .InsertRatio}}

## Workload Results
- **Total Operations:** {{.TotalOps}}
- **Total Test Time:** {{.TotalTime}}
- **Inserts:** {{.Inserts}} ({{.Reused}} reused a vacant slot, highest reused index {{.MaxReuseIndex}})
- **Removes:** {{.Removes}}
- **Rejected Removes:** {{.Rejected}}
- **Operation Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Final Collection
- **Occupancy:** {{.Collection.Occupancy}}
- **Watermark:** {{.Collection.Watermark}}
- **Blocks:** {{.Collection.Blocks}}
- **Fill Ratio:** {{printf "%.3f" .Collection.FillRatio}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
