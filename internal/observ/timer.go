// Package observ aggregates wall-clock timings of pipeline stages.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is the accumulated time of one named stage.
type Phase struct {
	Name  string
	Dur   time.Duration
	Count int
}

// Timer sums stage durations reported by concurrent workers. A nil *Timer
// ignores every call.
type Timer struct {
	mu     sync.Mutex
	start  time.Time
	order  []string
	phases map[string]*Phase
}

// NewTimer creates an empty Timer whose wall clock starts now.
func NewTimer() *Timer {
	return &Timer{start: time.Now(), phases: make(map[string]*Phase, 8)}
}

// Add records d against the phase name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[name]
	if !ok {
		p = &Phase{Name: name}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.Dur += d
	p.Count++
}

// Begin starts timing name and returns the function that stops it.
func (t *Timer) Begin(name string) func() {
	began := time.Now()
	return func() { t.Add(name, time.Since(began)) }
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
}

// Report holds every phase in first-seen order. TotalMS sums the phases and
// exceeds WallMS when workers ran in parallel.
type Report struct {
	WallMS  float64       `json:"wall_ms"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{
		WallMS: durationToMillis(time.Since(t.start)),
		Phases: make([]PhaseReport, 0, len(t.order)),
	}
	var total time.Duration
	for _, name := range t.order {
		p := t.phases[name]
		total += p.Dur
		report.Phases = append(report.Phases, PhaseReport{Name: p.Name, DurationMS: durationToMillis(p.Dur), Count: p.Count})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %9.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "wall", report.WallMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
