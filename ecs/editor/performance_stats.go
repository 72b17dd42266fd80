package editor

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/kiln/ecs"
)

// PerformanceStats keeps a ring of frame times and draws them with the
// per-system timings of the scheduler.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	filled        int
	plotSamples   []float32

	sortColumn    int
	sortAscending bool
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		plotSamples:   make([]float32, 0, historyFrames),
		sortAscending: true,
	}
}

// Sample records one frame time, in seconds.
func (ps *PerformanceStats) Sample(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	if ps.filled < ps.historyFrames {
		ps.filled++
	}
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds, or 0 before the first sample.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.filled == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.Samples() {
		total += ft
	}
	return total / float32(ps.filled)
}

// Samples returns the recorded frame times in milliseconds, oldest first.
// The slice is reused by the next call.
func (ps *PerformanceStats) Samples() []float32 {
	ps.plotSamples = ps.plotSamples[:0]
	start := ps.frameIndex - ps.filled
	if start < 0 {
		start += ps.historyFrames
	}
	for i := 0; i < ps.filled; i++ {
		ps.plotSamples = append(ps.plotSamples, ps.frameHistory[(start+i)%ps.historyFrames])
	}
	return ps.plotSamples
}

// SortSystemStats orders per-system statistics by a column of the systems
// table: name, category, priority, entities, executions, last, average, max.
func SortSystemStats(stats []ecs.SystemStats, column int, ascending bool) {
	slices.SortStableFunc(stats, func(a, b ecs.SystemStats) int {
		var c int
		switch column {
		case 0:
			c = strings.Compare(a.Name, b.Name)
		case 1:
			c = int(a.Category) - int(b.Category)
		case 2:
			c = a.Priority - b.Priority
		case 3:
			c = a.EntityCount - b.EntityCount
		case 4:
			c = compare(a.ExecutionCount, b.ExecutionCount)
		case 5:
			c = compare(a.LastDuration, b.LastDuration)
		case 6:
			c = compare(a.AvgDuration, b.AvgDuration)
		case 7:
			c = compare(a.MaxDuration, b.MaxDuration)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

func compare[T int64 | time.Duration](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (ps *PerformanceStats) Render(world *ecs.World, scheduler *ecs.Scheduler) {
	imgui.SetNextWindowPosV(imgui.NewVec2(880, 20), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 420), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.Stats()

	imgui.Text(fmt.Sprintf("Frame: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Entities: %d live, %d pending, capacity %d",
		world.Entities.Count(), world.Entities.PendingCount(), world.Entities.Capacity()))
	imgui.Text(fmt.Sprintf("Component Types: %d", world.Registry().Len()))
	imgui.Text(fmt.Sprintf("Systems: %d (%d executions)", stats.SystemCount, stats.TotalExecutions))

	avgFrameTime := ps.AverageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()

	if imgui.BeginTabBar("PerformanceTabs") {
		if imgui.BeginTabItem("Frame Time") {
			samples := ps.Samples()
			if len(samples) > 0 && implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, -1), 0) {
				implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("Frame Time", &samples[0], int32(len(samples)))
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Systems") {
			ps.renderSystemTable(stats.Systems)
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func (ps *PerformanceStats) renderSystemTable(systems []ecs.SystemStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable |
		imgui.TableFlagsScrollY | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("SystemStatsTable", 8, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Category")
	imgui.TableSetupColumn("Priority")
	imgui.TableSetupColumn("Entities")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		ps.sortColumn = int(spec.ColumnIndex())
		ps.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSpecs.SetSpecsDirty(false)
	}
	SortSystemStats(systems, ps.sortColumn, ps.sortAscending)

	for _, st := range systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(st.Name)
		imgui.TableNextColumn()
		imgui.Text(st.Category.String())
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", st.Priority))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", st.EntityCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", st.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", ms(st.LastDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", ms(st.AvgDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", ms(st.MaxDuration)))
	}

	imgui.EndTable()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FrameTimer measures the wall time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
