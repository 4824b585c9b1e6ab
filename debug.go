package tod

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing metrics.
// Only populated when Stage.debug is true.
type debugStats struct {
	advanceTime  time.Duration
	updateTime   time.Duration
	sortTime     time.Duration
	drawTime     time.Duration
	entityCount  int
	pendingTasks int
}

// logf prints a prefixed diagnostic line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tod] "+format+"\n", args...)
}

// debugLogUpdate prints update-pass stats to stderr.
func (s *Stage) debugLogUpdate(stats debugStats) {
	if !s.debug {
		return
	}
	logf("advance: %v | update: %v | total: %v",
		stats.advanceTime, stats.updateTime, stats.advanceTime+stats.updateTime)
	logf("entities: %d | pending tasks: %d | clock: %.3fs",
		stats.entityCount, stats.pendingTasks, s.scheduler.Now())
}

// debugLogDraw prints draw-pass stats to stderr.
func (s *Stage) debugLogDraw(stats debugStats) {
	if !s.debug {
		return
	}
	logf("sort: %v | draw: %v | total: %v | entities: %d",
		stats.sortTime, stats.drawTime, stats.sortTime+stats.drawTime, stats.entityCount)
}
