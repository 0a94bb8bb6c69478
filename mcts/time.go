package mcts

import "time"

// Limiters aggregates every stopping condition for one search: wall-clock
// time plus increment, node count, average depth, and a fixed move time. A
// limit is inactive until LoadValues is given a nonzero value for it.
type Limiters struct {
	UseTime   bool
	Time      time.Duration
	Increment time.Duration

	UseNodes  bool
	NodeLimit uint64

	UseDepth   bool
	DepthLimit uint32

	UseMoveTime bool
	MoveTime    time.Duration
}

// LoadValues sets every limiter from a UCI go command's parameters.
func (l *Limiters) LoadValues(tim, inc time.Duration, nodes uint64, depth uint32, movetime time.Duration) {
	l.UseTime = tim != 0
	l.Time = tim
	l.Increment = inc
	l.UseNodes = nodes != 0
	l.NodeLimit = nodes
	l.UseDepth = depth != 0
	l.DepthLimit = depth
	l.UseMoveTime = movetime != 0
	l.MoveTime = movetime
}

// timeAllocated computes the time budget for this move: total/time_divisor
// plus increment/inc_divisor, capped at the remaining total time.
func (l *Limiters) timeAllocated(t *Tunables) time.Duration {
	alloc := time.Duration(float32(l.Time)/t.TimeDivisor()) + time.Duration(float32(l.Increment)/t.IncDivisor())
	if alloc > l.Time {
		alloc = l.Time
	}
	return alloc
}

// Check reports whether the search should keep iterating given elapsed
// time, node count, and running average depth.
func (l *Limiters) Check(elapsed time.Duration, nodes uint64, depth uint32, t *Tunables) bool {
	if l.UseTime && elapsed >= l.timeAllocated(t) {
		return false
	}
	if l.UseNodes && nodes >= l.NodeLimit {
		return false
	}
	if l.UseDepth && depth > l.DepthLimit {
		return false
	}
	if l.UseMoveTime && elapsed >= l.MoveTime {
		return false
	}
	return true
}
