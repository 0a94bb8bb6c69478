package mcts

import "github.com/pkg/errors"

// tunable is one clamped, UCI-settable search parameter. UCI spin options
// are integers, so values are stored scaled by 1000 on the wire and as a
// float internally, matching the reference engine's tunable macro table.
type tunable struct {
	val, min, max float32
}

func (t *tunable) set(raw int) {
	actual := float32(raw) / 1000.0
	if actual < t.min {
		actual = t.min
	}
	if actual > t.max {
		actual = t.max
	}
	t.val = actual
}

// Tunables holds every runtime-adjustable search parameter named in
// spec.md §6 (cpuct, gini scaling, policy temperature, time divisors).
type Tunables struct {
	rootCpuct        tunable
	defaultCpuct     tunable
	cpuctVisitsScale tunable
	giniBase         tunable
	giniLogMult      tunable
	giniMin          tunable
	defaultPst       tunable
	rootPstBonus     tunable
	timeDivisor      tunable
	incDivisor       tunable
}

// DefaultTunables returns the tuning table at its shipped defaults.
// default_cpuct/root_cpuct start at sqrt(2), matching the reference.
func DefaultTunables() *Tunables {
	return &Tunables{
		rootCpuct:        tunable{val: 1.4142135, min: 0, max: 10},
		defaultCpuct:     tunable{val: 1.4142135, min: 0, max: 10},
		cpuctVisitsScale: tunable{val: 1.0, min: 0.01, max: 100},
		giniBase:         tunable{val: 1.4, min: 0, max: 10},
		giniLogMult:      tunable{val: 0.2, min: 0, max: 5},
		giniMin:          tunable{val: 2.0, min: 0.1, max: 10},
		defaultPst:       tunable{val: 1.0, min: 0.01, max: 10},
		rootPstBonus:     tunable{val: 0.0, min: 0, max: 5},
		timeDivisor:      tunable{val: 20, min: 1, max: 100},
		incDivisor:       tunable{val: 2, min: 1, max: 100},
	}
}

func (t *Tunables) RootCpuct() float32        { return t.rootCpuct.val }
func (t *Tunables) DefaultCpuct() float32     { return t.defaultCpuct.val }
func (t *Tunables) CpuctVisitsScale() float32 { return t.cpuctVisitsScale.val }
func (t *Tunables) GiniBase() float32         { return t.giniBase.val }
func (t *Tunables) GiniLogMult() float32      { return t.giniLogMult.val }
func (t *Tunables) GiniMin() float32          { return t.giniMin.val }
func (t *Tunables) DefaultPst() float32       { return t.defaultPst.val }
func (t *Tunables) RootPstBonus() float32     { return t.rootPstBonus.val }
func (t *Tunables) TimeDivisor() float32      { return t.timeDivisor.val }
func (t *Tunables) IncDivisor() float32       { return t.incDivisor.val }

// Set applies a UCI setoption spin value (already scaled by 1000) to the
// named tunable.
func (t *Tunables) Set(name string, raw int) error {
	switch name {
	case "root_cpuct":
		t.rootCpuct.set(raw)
	case "default_cpuct":
		t.defaultCpuct.set(raw)
	case "cpuct_visits_scale":
		t.cpuctVisitsScale.set(raw)
	case "gini_base":
		t.giniBase.set(raw)
	case "gini_log_mult":
		t.giniLogMult.set(raw)
	case "gini_min":
		t.giniMin.set(raw)
	case "default_pst":
		t.defaultPst.set(raw)
	case "root_pst_bonus":
		t.rootPstBonus.set(raw)
	case "time_divisor":
		t.timeDivisor.set(raw)
	case "inc_divisor":
		t.incDivisor.set(raw)
	default:
		return errors.Errorf("unknown tunable option: %s", name)
	}
	return nil
}

// Names lists every tunable's UCI option name, in declaration order, for
// printing "option name ... type spin" lines at startup.
func (t *Tunables) Names() []string {
	return []string{
		"root_cpuct", "default_cpuct", "cpuct_visits_scale",
		"gini_base", "gini_log_mult", "gini_min",
		"default_pst", "root_pst_bonus",
		"time_divisor", "inc_divisor",
	}
}

// Get returns the named tunable's current/min/max, scaled by 1000 for a
// UCI spin option line.
func (t *Tunables) Get(name string) (val, min, max int, ok bool) {
	var target *tunable
	switch name {
	case "root_cpuct":
		target = &t.rootCpuct
	case "default_cpuct":
		target = &t.defaultCpuct
	case "cpuct_visits_scale":
		target = &t.cpuctVisitsScale
	case "gini_base":
		target = &t.giniBase
	case "gini_log_mult":
		target = &t.giniLogMult
	case "gini_min":
		target = &t.giniMin
	case "default_pst":
		target = &t.defaultPst
	case "root_pst_bonus":
		target = &t.rootPstBonus
	case "time_divisor":
		target = &t.timeDivisor
	case "inc_divisor":
		target = &t.incDivisor
	default:
		return 0, 0, 0, false
	}
	return int(target.val * 1000), int(target.min * 1000), int(target.max * 1000), true
}
