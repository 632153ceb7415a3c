package timer

import "time"

// ManualScheduler delivers ticks only when Advance is called. It drives the
// timer deterministically in tests and in headless runs.
type ManualScheduler struct {
	tasks []*manualHandle
}

type manualHandle struct {
	tick      func()
	cancelled bool
}

func (h *manualHandle) Cancel() { h.cancelled = true }

// Every registers tick; the interval is ignored.
func (m *ManualScheduler) Every(_ time.Duration, tick func()) Handle {
	h := &manualHandle{tick: tick}
	m.tasks = append(m.tasks, h)
	return h
}

// Advance fires n ticks on every live task.
func (m *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		live := m.tasks[:0]
		for _, h := range m.tasks {
			if !h.cancelled {
				live = append(live, h)
			}
		}
		m.tasks = live
		for _, h := range live {
			if !h.cancelled {
				h.tick()
			}
		}
	}
}

// Live returns the number of scheduled tasks that have not been cancelled.
func (m *ManualScheduler) Live() int {
	n := 0
	for _, h := range m.tasks {
		if !h.cancelled {
			n++
		}
	}
	return n
}
