package toast

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the service needs.
type Timer interface {
	Stop() bool
}

// Listener receives the visible toast after every change, or nil once the
// toast is hidden.
type Listener func(*Toast)

// Option configures a Service.
type Option func(*Service)

// WithDuration changes the default display duration.
func WithDuration(d time.Duration) Option {
	return func(s *Service) {
		s.duration = d
	}
}

// WithClock swaps the time source used to stamp toasts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAfterFunc swaps the scheduler used for auto-dismiss.
func WithAfterFunc(fn func(time.Duration, func()) Timer) Option {
	return func(s *Service) {
		if fn != nil {
			s.afterFunc = fn
		}
	}
}

// Service holds the single toast a page shows at a time. Hosts create one
// and pass it to whatever needs to notify the user; there is no package-level
// instance. Service is safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	current   *Toast
	timer     Timer
	listeners map[int]Listener
	nextID    int

	duration  time.Duration
	now       func() time.Time
	afterFunc func(time.Duration, func()) Timer
}

// NewService constructs a toast service.
func NewService(opts ...Option) *Service {
	s := &Service{
		listeners: make(map[int]Listener),
		duration:  DefaultDuration,
		now:       time.Now,
		afterFunc: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Show replaces the visible toast and schedules its dismissal.
func (s *Service) Show(message string, kind Type, opts ...ShowOption) Toast {
	s.mu.Lock()

	t := newToast(message, kind, s.now(), s.duration)
	for _, opt := range opts {
		if opt != nil {
			opt(&t)
		}
	}

	s.stopTimerLocked()
	s.current = &t
	if !t.Sticky() {
		id := t.ID
		s.timer = s.afterFunc(t.Duration, func() {
			s.dismiss(id)
		})
	}
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, &t)
	return t
}

// Hide removes the visible toast, if any.
func (s *Service) Hide() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.current = nil
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, nil)
}

// Current returns the visible toast.
func (s *Service) Current() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Toast{}, false
	}
	return *s.current, true
}

// Subscribe registers fn for changes and returns a function that removes it.
func (s *Service) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// dismiss hides the toast only if it is still the one that scheduled the
// timer, so a stale timer never hides a newer toast.
func (s *Service) dismiss(id string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.timer = nil
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, nil)
}

func (s *Service) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Service) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []Listener, t *Toast) {
	for _, fn := range listeners {
		if t == nil {
			fn(nil)
			continue
		}
		copied := *t
		fn(&copied)
	}
}
