package timeline

import "sync"

// RegisterFunc registers an observer on one moment and returns the moment's
// current observer list. The behavior defaults to Add; only the first value
// is used. The returned slice is shared with the registry and must not be modified.
type RegisterFunc func(observer Observer, behavior ...Behavior) ([]Observer, error)

// Subscriber is the subscription accessor of a timeline. It hands out one
// registration function per moment name and caches it for the life of the
// instance.
type Subscriber struct {
	tl  *Timeline
	mu  sync.Mutex
	fns map[string]RegisterFunc
}

func newSubscriber(tl *Timeline) *Subscriber {
	s := &Subscriber{
		tl:  tl,
		fns: make(map[string]RegisterFunc, len(tl.moments)+2),
	}
	for name := range tl.moments {
		s.fns[name] = s.bind(name)
	}
	s.fns[MomentLog] = s.bind(MomentLog)
	s.fns[MomentError] = s.bind(MomentError)
	return s
}

// Moment returns the registration function for name. Undeclared names are
// accepted; the first registration simply creates a registry entry for them.
func (s *Subscriber) Moment(name string) RegisterFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn, ok := s.fns[name]
	if !ok {
		fn = s.bind(name)
		s.fns[name] = fn
	}
	return fn
}

// Log registers an observer on the log moment.
func (s *Subscriber) Log(observer Observer, behavior ...Behavior) ([]Observer, error) {
	return s.Moment(MomentLog)(observer, behavior...)
}

// Error registers an observer on the error moment.
func (s *Subscriber) Error(observer Observer, behavior ...Behavior) ([]Observer, error) {
	return s.Moment(MomentError)(observer, behavior...)
}

func (s *Subscriber) bind(name string) RegisterFunc {
	return func(observer Observer, behavior ...Behavior) ([]Observer, error) {
		b := Add
		if len(behavior) > 0 {
			b = behavior[0]
		}
		return s.tl.registry.register(name, observer, b)
	}
}
