package timeline

// Deferred is a value that settles later, the Go stand-in for a promise.
// An observer or combinator that returns one makes the dispatcher wait for
// it to settle before continuing. *async.Future and *async.ExecFuture
// implement it.
//
// Implementations must tolerate a nil receiver: Done returns a closed channel
// and Value returns an error. Await relies on this for typed nil values.
type Deferred interface {
	// Done is closed once the value has settled.
	Done() <-chan struct{}
	// Value returns the settled result. Only meaningful after Done is closed.
	Value() (any, error)
}

// Await resolves v. Non-deferred values are returned as is. A deferred value
// is waited for without a timeout, and a deferred that settles to another
// deferred is waited for in turn.
func Await(v any) (any, error) {
	for {
		d, ok := v.(Deferred)
		if !ok {
			return v, nil
		}
		<-d.Done()

		var err error
		if v, err = d.Value(); err != nil {
			return nil, err
		}
	}
}
