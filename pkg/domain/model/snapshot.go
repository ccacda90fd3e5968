package model

// Snapshot is a value to identifier index built from one fetch of the
// remote option list. It is only refreshed at explicit synchronization
// points, never per lookup.
type Snapshot struct {
	options Options
	byValue map[string]*Option
}

// NewSnapshot indexes options by value, preferring enabled records when a
// value appears more than once
func NewSnapshot(options Options) *Snapshot {
	s := &Snapshot{
		options: options,
		byValue: make(map[string]*Option, len(options)),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		current, ok := s.byValue[opt.Value]
		if !ok || (current.Disabled && opt.Enabled()) {
			s.byValue[opt.Value] = opt
		}
	}

	return s
}

// Options returns the fetched list in remote order
func (s *Snapshot) Options() Options {
	return s.options
}

// Lookup resolves value to its option
func (s *Snapshot) Lookup(value string) (*Option, bool) {
	opt, ok := s.byValue[value]
	return opt, ok
}

// Values returns every value present remotely, including disabled ones
func (s *Snapshot) Values() []string {
	return s.options.Values()
}

// Len returns the number of fetched option records
func (s *Snapshot) Len() int {
	return len(s.options)
}
