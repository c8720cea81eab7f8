package models

// ActionSet records one target per actor, last write per actor winning.
// Actor order is first-submission order, which keeps tallies deterministic
// and repeatable given identical submission order.
type ActionSet struct {
	targets map[string]string
	order   []string
}

// NewActionSet creates an empty action buffer
func NewActionSet() *ActionSet {
	return &ActionSet{targets: make(map[string]string)}
}

// Set records or overwrites the actor's target
func (s *ActionSet) Set(actor, target string) {
	if _, ok := s.targets[actor]; !ok {
		s.order = append(s.order, actor)
	}
	s.targets[actor] = target
}

// Get returns the actor's current target
func (s *ActionSet) Get(actor string) (string, bool) {
	t, ok := s.targets[actor]
	return t, ok
}

// Len returns the number of actors with a buffered action
func (s *ActionSet) Len() int {
	return len(s.order)
}

// Targets returns every buffered target in actor submission order
func (s *ActionSet) Targets() []string {
	out := make([]string, 0, len(s.order))
	for _, actor := range s.order {
		out = append(out, s.targets[actor])
	}
	return out
}

// HasTarget reports whether any actor targeted the given player
func (s *ActionSet) HasTarget(target string) bool {
	for _, t := range s.targets {
		if t == target {
			return true
		}
	}
	return false
}

// TargetSet returns the distinct targets in submission order
func (s *ActionSet) TargetSet() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(s.order))
	for _, t := range s.Targets() {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
