package domain

import "sort"

// PushConfig holds notification channel settings keyed by channel option
// name, e.g. BARK_PUSH.
type PushConfig map[string]string

// State is the persisted document shared by all accounts of a run.
type State struct {
	Sessions      map[AccountID]Session
	LoginFailures map[AccountID]int
	Snapshots     map[AccountID]UsageSnapshot
	// PushConfig is nil when the document has no push_config block.
	PushConfig PushConfig
	// Extra keeps document keys this program does not interpret.
	Extra map[string]any
}

func NewState() State {
	return State{
		Sessions:      map[AccountID]Session{},
		LoginFailures: map[AccountID]int{},
		Snapshots:     map[AccountID]UsageSnapshot{},
		Extra:         map[string]any{},
	}
}

// Normalize allocates any nil maps.
func (s *State) Normalize() {
	if s.Sessions == nil {
		s.Sessions = map[AccountID]Session{}
	}
	if s.LoginFailures == nil {
		s.LoginFailures = map[AccountID]int{}
	}
	if s.Snapshots == nil {
		s.Snapshots = map[AccountID]UsageSnapshot{}
	}
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}
}

func (s *State) LoginFailureCount(id AccountID) int {
	return s.LoginFailures[id]
}

// RecordLoginFailure increments the counter for id and returns the new value.
func (s *State) RecordLoginFailure(id AccountID) int {
	s.Normalize()
	s.LoginFailures[id]++
	return s.LoginFailures[id]
}

// RecordLogin stores the session and clears the failure counter.
func (s *State) RecordLogin(session Session) {
	s.Normalize()
	s.Sessions[session.AccountID] = session
	s.LoginFailures[session.AccountID] = 0
}

// ResetLoginFailures is the manual exit from the restricted gate state.
func (s *State) ResetLoginFailures(id AccountID) {
	s.Normalize()
	s.LoginFailures[id] = 0
}

func (s *State) PriorSnapshot(id AccountID) (UsageSnapshot, bool) {
	snapshot, ok := s.Snapshots[id]
	return snapshot, ok
}

func (s *State) RecordSnapshot(snapshot UsageSnapshot) {
	s.Normalize()
	s.Snapshots[snapshot.AccountID] = snapshot
}

// AccountIDs lists every account that appears anywhere in the state, sorted.
func (s State) AccountIDs() []AccountID {
	seen := map[AccountID]struct{}{}
	var ids []AccountID
	add := func(id AccountID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for id := range s.Sessions {
		add(id)
	}
	for id := range s.LoginFailures {
		add(id)
	}
	for id := range s.Snapshots {
		add(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
