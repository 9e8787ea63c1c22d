package domain

type FragmentKind string

const (
	FragmentReport          FragmentKind = "report"
	FragmentMalformedEntry  FragmentKind = "malformed_entry"
	FragmentLoginRestricted FragmentKind = "login_restricted"
	FragmentLoginFailed     FragmentKind = "login_failed"
	FragmentReconnectFailed FragmentKind = "reconnect_failed"
	FragmentFetchFailed     FragmentKind = "fetch_failed"
	FragmentDataError       FragmentKind = "data_error"
)

// Fragment is the text produced for one account (or one rejected entry) in
// a run.
type Fragment struct {
	Kind      FragmentKind
	AccountID AccountID
	Text      string
}

func (f Fragment) OK() bool {
	return f.Kind == FragmentReport
}
