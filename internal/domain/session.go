package domain

import "time"

// Session is the server-issued login material for one account. Attributes
// carries opaque fields returned by the carrier and is persisted verbatim.
type Session struct {
	AccountID     AccountID
	Secret        string
	Token         string
	EstablishedAt time.Time
	Attributes    map[string]string
}

// BelongsTo reports whether the session was issued for id.
func (s Session) BelongsTo(id AccountID) bool {
	return s.AccountID == id
}
