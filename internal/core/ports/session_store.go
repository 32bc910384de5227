package ports

import "context"

// SessionStore abstracts the durable key-value storage holding the
// persisted session. Implementations keep two independent entries — the
// bearer token and the encoded user record — and must treat them as a
// pair: Save writes both, Clear removes both.
//
// Load reports whatever is present without judging consistency; the
// session manager owns the integrity rule (one entry present without the
// other is corrupt state and gets purged).
type SessionStore interface {
	Load(ctx context.Context) (token string, userData []byte, err error)
	Save(ctx context.Context, token string, userData []byte) error
	Clear(ctx context.Context) error
}
