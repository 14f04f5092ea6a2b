package security

import "time"

// testSecret is for unit tests only. Do not use in production.
const testSecret = "test-secret-do-not-use-in-production-0123456789"

// NewTestTokenCodec returns a TokenCodec using an embedded test secret and the
// default seven day TTL. For unit tests only.
func NewTestTokenCodec() *TokenCodec {
	c, err := NewTokenCodec([]byte(testSecret), DefaultSessionTTL)
	if err != nil {
		panic(err)
	}
	return c
}

// WithClock returns a copy of c that reads the current time from now.
// For unit tests only.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.nowF = now
	return &cp
}
