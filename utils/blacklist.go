package utils

import (
	"sync"
	"time"
)

var (
	blacklistMu sync.Mutex
	blacklist   = map[string]time.Time{}
)

// BlacklistToken marks a token as unusable until its expiry.
func BlacklistToken(token string, expiresAt time.Time) {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	sweepLocked()
	blacklist[token] = expiresAt
}

// IsTokenBlacklisted reports whether the token was logged out.
func IsTokenBlacklisted(token string) bool {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	sweepLocked()
	_, ok := blacklist[token]
	return ok
}

// sweepLocked drops expired entries. Caller holds blacklistMu.
func sweepLocked() {
	now := time.Now()
	for token, exp := range blacklist {
		if exp.Before(now) {
			delete(blacklist, token)
		}
	}
}
