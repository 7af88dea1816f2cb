package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// SessionID identifies one agent session.
// Format: {unix-timestamp}-{8-char-random-hex}, e.g. 1733678400-a3f2bc8d.
// Hook payloads normally carry their own session id; this generator is the
// fallback for callers that arrive without one.
type SessionID string

// GenerateSessionID creates a new session identifier. The timestamp prefix
// keeps ids sortable by creation time; the random suffix avoids collisions
// between sessions started in the same second.
func GenerateSessionID() SessionID {
	timestamp := time.Now().Unix()

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return SessionID(strconv.FormatInt(timestamp, 10))
	}

	return SessionID(fmt.Sprintf("%d-%s", timestamp, hex.EncodeToString(randomBytes)))
}

// String returns the string form of the id.
func (s SessionID) String() string {
	return string(s)
}

// Timestamp extracts the creation time from the id, or zero if malformed.
func (s SessionID) Timestamp() int64 {
	raw := string(s)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '-' {
			raw = raw[:i]
			break
		}
	}

	timestamp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return timestamp
}

// Age returns the duration since the session was created, or zero if the id
// does not carry a parseable timestamp.
func (s SessionID) Age() time.Duration {
	timestamp := s.Timestamp()
	if timestamp == 0 {
		return 0
	}
	return time.Since(time.Unix(timestamp, 0))
}
