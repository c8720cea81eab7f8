package store

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4

	// RoomCodeChars are the characters used for room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// randomCode creates a random room code
func randomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// NewCode generates a room code not currently in use, by rejection sampling
func (s *Registry) NewCode() string {
	for {
		code := randomCode()
		if !s.Exists(code) {
			return code
		}
	}
}
