// Package util holds small cross-cutting helpers, mirroring the teacher's
// internal/util layout. Ported from the teacher's internal/util/ids.go,
// swapping the crypto/rand hex generator for github.com/google/uuid: a
// connection ID now travels in logrus fields alongside every Job it spawns,
// and a UUID gives that correlation a standard, collision-resistant form.
package util

import "github.com/google/uuid"

// NewID returns a fresh random identifier used to correlate a connection or a
// Job across log lines and wire traffic.
func NewID() string {
	return uuid.NewString()
}
