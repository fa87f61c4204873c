// Package idgen supplies entry ID generators.
package idgen

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sony/sonyflake/v2"
)

// Generator produces one entry ID per call.
type Generator func() string

// Disabled produces empty IDs, turning ID stamping off.
func Disabled() string { return "" }

// UUID returns a random UUIDv4 generator.
func UUID() Generator {
	return uuid.NewString
}

// Sonyflake returns a time-ordered ID generator backed by a Sonyflake
// instance, encoded base36. Useful when IDs must sort by creation time.
func Sonyflake() (Generator, error) {
	sf, err := sonyflake.New(sonyflake.Settings{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sonyflake: %w", err)
	}
	return func() string {
		id, err := sf.NextID()
		if err != nil {
			// Time component overflow is the only failure mode; fall
			// back to a random ID rather than dropping the stamp.
			return uuid.NewString()
		}
		return strconv.FormatInt(id, 36)
	}, nil
}
