package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// EntropySeed reads a seed from the operating system's entropy source.
func EntropySeed() (uint64, error) {
	var seedBytes [8]byte
	_, readErr := cryptorand.Read(seedBytes[:])
	if readErr != nil {
		return 0, fmt.Errorf("failed to read entropy seed: %w", readErr)
	}
	return binary.LittleEndian.Uint64(seedBytes[:]), nil
}
