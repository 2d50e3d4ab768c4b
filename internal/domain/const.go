package domain

import "time"

const (
	// DefaultLockTTL is applied to balance locks created without an explicit expiration
	DefaultLockTTL = 3 * 24 * time.Hour

	// FeeBpsPrecision is the fixed-point denominator of bpsDiff in solver fill fees
	FeeBpsPrecision = "1000000000000000000"

	// ZeroID is the all-zero 32-byte identifier, used as "no binding"
	ZeroID = "0x0000000000000000000000000000000000000000000000000000000000000000"
)
