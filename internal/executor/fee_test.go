package executor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillFee(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		bpsDiff string
		want    int64
	}{
		{"five percent excess", 1000, "50000000000000000", 1050},
		{"five percent shortfall", 1000, "-50000000000000000", 950},
		{"no adjustment", 1000, "0", 1000},
		{"adjustment truncates toward zero", 999, "1000000000000000", 999},
		{"negative adjustment truncates toward zero", 999, "-1000000000000000", 999},
		{"shortfall beyond the fee is not clamped", 1000, "-2000000000000000000", -1000},
		{"zero fee", 0, "50000000000000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpsDiff, ok := new(big.Int).SetString(tt.bpsDiff, 10)
			assert.True(t, ok)
			assert.Equal(t, tt.want, FillFee(big.NewInt(tt.amount), bpsDiff).Int64())
		})
	}
}

func TestFillFeeDoesNotMutateInputs(t *testing.T) {
	amount := big.NewInt(1000)
	bpsDiff := big.NewInt(50000000000000000)
	FillFee(amount, bpsDiff)
	assert.Equal(t, int64(1000), amount.Int64())
	assert.Equal(t, int64(50000000000000000), bpsDiff.Int64())
}
