package crypto

import (
	"encoding/hex"

	"ca-ledger/automaton"
)

// Parameters of the automaton digest as used by the ledger.
const (
	CARule  automaton.Rule = 30
	CASteps                = 100

	// CAMinBits is the width inputs are right-padded to.
	CAMinBits = 256
	// CAFoldBits is the width longer inputs are XOR-folded into.
	CAFoldBits = 512
)

const caOutputBits = DigestSize * 8

// CAHash computes the cellular automaton digest of data: the input bits seed
// an automaton running the given rule for steps generations, and the final
// generation is sampled into 256 output bits.
func CAHash(data []byte, rule automaton.Rule, steps int) [DigestSize]byte {
	ca := automaton.New(rule)
	ca.Init(expandBits(data))
	ca.Evolve(steps)
	final := ca.State()

	var out [DigestSize]byte
	n := len(final)
	for i := 0; i < caOutputBits; i++ {
		bit := final[i%n] ^ final[(3*i)%n]
		out[i/8] |= bit << (7 - uint(i%8))
	}
	return out
}

// CAHashHex is CAHash rendered as 64 lowercase hex characters.
func CAHashHex(data []byte, rule automaton.Rule, steps int) string {
	sum := CAHash(data, rule, steps)
	return hex.EncodeToString(sum[:])
}

// expandBits turns data into cells, most significant bit first. Short inputs
// are zero-padded to CAMinBits; inputs longer than CAFoldBits are folded in
// a single XOR pass. Lengths in between keep their natural size.
func expandBits(data []byte) []uint8 {
	total := len(data) * 8
	if total > CAFoldBits {
		folded := make([]uint8, CAFoldBits)
		for i, b := range data {
			for j := 0; j < 8; j++ {
				folded[(i*8+j)%CAFoldBits] ^= (b >> (7 - uint(j))) & 1
			}
		}
		return folded
	}

	size := total
	if size < CAMinBits {
		size = CAMinBits
	}
	cells := make([]uint8, size)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			cells[i*8+j] = (b >> (7 - uint(j))) & 1
		}
	}
	return cells
}
