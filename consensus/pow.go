package consensus

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"ca-ledger/interfaces"
	"ca-ledger/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MaxDifficulty is the number of hex characters in a digest. Higher
// difficulties can never be met.
const MaxDifficulty = 64

// cancelCheckInterval is how many attempts MineBlockContext makes between
// context checks.
const cancelCheckInterval = 1024

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrMiningCancelled   = errors.New("mining cancelled")
)

var _ interfaces.Engine = (*ProofOfWork)(nil)

// ProofOfWork mines and checks blocks against a leading-zero hex target.
type ProofOfWork struct {
	difficulty int
	target     *uint256.Int
}

// NewProofOfWork creates a PoW engine for the given number of leading '0'
// hex characters. Negative values are treated as 0.
func NewProofOfWork(difficulty int) *ProofOfWork {
	if difficulty < 0 {
		logger.Warningf("Negative difficulty %d, using 0", difficulty)
		difficulty = 0
	}
	return &ProofOfWork{
		difficulty: difficulty,
		target:     Target(difficulty),
	}
}

func (pow *ProofOfWork) Difficulty() int { return pow.difficulty }

// MineBlock increments the nonce and rehashes until the hash meets the
// target, then stores the winning hash. It returns the number of attempts.
// The loop is unbounded.
func (pow *ProofOfWork) MineBlock(block interfaces.BlockConsensusItf) uint64 {
	attempts := uint64(0)
	for {
		block.SetNonce(block.GetNonce() + 1)
		attempts++
		hash := block.CalculateHash()
		if pow.meets(hash) {
			block.SetHash(hash)
			return attempts
		}
	}
}

// MineBlockContext is MineBlock with cooperative cancellation. The first
// nonce that meets the target wins, exactly as in MineBlock.
func (pow *ProofOfWork) MineBlockContext(ctx context.Context, block interfaces.BlockConsensusItf) (uint64, error) {
	start := time.Now()
	attempts := uint64(0)
	for {
		if attempts%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				logger.Warningf("Mining stopped after %d attempts in %v", attempts, common.PrettyDuration(time.Since(start)))
				return attempts, fmt.Errorf("%w after %d attempts: %w", ErrMiningCancelled, attempts, err)
			}
		}
		block.SetNonce(block.GetNonce() + 1)
		attempts++
		hash := block.CalculateHash()
		if pow.meets(hash) {
			block.SetHash(hash)
			return attempts, nil
		}
	}
}

// ValidateProofOfWork reports whether the block's stored hash meets the target.
func (pow *ProofOfWork) ValidateProofOfWork(block interfaces.BlockConsensusItf) bool {
	hash := block.GetHash()
	if hash == "" {
		return false
	}
	return pow.meets(hash)
}

func (pow *ProofOfWork) meets(hash string) bool {
	if pow.difficulty == 0 {
		return true
	}
	if pow.difficulty > MaxDifficulty {
		return false
	}
	value, ok := hashToInt(hash)
	if !ok {
		return false
	}
	return value.Cmp(pow.target) < 0
}

// MeetsDifficulty reports whether the first difficulty characters of hash
// are all '0'.
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if difficulty > len(hash) {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}

// Target returns 16^(64-difficulty), the exclusive upper bound for digests
// with at least difficulty leading zero hex characters. It returns nil when
// the difficulty is outside [0, MaxDifficulty].
func Target(difficulty int) *uint256.Int {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return nil
	}
	if difficulty == 0 {
		// 2^256 does not fit; every digest is below it.
		return new(uint256.Int).SetAllOne()
	}
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(4*(MaxDifficulty-difficulty)))
}

func hashToInt(hash string) (*uint256.Int, bool) {
	if len(hash) != 2*32 {
		return nil, false
	}
	raw, err := hex.DecodeString(hash)
	if err != nil {
		return nil, false
	}
	return new(uint256.Int).SetBytes(raw), true
}
