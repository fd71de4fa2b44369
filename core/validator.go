package core

import (
	"errors"
	"fmt"

	"ca-ledger/crypto"
	"ca-ledger/interfaces"
	"ca-ledger/logger"
)

var (
	ErrNilBlock         = errors.New("block is nil")
	ErrHashMismatch     = errors.New("stored hash does not match block contents")
	ErrBrokenLink       = errors.New("previous hash does not match parent hash")
	ErrInsufficientWork = errors.New("hash does not meet difficulty")
)

// Validator checks a block against its parent. The proof-of-work check is
// stricter than linkage alone: a block that was hashed and linked but never
// mined is rejected.
type Validator struct {
	consensus interfaces.Engine
}

func NewValidator(engine interfaces.Engine) *Validator {
	return &Validator{consensus: engine}
}

// ValidateBlock recomputes the block hash under mode, then checks the link to
// parent and the difficulty target, in that order.
func (v *Validator) ValidateBlock(block, parent *Block, mode crypto.HashMode) error {
	if block == nil || parent == nil {
		return ErrNilBlock
	}

	if want := block.CalculateHashWith(mode); block.Hash != want {
		logger.Warningf("Block %d: stored hash %s does not match its contents", block.Index, block.Hash)
		return fmt.Errorf("block %d: %w", block.Index, ErrHashMismatch)
	}
	if block.PreviousHash != parent.Hash {
		logger.Warningf("Block %d: previous hash %s does not match block %d hash %s", block.Index, block.PreviousHash, parent.Index, parent.Hash)
		return fmt.Errorf("block %d: %w", block.Index, ErrBrokenLink)
	}
	if !v.consensus.ValidateProofOfWork(block.bind(mode)) {
		logger.Warningf("Block %d: hash %s does not meet difficulty %d", block.Index, block.Hash, v.consensus.Difficulty())
		return fmt.Errorf("block %d: %w", block.Index, ErrInsufficientWork)
	}

	logger.Debugf("Block validation passed: %d (%s)", block.Index, block.Hash)
	return nil
}
