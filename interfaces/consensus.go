package interfaces

import "context"

// BlockConsensusItf is the view of a block the proof-of-work engine needs.
type BlockConsensusItf interface {
	GetNonce() uint64
	SetNonce(uint64)
	GetHash() string
	SetHash(string)
	CalculateHash() string // hex digest under the chain's hash mode
}

// Engine interface
type Engine interface {
	MineBlock(block BlockConsensusItf) uint64
	MineBlockContext(ctx context.Context, block BlockConsensusItf) (uint64, error)
	ValidateProofOfWork(block BlockConsensusItf) bool
	Difficulty() int
}
