package core

import (
	"context"
	"fmt"
	"time"

	"ca-ledger/consensus"
	"ca-ledger/crypto"
	"ca-ledger/interfaces"
	"ca-ledger/logger"

	"github.com/ethereum/go-ethereum/common"
)

const (
	GenesisData         = "Genesis Block"
	GenesisPreviousHash = "0"
)

// Config holds the parameters fixed for the lifetime of a chain.
type Config struct {
	Difficulty int
	HashMode   crypto.HashMode
}

func (c *Config) GetDifficulty() int           { return c.Difficulty }
func (c *Config) GetHashMode() crypto.HashMode { return c.HashMode }

// Blockchain is an append-only sequence of blocks hashed with one mode. It
// is owned by a single caller and is not safe for concurrent use.
type Blockchain struct {
	config    *Config
	consensus interfaces.Engine
	validator *Validator
	blocks    []*Block
}

// NewBlockchain creates a chain holding only the genesis block. Genesis is
// hashed once and never mined.
func NewBlockchain(cfg *Config) *Blockchain {
	engine := consensus.NewProofOfWork(cfg.Difficulty)
	bc := &Blockchain{
		config:    cfg,
		consensus: engine,
		validator: NewValidator(engine),
	}
	genesis := NewBlock(0, GenesisData, GenesisPreviousHash)
	genesis.Hash = genesis.CalculateHashWith(cfg.HashMode)
	bc.blocks = append(bc.blocks, genesis)

	logger.Debugf("Created %s chain with difficulty %d, genesis hash %s", cfg.HashMode, cfg.Difficulty, genesis.Hash)
	return bc
}

// AddBlock mines a new block carrying data on top of the current head and
// appends it. Mining has no upper bound on attempts.
func (bc *Blockchain) AddBlock(data string) (*Block, uint64) {
	block := bc.nextBlock(data)
	start := time.Now()
	attempts := bc.consensus.MineBlock(block.bind(bc.config.HashMode))
	bc.append(block, attempts, time.Since(start))
	return block.Copy(), attempts
}

// AddBlockContext is AddBlock with cancellation. Nothing is appended when
// ctx ends before a nonce is found.
func (bc *Blockchain) AddBlockContext(ctx context.Context, data string) (*Block, uint64, error) {
	block := bc.nextBlock(data)
	start := time.Now()
	attempts, err := bc.consensus.MineBlockContext(ctx, block.bind(bc.config.HashMode))
	if err != nil {
		return nil, attempts, fmt.Errorf("failed to mine block %d: %w", block.Index, err)
	}
	bc.append(block, attempts, time.Since(start))
	return block.Copy(), attempts, nil
}

func (bc *Blockchain) nextBlock(data string) *Block {
	return NewBlock(uint64(len(bc.blocks)), data, bc.GetCurrentBlock().Hash)
}

func (bc *Blockchain) append(block *Block, attempts uint64, elapsed time.Duration) {
	bc.blocks = append(bc.blocks, block)
	logger.Debugf("Block %d mined in %v", block.Index, common.PrettyDuration(elapsed))
	logger.LogBlockEvent(block.Index, block.Hash, block.Nonce, attempts)
}

// IsValid validates every non-genesis block against its parent and stops at
// the first failure.
func (bc *Blockchain) IsValid() bool {
	return bc.Validate() == nil
}

// Validate is IsValid returning the first validation error.
func (bc *Blockchain) Validate() error {
	for i := 1; i < len(bc.blocks); i++ {
		if err := bc.validator.ValidateBlock(bc.blocks[i], bc.blocks[i-1], bc.config.HashMode); err != nil {
			return err
		}
	}
	return nil
}

func (bc *Blockchain) Len() int { return len(bc.blocks) }

func (bc *Blockchain) GetConfig() *Config { return bc.config }

// GetCurrentBlock returns the head of the chain. The returned block must not
// be modified.
func (bc *Blockchain) GetCurrentBlock() *Block {
	return bc.blocks[len(bc.blocks)-1]
}

// GetBlockByNumber returns a copy of the block at index, or nil.
func (bc *Blockchain) GetBlockByNumber(index uint64) *Block {
	if index >= uint64(len(bc.blocks)) {
		return nil
	}
	return bc.blocks[index].Copy()
}

// Blocks returns copies of all blocks, genesis first.
func (bc *Blockchain) Blocks() []*Block {
	out := make([]*Block, len(bc.blocks))
	for i, b := range bc.blocks {
		out[i] = b.Copy()
	}
	return out
}
