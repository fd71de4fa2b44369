package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ca-ledger/consensus"
	"ca-ledger/crypto"
)

func TestGenesis(t *testing.T) {
	for _, mode := range crypto.Modes {
		t.Run(mode.String(), func(t *testing.T) {
			bc := NewBlockchain(&Config{Difficulty: 4, HashMode: mode})
			require.Equal(t, 1, bc.Len())

			genesis := bc.GetBlockByNumber(0)
			assert.Equal(t, uint64(0), genesis.Index)
			assert.Equal(t, GenesisData, genesis.Data)
			assert.Equal(t, GenesisPreviousHash, genesis.PreviousHash)
			assert.Equal(t, uint64(0), genesis.Nonce)
			assert.Equal(t, genesis.CalculateHashWith(mode), genesis.Hash)
			assert.True(t, bc.IsValid())
		})
	}
}

func TestAddBlockSHA256(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 2, HashMode: crypto.SHA256Mode})
	for _, data := range []string{"Transaction 1", "Transaction 2", "Transaction 3"} {
		block, attempts := bc.AddBlock(data)
		require.GreaterOrEqual(t, attempts, uint64(1))
		assert.Equal(t, data, block.Data)
	}

	require.Equal(t, 4, bc.Len())
	assert.True(t, bc.IsValid())

	blocks := bc.Blocks()
	assert.Equal(t, blocks[1].Hash, blocks[2].PreviousHash)
	for i, b := range blocks {
		assert.Equal(t, uint64(i), b.Index)
		assert.Len(t, b.Hash, 64)
		if i > 0 {
			assert.True(t, strings.HasPrefix(b.Hash, "00"), b.Hash)
			assert.Equal(t, blocks[i-1].Hash, b.PreviousHash)
		}
	}
}

func TestAddBlockCAHash(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 1, HashMode: crypto.CAHashMode})
	bc.AddBlock("Transaction 1")
	bc.AddBlock("Transaction 2")

	require.Equal(t, 3, bc.Len())
	assert.True(t, bc.IsValid())
	assert.True(t, strings.HasPrefix(bc.GetCurrentBlock().Hash, "0"))
}

func TestAddBlockDifficultyZero(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 0, HashMode: crypto.SHA256Mode})
	_, attempts := bc.AddBlock("free")
	assert.Equal(t, uint64(1), attempts)
	assert.True(t, bc.IsValid())
}

func TestIsValidDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Block)
		want   error
	}{
		{"hash", func(b *Block) { b.Hash = "00" + strings.Repeat("1", 62) }, ErrHashMismatch},
		{"previous hash", func(b *Block) { b.PreviousHash = strings.Repeat("f", 64) }, ErrHashMismatch},
		{"nonce", func(b *Block) { b.Nonce++ }, ErrHashMismatch},
		{"timestamp", func(b *Block) { b.Timestamp-- }, ErrHashMismatch},
		{"data", func(b *Block) { b.Data = "forged" }, ErrHashMismatch},
		{"previous hash rehashed", func(b *Block) {
			b.PreviousHash = strings.Repeat("f", 64)
			b.Hash = b.CalculateHashWith(crypto.SHA256Mode)
		}, ErrBrokenLink},
	}
	for _, tt := range tests {
		for _, index := range []int{1, 2} {
			t.Run(fmt.Sprintf("%s/block %d", tt.name, index), func(t *testing.T) {
				bc := NewBlockchain(&Config{Difficulty: 1, HashMode: crypto.SHA256Mode})
				bc.AddBlock("Transaction 1")
				bc.AddBlock("Transaction 2")
				require.NoError(t, bc.Validate())

				tt.mutate(bc.blocks[index])
				assert.False(t, bc.IsValid())

				err := bc.Validate()
				assert.ErrorIs(t, err, tt.want)
				assert.Contains(t, err.Error(), fmt.Sprintf("block %d", index))
			})
		}
	}
}

func TestIsValidDetectsUnminedBlock(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 3, HashMode: crypto.SHA256Mode})
	// A correctly linked and hashed block that skipped mining.
	b := NewBlock(1, "lazy", bc.GetCurrentBlock().Hash)
	for {
		b.Hash = b.CalculateHashWith(crypto.SHA256Mode)
		if !consensus.MeetsDifficulty(b.Hash, 3) {
			break
		}
		b.Nonce++
	}
	bc.blocks = append(bc.blocks, b)
	assert.False(t, bc.IsValid())
	assert.ErrorIs(t, bc.Validate(), ErrInsufficientWork)
}

func TestBlocksAreCopies(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 1, HashMode: crypto.SHA256Mode})
	block, _ := bc.AddBlock("Transaction 1")
	block.Data = "changed"

	blocks := bc.Blocks()
	blocks[1].Hash = "changed"

	assert.Equal(t, "Transaction 1", bc.GetBlockByNumber(1).Data)
	assert.NotEqual(t, "changed", bc.GetBlockByNumber(1).Hash)
	assert.Nil(t, bc.GetBlockByNumber(5))
	assert.True(t, bc.IsValid())
}

func TestAddBlockContext(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 1, HashMode: crypto.SHA256Mode})
	block, attempts, err := bc.AddBlockContext(context.Background(), "Transaction 1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, attempts, uint64(1))
	assert.Equal(t, uint64(1), block.Index)
	assert.Equal(t, 2, bc.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hard := NewBlockchain(&Config{Difficulty: consensus.MaxDifficulty, HashMode: crypto.SHA256Mode})
	block, _, err = hard.AddBlockContext(ctx, "never")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, block)
	assert.Equal(t, 1, hard.Len())
}

func TestConfigAccessors(t *testing.T) {
	bc := NewBlockchain(&Config{Difficulty: 3, HashMode: crypto.CAHashMode})
	assert.Equal(t, 3, bc.GetConfig().GetDifficulty())
	assert.Equal(t, crypto.CAHashMode, bc.GetConfig().GetHashMode())
}
