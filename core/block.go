package core

import (
	"encoding/json"
	"strconv"
	"time"

	"ca-ledger/consensus"
	"ca-ledger/crypto"
	"ca-ledger/interfaces"
)

// Block is one entry of the ledger. Data is an opaque payload.
type Block struct {
	Index        uint64 `json:"index"`
	Data         string `json:"data"`
	PreviousHash string `json:"previousHash"`
	Timestamp    int64  `json:"timestamp"`
	Nonce        uint64 `json:"nonce"`
	Hash         string `json:"hash"`
}

// NewBlock creates a block stamped with the current time and nonce 0. The
// hash stays empty until the block is hashed or mined.
func NewBlock(index uint64, data string, previousHash string) *Block {
	return &Block{
		Index:        index,
		Data:         data,
		PreviousHash: previousHash,
		Timestamp:    time.Now().Unix(),
	}
}

// Serialize returns the hash preimage: index, data, previous hash, timestamp
// and nonce concatenated without separators.
func (b *Block) Serialize() []byte {
	buf := make([]byte, 0, 64+len(b.Data)+len(b.PreviousHash))
	buf = strconv.AppendUint(buf, b.Index, 10)
	buf = append(buf, b.Data...)
	buf = append(buf, b.PreviousHash...)
	buf = strconv.AppendInt(buf, b.Timestamp, 10)
	buf = strconv.AppendUint(buf, b.Nonce, 10)
	return buf
}

// CalculateHashWith hashes the serialized block under mode.
func (b *Block) CalculateHashWith(mode crypto.HashMode) string {
	return mode.Hash(b.Serialize())
}

// Mine searches for a nonce whose hash has difficulty leading '0' hex
// characters, stores that hash, and returns the number of attempts.
func (b *Block) Mine(difficulty int, mode crypto.HashMode) uint64 {
	return consensus.NewProofOfWork(difficulty).MineBlock(b.bind(mode))
}

// Copy returns an independent copy of the block.
func (b *Block) Copy() *Block {
	cpy := *b
	return &cpy
}

// bind adapts the block to the consensus engine under a fixed hash mode.
func (b *Block) bind(mode crypto.HashMode) interfaces.BlockConsensusItf {
	return &boundBlock{block: b, mode: mode}
}

type boundBlock struct {
	block *Block
	mode  crypto.HashMode
}

func (bb *boundBlock) GetNonce() uint64      { return bb.block.Nonce }
func (bb *boundBlock) SetNonce(n uint64)     { bb.block.Nonce = n }
func (bb *boundBlock) GetHash() string       { return bb.block.Hash }
func (bb *boundBlock) SetHash(h string)      { bb.block.Hash = h }
func (bb *boundBlock) CalculateHash() string { return bb.block.CalculateHashWith(bb.mode) }

// ToJSON serializes the block to JSON.
func (b *Block) ToJSON() ([]byte, error) {
	return json.Marshal(b)
}

// BlockFromJSON deserializes a block from JSON.
func BlockFromJSON(data []byte) (*Block, error) {
	var block Block
	err := json.Unmarshal(data, &block)
	if err != nil {
		return nil, err
	}
	return &block, nil
}
