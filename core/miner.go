package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"ca-ledger/logger"
)

// MinedBlock reports one block appended by a Miner.
type MinedBlock struct {
	Block    *Block
	Attempts uint64
	Elapsed  time.Duration
}

// Miner appends a queue of payloads to a chain on a background goroutine.
// The chain must not be touched by anyone else until the miner is done.
type Miner struct {
	blockchain *Blockchain
	running    bool
	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	err        error
}

func NewMiner(blockchain *Blockchain) *Miner {
	return &Miner{blockchain: blockchain}
}

// Start mines payloads in order. Each mined block is sent on the returned
// channel, which is closed when the queue is drained or the miner stops.
func (m *Miner) Start(payloads []string) <-chan MinedBlock {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(chan MinedBlock, len(payloads))
	if m.running {
		logger.Info("Miner already running.")
		close(out)
		return out
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.err = nil

	go m.loop(ctx, payloads, out)
	return out
}

func (m *Miner) loop(ctx context.Context, payloads []string, out chan<- MinedBlock) {
	defer func() {
		m.mu.Lock()
		m.running = false
		m.cancel()
		close(m.done)
		m.mu.Unlock()
		close(out)
	}()

	for _, data := range payloads {
		start := time.Now()
		block, attempts, err := m.blockchain.AddBlockContext(ctx, data)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Miner stopping work loop.")
			} else {
				logger.Errorf("Miner: %v", err)
			}
			m.mu.Lock()
			m.err = err
			m.mu.Unlock()
			return
		}
		out <- MinedBlock{Block: block, Attempts: attempts, Elapsed: time.Since(start)}
	}
}

// Stop cancels mining and waits for the work loop to exit. The block being
// mined at that moment is discarded.
func (m *Miner) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		logger.Info("Miner is not running.")
		return
	}
	logger.Info("Stopping miner...")
	m.cancel()
	done := m.done
	m.mu.Unlock()

	<-done
	logger.Info("Miner stopped.")
}

// Wait blocks until the current run ends and returns the error that ended
// it, if any.
func (m *Miner) Wait() error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Miner) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
