package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ca-ledger/core"
	"ca-ledger/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Mine a chain of blocks and check its validity",
	Long: `Mine --blocks blocks carrying "Transaction N" payloads at --difficulty with the
selected --hash_mode, print every block and report whether the chain validates.
Ctrl+C stops mining; the blocks mined so far are still printed.`,
	RunE: runChain,
}

func init() {
	chainCmd.Flags().Bool("json", false, "Print blocks as JSON instead of a table")
}

func runChain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode := cfg.GetHashMode()

	blockchain := core.NewBlockchain(&core.Config{Difficulty: cfg.Difficulty, HashMode: mode})
	pterm.Info.Printfln("Blockchain with %s, difficulty %d", mode, cfg.Difficulty)

	payloads := make([]string, cfg.Blocks)
	for i := range payloads {
		payloads[i] = "Transaction " + strconv.Itoa(i+1)
	}

	miner := core.NewMiner(blockchain)
	results := miner.Start(payloads)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

loop:
	for {
		select {
		case mb, ok := <-results:
			if !ok {
				break loop
			}
			pterm.Success.Printfln("Block %d mined in %v after %d attempts: %s",
				mb.Block.Index, common.PrettyDuration(mb.Elapsed), mb.Attempts, mb.Block.Hash)
		case s := <-sigCh:
			logger.Infof("Received signal: %v, stopping miner...", s)
			miner.Stop()
		}
	}
	if err := miner.Wait(); err != nil {
		pterm.Warning.Printfln("Mining interrupted: %v", err)
	}

	if printJSON, _ := cmd.Flags().GetBool("json"); printJSON {
		for _, b := range blockchain.Blocks() {
			data, err := b.ToJSON()
			if err != nil {
				return fmt.Errorf("failed to encode block %d: %w", b.Index, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}
	} else {
		data := pterm.TableData{{"Index", "Data", "Nonce", "Hash", "Previous Hash"}}
		for _, b := range blockchain.Blocks() {
			data = append(data, []string{
				strconv.FormatUint(b.Index, 10),
				b.Data,
				strconv.FormatUint(b.Nonce, 10),
				b.Hash,
				b.PreviousHash,
			})
		}
		if err := renderTable(cmd, data); err != nil {
			return err
		}
	}

	if blockchain.IsValid() {
		pterm.Success.Println("Chain valid: YES")
	} else {
		pterm.Error.Println("Chain valid: NO")
	}
	return nil
}
