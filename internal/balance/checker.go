// Package balance reports native-coin balances for the configured key
// material: Solana through the local CLI toolchain, EVM chains through
// JSON-RPC.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"

	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/runner"
	"github.com/ashureev/forgebot/internal/shell"
)

const queryTimeout = 10 * time.Second

// Checker builds the combined balance report. Individual lookups degrade to
// error lines; the report itself always succeeds.
type Checker struct {
	run           runner.Runner
	solKeypair    string
	evmPrivateKey string

	// queryBalance is swapped out in tests.
	queryBalance func(ctx context.Context, rpcURL string, addr common.Address) (*big.Int, error)
}

// NewChecker creates a checker using the real RPC transport.
func NewChecker(run runner.Runner, solKeypair, evmPrivateKey string) *Checker {
	return &Checker{
		run:           run,
		solKeypair:    solKeypair,
		evmPrivateKey: evmPrivateKey,
		queryBalance:  rpcBalance,
	}
}

func rpcBalance(ctx context.Context, rpcURL string, addr common.Address) (*big.Int, error) {
	client, err := w3.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	var bal *big.Int
	if err := client.CallCtx(ctx, eth.Balance(addr, nil).Returns(&bal)); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return bal, nil
}

// Report produces the full multi-chain balance message.
func (c *Checker) Report(ctx context.Context) string {
	lines := []string{"💰 Balances:"}
	lines = append(lines, c.solanaLines(ctx)...)
	lines = append(lines, c.evmLines(ctx)...)
	return strings.Join(lines, "\n")
}

func (c *Checker) solanaLines(ctx context.Context) []string {
	if c.solKeypair == "" {
		return []string{"", "Solana: SOL_KEYPAIR is not configured."}
	}
	data, err := os.ReadFile(c.solKeypair)
	if err != nil {
		return []string{"", "Solana: keypair file is missing."}
	}

	// solana-keygen mishandles paths with spaces or non-ASCII characters;
	// query through a temp copy at an ASCII-safe path.
	tmp, err := os.CreateTemp("", "solana-keypair-*.json")
	if err != nil {
		return []string{"", fmt.Sprintf("Solana: balance check failed (%v)", err)}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			slog.Error("Failed to remove temp keypair copy", "path", tmpPath, "error", err)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return []string{"", fmt.Sprintf("Solana: balance check failed (%v)", err)}
	}
	if err := tmp.Close(); err != nil {
		return []string{"", fmt.Sprintf("Solana: balance check failed (%v)", err)}
	}

	addrOut, err := c.run.Run(ctx, "solana-keygen pubkey "+shell.Quote(tmpPath), queryTimeout)
	if err != nil {
		return []string{"", fmt.Sprintf("Solana: balance check failed (%v)", err)}
	}
	address := strings.TrimSpace(addrOut)

	balOut, err := c.run.Run(ctx, "solana balance "+shell.Quote(address), queryTimeout)
	if err != nil {
		return []string{"", fmt.Sprintf("Solana: balance check failed (%v)", err)}
	}

	return []string{"", "Solana: " + address, "Balance: " + strings.TrimSpace(balOut)}
}

func (c *Checker) evmLines(ctx context.Context) []string {
	key := strings.TrimSpace(c.evmPrivateKey)
	if key == "" || key == "your_private_key_here" {
		return []string{"", "EVM: EVM_PRIVATE_KEY is not configured."}
	}

	priv, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	if err != nil {
		return []string{"", fmt.Sprintf("EVM: invalid private key (%v)", err)}
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey)

	lines := []string{"", "EVM address: " + addr.Hex()}
	for _, network := range domain.EVMNetworks {
		queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		bal, err := c.queryBalance(queryCtx, network.RPC, addr)
		cancel()
		if err != nil {
			slog.Error("EVM balance query failed", "network", network.ID, "error", err)
			lines = append(lines, network.Name+": check failed")
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s", network.Name, formatEther(bal), network.Symbol))
	}
	return lines
}

func formatEther(wei *big.Int) string {
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
	return ether.Text('f', 6)
}
