package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/parse"
	"github.com/ashureev/forgebot/internal/shell"
)

// generatedTokenSource is the fixed wrapper contract materialized before
// every EVM deploy. Parameters reach it through the env file, never through
// source interpolation. Pausable and permit stay disabled; the upstream
// script never enabled them either.
const generatedTokenSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.26;

import {CustomERC20} from "./CustomERC20.sol";

contract GeneratedToken is CustomERC20 {
    constructor(
        string memory name_,
        string memory symbol_,
        uint8 decimals_,
        bool enablePausable_,
        bool enablePermit_,
        address owner_
    ) CustomERC20(name_, symbol_, decimals_, enablePausable_, enablePermit_, owner_) {}

    fallback() external {}
}
`

// envValue flattens newlines out of a value destined for the transient env
// file; the file format is line-oriented.
func envValue(v string) string {
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.TrimSpace(v)
}

func buildForgeEnv(p domain.EVMParams, privateKey string) string {
	lines := []string{
		"TOKEN_NAME=" + envValue(p.Name),
		"TOKEN_SYMBOL=" + envValue(p.Symbol),
		"TOKEN_DECIMALS=" + strconv.Itoa(p.Decimals),
		"ENABLE_PAUSABLE=false",
		"ENABLE_PERMIT=false",
		"PRIVATE_KEY=" + envValue(privateKey),
		"",
	}
	return strings.Join(lines, "\n")
}

func buildForgeBuildCommand(dir string) string {
	return fmt.Sprintf("cd %s && forge build", shell.Quote(dir))
}

func buildForgeDeployCommand(dir, rpc string) string {
	return fmt.Sprintf("cd %s && forge script script/DeployGenerated.s.sol:DeployGenerated --rpc-url %s --broadcast",
		shell.Quote(dir), shell.Quote(rpc))
}

// DeployEVM runs the two-stage Foundry pipeline (build, then broadcast) and
// returns the user-facing outcome message.
func (o *Orchestrator) DeployEVM(ctx context.Context, userID int64, raw domain.RawParams, notify func(string)) string {
	startedAt := time.Now()
	p := domain.NormalizeEVM(raw)

	if p.Name == "" || p.Symbol == "" {
		return "❌ EVM deploy needs: name and symbol."
	}
	if o.cfg.EVMPrivateKey == "" || o.cfg.EVMPrivateKey == "your_private_key_here" {
		return "❌ EVM_PRIVATE_KEY is not configured in .env"
	}
	network, ok := domain.EVMNetworkByID(p.Network)
	if !ok {
		return "❌ Unknown EVM network."
	}

	result, err := o.runEVM(ctx, p, network, notify)
	if err != nil {
		slog.Error("EVM deploy failed", "user_id", userID, "network", network.ID, "error", err)
		o.record(userID, startedAt, domain.CategoryEVM, history.StatusFailure, err.Error())
		o.sessions.Clear(userID)
		return "❌ EVM deploy failed:\n" + err.Error()
	}

	address := orPlaceholder(result.Identifier)
	o.record(userID, startedAt, domain.CategoryEVM, history.StatusSuccess,
		fmt.Sprintf("%s (%s), %s, address: %s", p.Name, p.Symbol, network.Name, address))
	o.sessions.Clear(userID)
	slog.Info("EVM deploy finished", "user_id", userID, "address", address, "network", network.ID)

	lines := []string{
		"✅ EVM token deployed",
		"",
		"Network: " + network.Name,
		"Address: " + address,
		"Name: " + p.Name,
		"Symbol: " + p.Symbol,
	}
	if result.Identifier != "" {
		lines = append(lines, fmt.Sprintf("Explorer token: %s/address/%s", network.Explorer, result.Identifier))
	}
	if result.TxHash != "" {
		lines = append(lines, fmt.Sprintf("Explorer tx: %s/tx/%s", network.Explorer, result.TxHash))
	}
	return strings.Join(lines, "\n")
}

// runEVM materializes the wrapper contract and the transient env file, then
// builds and broadcasts. The env file carries the private key, so it is
// removed on every exit path.
func (o *Orchestrator) runEVM(ctx context.Context, p domain.EVMParams, network domain.EVMNetwork, notify func(string)) (parse.Result, error) {
	if err := ensureDir(o.paths.EVMDir, "evm-token-cli"); err != nil {
		return parse.Result{}, err
	}
	if err := ensureFile(o.paths.EVMScript, "DeployGenerated.s.sol"); err != nil {
		return parse.Result{}, err
	}
	if err := ensureFile(o.paths.EVMBaseContract, "CustomERC20.sol"); err != nil {
		return parse.Result{}, err
	}

	if notify != nil {
		notify("⏳ Starting EVM token deploy on " + network.Name + "...")
	}

	contractPath := filepath.Join(o.paths.EVMDir, "src", "GeneratedToken.sol")
	if err := os.WriteFile(contractPath, []byte(generatedTokenSource), 0o644); err != nil {
		return parse.Result{}, fmt.Errorf("write generated contract: %w", err)
	}

	envPath := filepath.Join(o.paths.EVMDir, ".env")
	if err := os.WriteFile(envPath, []byte(buildForgeEnv(p, o.cfg.EVMPrivateKey)), 0o600); err != nil {
		return parse.Result{}, fmt.Errorf("write deploy env: %w", err)
	}
	defer func() {
		if err := os.Remove(envPath); err != nil && !os.IsNotExist(err) {
			slog.Error("Failed to remove transient deploy env", "path", envPath, "error", err)
		}
	}()

	if _, err := o.run.Run(ctx, buildForgeBuildCommand(o.paths.EVMDir), forgeBuildTimeout); err != nil {
		return parse.Result{}, err
	}

	out, err := o.run.Run(ctx, buildForgeDeployCommand(o.paths.EVMDir, network.RPC), forgeDeployTimeout)
	if err != nil {
		return parse.Result{}, err
	}
	return parse.EVM(out), nil
}
