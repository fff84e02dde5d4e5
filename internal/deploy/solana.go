package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/parse"
	"github.com/ashureev/forgebot/internal/shell"
)

// buildMetaplexCommand assembles the single mint invocation. Every
// externally-influenced token goes through shell.Quote, numeric fields
// included.
func buildMetaplexCommand(dir, keypair string, p domain.SolanaParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cd %s && SOL_KEYPAIR=%s node mint_via_metaplex.js", shell.Quote(dir), shell.Quote(keypair))
	fmt.Fprintf(&b, " --name %s", shell.Quote(p.Name))
	fmt.Fprintf(&b, " --symbol %s", shell.Quote(p.Symbol))
	fmt.Fprintf(&b, " --tokens %s", shell.Quote(domain.FormatAmount(p.Tokens)))
	fmt.Fprintf(&b, " --uri %s", shell.Quote(p.URI))
	fmt.Fprintf(&b, " --decimals %s", shell.Quote(strconv.Itoa(p.Decimals)))
	fmt.Fprintf(&b, " --network %s", shell.Quote(p.Network))
	if p.Prefix != "" {
		fmt.Fprintf(&b, " --prefix %s", shell.Quote(p.Prefix))
	}
	if p.Suffix != "" {
		fmt.Fprintf(&b, " --suffix %s", shell.Quote(p.Suffix))
	}
	return b.String()
}

// DeployMetaplex runs the Solana mint pipeline and returns the user-facing
// outcome message. notify, when non-nil, is called with a progress message
// right before the toolchain is spawned.
func (o *Orchestrator) DeployMetaplex(ctx context.Context, userID int64, raw domain.RawParams, notify func(string)) string {
	startedAt := time.Now()
	p := domain.NormalizeSolana(raw)

	if p.Name == "" || p.Symbol == "" || p.URI == "" {
		return "❌ Metaplex deploy needs: name, symbol and uri."
	}
	if !(p.Tokens > 0) || math.IsInf(p.Tokens, 0) {
		return "❌ Token supply must be a positive number."
	}

	result, err := o.runMetaplex(ctx, p, notify)
	if err != nil {
		slog.Error("Metaplex deploy failed", "user_id", userID, "error", err)
		o.record(userID, startedAt, domain.CategoryMetaplex, history.StatusFailure, err.Error())
		o.sessions.Clear(userID)
		return "❌ Metaplex deploy failed:\n" + err.Error()
	}

	mint := orPlaceholder(result.Identifier)
	o.record(userID, startedAt, domain.CategoryMetaplex, history.StatusSuccess,
		fmt.Sprintf("%s (%s), mint: %s", p.Name, p.Symbol, mint))
	o.sessions.Clear(userID)
	slog.Info("Metaplex deploy finished", "user_id", userID, "mint", mint, "network", p.Network)

	suffix := domain.SolanaClusterSuffix(p.Network)
	lines := []string{
		"✅ Solana token deployed",
		"",
		"Network: " + p.Network,
		"Mint: " + mint,
		"Name: " + p.Name,
		"Symbol: " + p.Symbol,
	}
	if result.Identifier != "" {
		lines = append(lines, fmt.Sprintf("Solscan token: %s/token/%s%s", domain.SolanaExplorerBase, result.Identifier, suffix))
	}
	if result.TxHash != "" {
		lines = append(lines, fmt.Sprintf("Solscan tx: %s/tx/%s%s", domain.SolanaExplorerBase, result.TxHash, suffix))
	}
	return strings.Join(lines, "\n")
}

func (o *Orchestrator) runMetaplex(ctx context.Context, p domain.SolanaParams, notify func(string)) (parse.Result, error) {
	if err := ensureDir(o.paths.MetaplexDir, "metaplex-mint"); err != nil {
		return parse.Result{}, err
	}
	if err := ensureFile(o.paths.MetaplexScript, "mint_via_metaplex.js"); err != nil {
		return parse.Result{}, err
	}
	if o.cfg.SolKeypair == "" {
		return parse.Result{}, &PreconditionError{Resource: "SOL_KEYPAIR"}
	}
	if err := ensureFile(o.cfg.SolKeypair, "SOL_KEYPAIR"); err != nil {
		return parse.Result{}, err
	}

	if notify != nil {
		notify("⏳ Starting Solana (Metaplex) deploy...")
	}

	command := buildMetaplexCommand(o.paths.MetaplexDir, o.cfg.SolKeypair, p)
	out, err := o.run.Run(ctx, command, metaplexTimeout)
	if err != nil {
		return parse.Result{}, err
	}
	return parse.Solana(out), nil
}
