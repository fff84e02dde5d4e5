// Package deploy turns validated parameter records into external toolchain
// runs and reports the outcome. The orchestrator is the only caller of the
// process runner; every failure past validation is caught here, recorded in
// history and converted into a user-facing message.
package deploy

import (
	"time"

	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/runner"
	"github.com/ashureev/forgebot/internal/session"
)

// Per-stage timeouts. Vanity address search dominates the mint; the
// broadcast stage waits on chain inclusion.
const (
	metaplexTimeout    = 8 * time.Minute
	forgeBuildTimeout  = 2 * time.Minute
	forgeDeployTimeout = 6 * time.Minute
)

// notFoundPlaceholder stands in for an identifier the parser could not
// locate; a parse miss is not a failure.
const notFoundPlaceholder = "not found in output"

// Config carries the key material and toolchain locations the orchestrator
// needs.
type Config struct {
	ProjectRoot   string
	SolKeypair    string
	EVMPrivateKey string
}

// Orchestrator runs the deployment pipelines for both target categories.
type Orchestrator struct {
	run      runner.Runner
	history  *history.Ledger
	sessions *session.Store
	cfg      Config
	paths    Paths
}

// New wires an orchestrator. The runner is injected so tests can observe
// what would be spawned.
func New(run runner.Runner, hist *history.Ledger, sessions *session.Store, cfg Config) *Orchestrator {
	return &Orchestrator{
		run:      run,
		history:  hist,
		sessions: sessions,
		cfg:      cfg,
		paths:    ProjectPaths(cfg.ProjectRoot),
	}
}

func (o *Orchestrator) record(userID int64, startedAt time.Time, category domain.Category, status history.Status, summary string) {
	o.history.Record(userID, history.Entry{
		Time:     startedAt,
		Category: category,
		Status:   status,
		Summary:  summary,
	})
}

func orPlaceholder(s string) string {
	if s == "" {
		return notFoundPlaceholder
	}
	return s
}
