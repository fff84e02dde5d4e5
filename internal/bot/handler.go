// Package bot wires Telegram updates to the session store, the template
// catalog and the deployment orchestrator. Updates are handled one goroutine
// each, so a long deploy never blocks other users.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ashureev/forgebot/internal/config"
	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/session"
	"github.com/ashureev/forgebot/internal/template"
)

const (
	welcomeText = "🚀 Crypto Deploy Bot\n\nTwo deployment paths are available:\n• Solana via Metaplex\n• EVM via Foundry\n\nPick an action:"
	helpText    = "ℹ️ Help\n\n1) Configure .env\n- TELEGRAM_BOT_TOKEN\n- SOL_KEYPAIR\n- EVM_PRIVATE_KEY\n- ALLOWED_USERS (optional)\n\n2) Run the bot binary\n\n/cancel resets the current input."
	deniedText  = "❌ You don't have access to this bot."
)

var fieldPrompts = map[domain.Category][]string{
	domain.CategoryMetaplex: {
		"Enter the token name:",
		"Enter the token symbol:",
		"Enter the token supply (e.g. 1000000000):",
		"Enter the metadata URI:",
		"Solana network? Type mainnet or devnet",
	},
	domain.CategoryEVM: {
		"Enter the token name:",
		"Enter the token symbol:",
		"Enter decimals (usually 18):",
		"Pick a network: ethereum / bsc / base",
	},
}

// Deployer runs a deployment pipeline and returns the outcome message.
type Deployer interface {
	DeployMetaplex(ctx context.Context, userID int64, raw domain.RawParams, notify func(string)) string
	DeployEVM(ctx context.Context, userID int64, raw domain.RawParams, notify func(string)) string
}

// BalanceReporter produces the multi-chain balance message.
type BalanceReporter interface {
	Report(ctx context.Context) string
}

// sender is the slice of the Telegram client the handlers need.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot handles inbound chat events.
type Bot struct {
	api      sender
	cfg      *config.Config
	catalog  *template.Catalog
	sessions *session.Store
	ledger   *history.Ledger
	deployer Deployer
	balances BalanceReporter
}

// New creates a Bot. The api argument is typically *tgbotapi.BotAPI.
func New(api sender, cfg *config.Config, catalog *template.Catalog, sessions *session.Store,
	ledger *history.Ledger, deployer Deployer, balances BalanceReporter) *Bot {
	return &Bot{
		api:      api,
		cfg:      cfg,
		catalog:  catalog,
		sessions: sessions,
		ledger:   ledger,
		deployer: deployer,
		balances: balances,
	}
}

// Run consumes updates until the channel closes or the context is done.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Update handler panicked", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			if !b.cfg.Allowed(userID) {
				b.send(chatID, deniedText)
				return
			}
			b.sessions.Clear(userID)
			b.sendKeyboard(chatID, welcomeText, mainMenuKeyboard())
		case "cancel":
			b.sessions.Clear(userID)
			b.sendKeyboard(chatID, "Session reset.", mainMenuKeyboard())
		}
		return
	}

	// Free text only matters while a session is collecting fields.
	if !b.cfg.Allowed(userID) {
		return
	}
	sess, ok := b.sessions.Advance(userID, msg.Text)
	if !ok {
		return
	}
	if sess.Complete {
		b.sendConfirmCustom(chatID, sess)
		return
	}
	b.send(chatID, fieldPrompts[sess.Target][sess.Step])
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		slog.Warn("Failed to ack callback", "error", err)
	}
	if query.Message == nil {
		return
	}
	userID := query.From.ID
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	if !b.cfg.Allowed(userID) {
		b.send(chatID, deniedText)
		return
	}

	action := ParseAction(query.Data)
	switch action.Kind {
	case ActionMainMenu:
		b.sessions.Clear(userID)
		b.edit(chatID, messageID, "🚀 Main menu", mainMenuKeyboard())

	case ActionSectionMenu:
		b.edit(chatID, messageID, sectionTitle(action.Category), sectionKeyboard(action.Category))

	case ActionTemplateList:
		b.edit(chatID, messageID, listTitle(action.Category),
			templateListKeyboard(action.Category, b.catalog.List(action.Category)))

	case ActionCustomFlow:
		b.sessions.Start(userID, action.Category)
		b.send(chatID, fieldPrompts[action.Category][0])

	case ActionTemplatePick:
		tpl, ok := b.catalog.Find(action.Category, action.TemplateID)
		if !ok {
			b.send(chatID, "❌ Template not found.")
			return
		}
		b.sendConfirmTemplate(chatID, action.Category, tpl)

	case ActionConfirmTemplate:
		tpl, ok := b.catalog.Find(action.Category, action.TemplateID)
		if !ok {
			b.send(chatID, "❌ Template not found.")
			return
		}
		b.runDeploy(ctx, chatID, userID, action.Category, tpl.RawParams())

	case ActionConfirmCustom:
		sess, ok := b.sessions.Get(userID)
		if !ok || sess.Target != action.Category {
			b.send(chatID, "❌ No pending session for this flow.")
			return
		}
		b.runDeploy(ctx, chatID, userID, action.Category, sess.Collected)

	case ActionCheckBalance:
		b.send(chatID, b.balances.Report(ctx))

	case ActionMyDeploys:
		b.send(chatID, renderHistory(b.ledger.List(userID)))

	case ActionHelp:
		b.send(chatID, helpText)

	case ActionUnknown:
		slog.Warn("Unknown callback data", "data", query.Data, "user_id", userID)
	}
}

func (b *Bot) runDeploy(ctx context.Context, chatID, userID int64, category domain.Category, raw domain.RawParams) {
	notify := func(text string) { b.send(chatID, text) }
	var outcome string
	switch category {
	case domain.CategoryMetaplex:
		outcome = b.deployer.DeployMetaplex(ctx, userID, raw, notify)
	case domain.CategoryEVM:
		outcome = b.deployer.DeployEVM(ctx, userID, raw, notify)
	}
	b.send(chatID, outcome)
}

func (b *Bot) sendConfirmTemplate(chatID int64, category domain.Category, tpl template.Template) {
	lines := []string{"Template: " + tpl.Name}
	if tpl.Description != "" {
		lines = append(lines, tpl.Description)
	}
	lines = append(lines, "", "Parameters:")
	raw := tpl.RawParams()
	for _, field := range session.Fields(category) {
		if v, ok := raw[field]; ok {
			lines = append(lines, field+": "+v)
		}
	}
	lines = append(lines, "", "Confirm deploy?")
	b.sendKeyboard(chatID, strings.Join(lines, "\n"), confirmTemplateKeyboard(category, tpl.ID))
}

func (b *Bot) sendConfirmCustom(chatID int64, sess session.Session) {
	lines := []string{fmt.Sprintf("%s parameters:", sectionName(sess.Target))}
	for _, field := range session.Fields(sess.Target) {
		lines = append(lines, field+"="+sess.Collected[field])
	}
	lines = append(lines, "", "Confirm deploy?")
	b.sendKeyboard(chatID, strings.Join(lines, "\n"), confirmCustomKeyboard(sess.Target))
}

func renderHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "📋 No deploys yet. Launch your first one."
	}
	lines := []string{"📋 Recent deploys:"}
	for i, e := range entries {
		icon := "✅"
		if e.Status == history.StatusFailure {
			icon = "❌"
		}
		lines = append(lines, "",
			fmt.Sprintf("%d. %s %s | %s", i+1, icon, strings.ToUpper(string(e.Category)), e.Time.Local().Format("02.01.2006 15:04")),
			e.Summary)
	}
	return strings.Join(lines, "\n")
}

func sectionName(category domain.Category) string {
	if category == domain.CategoryMetaplex {
		return "Metaplex"
	}
	return "EVM"
}

func sectionTitle(category domain.Category) string {
	if category == domain.CategoryMetaplex {
		return "🎨 Solana / Metaplex\n\nPick a deploy mode:"
	}
	return "⚡ EVM Deploy\n\nPick a deploy mode:"
}

func listTitle(category domain.Category) string {
	if category == domain.CategoryMetaplex {
		return "📝 Metaplex templates:"
	}
	return "📝 EVM templates:"
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := b.api.Send(edit); err != nil {
		slog.Error("Failed to edit message", "chat_id", chatID, "error", err)
	}
}
