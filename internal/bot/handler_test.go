package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ashureev/forgebot/internal/config"
	"github.com/ashureev/forgebot/internal/domain"
	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/session"
	"github.com/ashureev/forgebot/internal/template"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) texts() []string {
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

type fakeDeployer struct {
	metaplexCalls []domain.RawParams
	evmCalls      []domain.RawParams
}

func (f *fakeDeployer) DeployMetaplex(_ context.Context, _ int64, raw domain.RawParams, notify func(string)) string {
	if notify != nil {
		notify("⏳ working")
	}
	f.metaplexCalls = append(f.metaplexCalls, raw)
	return "✅ done " + raw["name"]
}

func (f *fakeDeployer) DeployEVM(_ context.Context, _ int64, raw domain.RawParams, _ func(string)) string {
	f.evmCalls = append(f.evmCalls, raw)
	return "✅ done " + raw["name"]
}

type fakeBalances struct{}

func (fakeBalances) Report(context.Context) string { return "💰 Balances: none" }

func newTestBot(cfg *config.Config, catalog *template.Catalog) (*Bot, *fakeSender, *fakeDeployer, *session.Store, *history.Ledger) {
	if cfg == nil {
		cfg = &config.Config{TelegramToken: "t", TemplatesPath: "x", ProjectRoot: "."}
	}
	if catalog == nil {
		catalog = &template.Catalog{}
	}
	api := &fakeSender{}
	dep := &fakeDeployer{}
	sessions := session.NewStore()
	ledger := history.NewLedger()
	b := New(api, cfg, catalog, sessions, ledger, dep, fakeBalances{})
	return b, api, dep, sessions, ledger
}

func callback(userID, chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := textMessage(userID, chatID, text)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	return msg
}

func TestCustomFlowEndToEnd(t *testing.T) {
	b, api, dep, _, _ := newTestBot(nil, nil)
	ctx := context.Background()

	b.handleCallback(ctx, callback(1, 100, "metaplex_custom"))
	if got := api.texts(); len(got) == 0 || got[len(got)-1] != "Enter the token name:" {
		t.Fatalf("expected first prompt, got %v", got)
	}

	for _, answer := range []string{"My Token", "MTK", "1000000000", "https://example.com/m.json", "devnet"} {
		b.handleMessage(textMessage(1, 100, answer))
	}

	texts := api.texts()
	confirm := texts[len(texts)-1]
	if !strings.Contains(confirm, "name=My Token") || !strings.Contains(confirm, "Confirm deploy?") {
		t.Fatalf("expected confirmation card, got %q", confirm)
	}

	b.handleCallback(ctx, callback(1, 100, "confirm_metaplex_custom"))
	if len(dep.metaplexCalls) != 1 {
		t.Fatalf("expected exactly one orchestration, got %d", len(dep.metaplexCalls))
	}
	raw := dep.metaplexCalls[0]
	if raw["name"] != "My Token" || raw["symbol"] != "MTK" || raw["network"] != "devnet" {
		t.Errorf("collected params wrong: %v", raw)
	}
	if len(raw) != 5 {
		t.Errorf("expected exactly the five collected fields, got %v", raw)
	}
}

func TestConfirmCustomWithoutSession(t *testing.T) {
	b, api, dep, _, _ := newTestBot(nil, nil)

	b.handleCallback(context.Background(), callback(1, 100, "confirm_metaplex_custom"))
	if len(dep.metaplexCalls) != 0 {
		t.Error("deploy must not run without a session")
	}
	texts := api.texts()
	if len(texts) == 0 || !strings.Contains(texts[len(texts)-1], "No pending session") {
		t.Errorf("expected session-missing message, got %v", texts)
	}
}

func TestTemplateConfirmDeploys(t *testing.T) {
	catalog := &template.Catalog{
		EVM: []template.Template{{
			ID: "base_starter", Name: "Base Starter",
			Params: map[string]any{"name": "Base Starter", "symbol": "BST", "decimals": float64(18), "network": "base"},
		}},
	}
	b, api, dep, _, _ := newTestBot(nil, catalog)
	ctx := context.Background()

	b.handleCallback(ctx, callback(1, 100, "template_evm_base_starter"))
	texts := api.texts()
	if !strings.Contains(texts[len(texts)-1], "Template: Base Starter") {
		t.Fatalf("expected template card, got %v", texts)
	}

	b.handleCallback(ctx, callback(1, 100, "confirm_evm_base_starter"))
	if len(dep.evmCalls) != 1 {
		t.Fatalf("expected one EVM orchestration, got %d", len(dep.evmCalls))
	}
	if dep.evmCalls[0]["symbol"] != "BST" || dep.evmCalls[0]["decimals"] != "18" {
		t.Errorf("template params not passed through: %v", dep.evmCalls[0])
	}

	texts = api.texts()
	if texts[len(texts)-1] != "✅ done Base Starter" {
		t.Errorf("outcome message not delivered: %v", texts[len(texts)-1])
	}
}

func TestUnknownTemplateRejected(t *testing.T) {
	b, api, dep, _, _ := newTestBot(nil, nil)
	b.handleCallback(context.Background(), callback(1, 100, "confirm_evm_ghost"))
	if len(dep.evmCalls) != 0 {
		t.Error("unknown template must not deploy")
	}
	texts := api.texts()
	if !strings.Contains(texts[len(texts)-1], "Template not found") {
		t.Errorf("expected not-found message, got %v", texts)
	}
}

func TestAllowListBlocksInteraction(t *testing.T) {
	cfg := &config.Config{TelegramToken: "t", TemplatesPath: "x", ProjectRoot: ".", AllowedUsers: []int64{7}}
	b, api, dep, sessions, _ := newTestBot(cfg, nil)
	ctx := context.Background()

	b.handleMessage(commandMessage(2, 100, "/start"))
	texts := api.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "access") {
		t.Errorf("expected denial, got %v", texts)
	}

	b.handleCallback(ctx, callback(2, 100, "metaplex_custom"))
	if _, ok := sessions.Get(2); ok {
		t.Error("denied user must not get a session")
	}
	if len(dep.metaplexCalls)+len(dep.evmCalls) != 0 {
		t.Error("denied user triggered a deploy")
	}

	b.handleCallback(ctx, callback(7, 100, "metaplex_custom"))
	if _, ok := sessions.Get(7); !ok {
		t.Error("listed user should get a session")
	}
}

func TestStartClearsSession(t *testing.T) {
	b, _, _, sessions, _ := newTestBot(nil, nil)
	sessions.Start(1, domain.CategoryEVM)

	b.handleMessage(commandMessage(1, 100, "/start"))
	if _, ok := sessions.Get(1); ok {
		t.Error("/start must clear the pending session")
	}
}

func TestCancelClearsSession(t *testing.T) {
	b, api, _, sessions, _ := newTestBot(nil, nil)
	sessions.Start(1, domain.CategoryMetaplex)

	b.handleMessage(commandMessage(1, 100, "/cancel"))
	if _, ok := sessions.Get(1); ok {
		t.Error("/cancel must clear the session")
	}
	texts := api.texts()
	if len(texts) == 0 || !strings.Contains(texts[0], "Session reset") {
		t.Errorf("expected reset confirmation, got %v", texts)
	}
}

func TestFreeTextWithoutSessionIgnored(t *testing.T) {
	b, api, _, _, _ := newTestBot(nil, nil)
	b.handleMessage(textMessage(1, 100, "hello there"))
	if len(api.sent) != 0 {
		t.Errorf("free text without session should be ignored, sent %v", api.texts())
	}
}

func TestMyDeploysRendering(t *testing.T) {
	b, api, _, _, ledger := newTestBot(nil, nil)
	ctx := context.Background()

	b.handleCallback(ctx, callback(1, 100, "my_deploys"))
	texts := api.texts()
	if !strings.Contains(texts[len(texts)-1], "No deploys yet") {
		t.Errorf("expected empty history message, got %v", texts)
	}

	ledger.Record(1, history.Entry{Category: domain.CategoryMetaplex, Status: history.StatusSuccess, Summary: "Tok (TK), mint: abc"})
	b.handleCallback(ctx, callback(1, 100, "my_deploys"))
	texts = api.texts()
	last := texts[len(texts)-1]
	if !strings.Contains(last, "METAPLEX") || !strings.Contains(last, "Tok (TK), mint: abc") {
		t.Errorf("history rendering wrong: %q", last)
	}
}

func TestBackMainClearsSessionAndEdits(t *testing.T) {
	b, api, _, sessions, _ := newTestBot(nil, nil)
	sessions.Start(1, domain.CategoryEVM)

	b.handleCallback(context.Background(), callback(1, 100, "back_main"))
	if _, ok := sessions.Get(1); ok {
		t.Error("back_main must destroy the session")
	}
	foundEdit := false
	for _, c := range api.sent {
		if _, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			foundEdit = true
		}
	}
	if !foundEdit {
		t.Error("menu transition should edit the message in place")
	}
}
