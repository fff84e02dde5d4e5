package bot

import (
	"strings"

	"github.com/ashureev/forgebot/internal/domain"
)

// ActionKind enumerates the closed set of callback-button actions. Callback
// data is decoded exactly once, here; handlers dispatch on the kind.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMainMenu
	ActionSectionMenu
	ActionTemplateList
	ActionCustomFlow
	ActionTemplatePick
	ActionConfirmTemplate
	ActionConfirmCustom
	ActionCheckBalance
	ActionMyDeploys
	ActionHelp
)

// Action is a decoded callback identifier.
type Action struct {
	Kind       ActionKind
	Category   domain.Category
	TemplateID string
}

// ParseAction decodes a flat callback identifier into an Action. Identifiers
// that don't match any known shape come back as ActionUnknown.
func ParseAction(data string) Action {
	switch data {
	case "back_main":
		return Action{Kind: ActionMainMenu}
	case "check_balance":
		return Action{Kind: ActionCheckBalance}
	case "my_deploys":
		return Action{Kind: ActionMyDeploys}
	case "help":
		return Action{Kind: ActionHelp}
	}

	if rest, ok := strings.CutPrefix(data, "confirm_"); ok {
		category, remainder, found := strings.Cut(rest, "_")
		cat := domain.Category(category)
		if !found || !cat.Valid() || remainder == "" {
			return Action{}
		}
		if remainder == "custom" {
			return Action{Kind: ActionConfirmCustom, Category: cat}
		}
		return Action{Kind: ActionConfirmTemplate, Category: cat, TemplateID: remainder}
	}

	if rest, ok := strings.CutPrefix(data, "template_"); ok {
		category, id, found := strings.Cut(rest, "_")
		cat := domain.Category(category)
		if !found || !cat.Valid() || id == "" {
			return Action{}
		}
		return Action{Kind: ActionTemplatePick, Category: cat, TemplateID: id}
	}

	if rest, ok := strings.CutPrefix(data, "menu_"); ok {
		if cat := domain.Category(rest); cat.Valid() {
			return Action{Kind: ActionSectionMenu, Category: cat}
		}
		return Action{}
	}

	if rest, ok := strings.CutSuffix(data, "_template"); ok {
		if cat := domain.Category(rest); cat.Valid() {
			return Action{Kind: ActionTemplateList, Category: cat}
		}
		return Action{}
	}

	if rest, ok := strings.CutSuffix(data, "_custom"); ok {
		if cat := domain.Category(rest); cat.Valid() {
			return Action{Kind: ActionCustomFlow, Category: cat}
		}
	}

	return Action{}
}
