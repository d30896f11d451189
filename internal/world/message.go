package world

import (
	"github.com/l1jgo/skills/internal/skills"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

// templates are the built-in English notification texts. Localised bundles
// are loaded by the host, not here.
var templates = map[string]string{
	skills.MsgDodge:        "**Dodged**",
	skills.MsgRoll:         "**Rolled**",
	skills.MsgGracefulRoll: "**Graceful Landing**",
	skills.MsgTouchedFuzzy: "Touched Fuzzy. Felt Dizzy.",
	skills.MsgTargetDazed:  "Target was Dazed",
	skills.MsgLevelUp:      "%s skill increased by %d. Total (%d)",
}

func render(p *message.Printer, key string, args ...any) string {
	tmpl, ok := templates[key]
	if !ok {
		return key
	}
	return p.Sprintf(tmpl, args...)
}

// Notifier delivers rendered notifications to a player's client.
type Notifier interface {
	Notify(p *PlayerInfo, text string)
}

// LogNotifier writes notifications to the server log. Used when no client
// transport is attached.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notify(p *PlayerInfo, text string) {
	n.Log.Info("notify", zap.String("player", p.Name), zap.String("text", text))
}
