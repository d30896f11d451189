package world

import (
	"time"

	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/skills"
	"golang.org/x/text/message"
)

const inboxSize = 32

// PlayerInfo holds in-memory data for a player currently in-world.
// Accessed only from the game loop goroutine, no locks needed.
type PlayerInfo struct {
	Entity        ecs.EntityID
	Name          string
	Loc           skills.Location
	HP            float64
	MaxHP         float64
	Sneaking      bool
	InVehicle     bool
	HandItem      string
	FeatherBoots  bool // boots enchanted with feather falling
	Perms         map[skills.Permission]bool
	Lucky         bool
	Notifications bool
	RespawnAt     time.Time
	Effects       []skills.Effect

	Profile    *skills.Profile
	Acrobatics *skills.AcrobaticsManager
	Archery    *skills.ArcheryManager

	Inbox    []string // most recent notifications, oldest first
	printer  *message.Printer
	notifier Notifier
}

var _ skills.Actor = (*PlayerInfo)(nil)

func (p *PlayerInfo) ID() ecs.EntityID          { return p.Entity }
func (p *PlayerInfo) Location() skills.Location { return p.Loc }
func (p *PlayerInfo) IsPlayer() bool            { return true }
func (p *PlayerInfo) Health() float64           { return p.HP }
func (p *PlayerInfo) IsSneaking() bool          { return p.Sneaking }
func (p *PlayerInfo) InsideVehicle() bool       { return p.InVehicle }
func (p *PlayerInfo) ItemInHand() string        { return p.HandItem }
func (p *PlayerInfo) ChatNotifications() bool   { return p.Notifications }
func (p *PlayerInfo) RespawnTime() time.Time    { return p.RespawnAt }

func (p *PlayerInfo) BootsHaveFeatherFalling() bool { return p.FeatherBoots }

func (p *PlayerInfo) SkillLevel(s skills.SkillType) int {
	return p.Profile.Level(s)
}

func (p *PlayerInfo) HasPermission(perm skills.Permission) bool {
	return p.Perms[perm]
}

func (p *PlayerInfo) IsLucky(skills.SkillType) bool { return p.Lucky }

// SendMessage renders key in the player's language and delivers it.
func (p *PlayerInfo) SendMessage(key string, args ...any) {
	text := render(p.printer, key, args...)
	if len(p.Inbox) == inboxSize {
		copy(p.Inbox, p.Inbox[1:])
		p.Inbox = p.Inbox[:inboxSize-1]
	}
	p.Inbox = append(p.Inbox, text)
	if p.notifier != nil {
		p.notifier.Notify(p, text)
	}
}

// GrantAll gives p every skill permission.
func (p *PlayerInfo) GrantAll() {
	for _, perm := range []skills.Permission{
		skills.PermDodge, skills.PermRoll, skills.PermGracefulRoll,
		skills.PermDaze, skills.PermBonusDamage, skills.PermArrowRetrieval,
	} {
		p.Perms[perm] = true
	}
}
