package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/l1jgo/skills/internal/skills"
)

// SkillRepo stores per-player skill levels and XP.
type SkillRepo struct {
	db *DB
}

func NewSkillRepo(db *DB) *SkillRepo {
	return &SkillRepo{db: db}
}

// LoadProfile returns the stored profile for name, or a fresh one when the
// player has none yet.
func (r *SkillRepo) LoadProfile(ctx context.Context, name string) (*skills.Profile, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT skill, level, xp FROM skill_profiles WHERE player_name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("load skills %s: %w", name, err)
	}
	defer rows.Close()

	p := skills.NewProfile(name)
	for rows.Next() {
		var (
			skill string
			level int
			xp    float64
		)
		if err := rows.Scan(&skill, &level, &xp); err != nil {
			return nil, fmt.Errorf("scan skills %s: %w", name, err)
		}
		st, ok := skills.ParseSkillType(skill)
		if !ok {
			continue // retired skill
		}
		p.Restore(st, level, xp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load skills %s: %w", name, err)
	}
	return p, nil
}

// SaveProfile upserts every skill of p in one batch.
func (r *SkillRepo) SaveProfile(ctx context.Context, p *skills.Profile) error {
	batch := &pgx.Batch{}
	for _, st := range skills.AllSkills() {
		batch.Queue(
			`INSERT INTO skill_profiles (player_name, skill, level, xp, updated_at)
			 VALUES ($1, $2, $3, $4, NOW())
			 ON CONFLICT (player_name, skill)
			 DO UPDATE SET level = EXCLUDED.level, xp = EXCLUDED.xp, updated_at = NOW()`,
			p.Name, st.String(), p.Level(st), p.XP(st),
		)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range skills.AllSkills() {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save skills %s: %w", p.Name, err)
		}
	}
	return nil
}
