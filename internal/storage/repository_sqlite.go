package storage

import (
	"time"

	"github.com/hexmech/hexmech/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Commanders").Preload("Units").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Commanders").Preload("Units").
		Where("join_code = ?", code).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) GetPublicBattles() ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Preload("Commanders").
		Where("private = ? AND status = ?", false, game.StatusWaitingForPlayers).
		Order("created_at DESC").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

// UpdateBattle saves the battle with full associations and flushes the log
// entries buffered during resolution into the append-only battle_log table.
func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	entries := b.DrainLog()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].BattleID = b.ID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) RemoveCommanderByEmail(battleID uint, email string) error {
	return r.db.Where("battle_id = ? AND email = ?", battleID, email).
		Delete(&game.Commander{}).Error
}

func (r *sqliteRepository) GetBattleLog(battleID uint, limit int) ([]game.LogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	var entries []game.LogEntry
	err := r.db.Where("battle_id = ?", battleID).
		Order("id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sqliteRepository) UpsertProfile(email, name string) error {
	var p game.CommanderProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = game.CommanderProfile{Email: email, Name: name}
		} else {
			return err
		}
	}
	if name != "" {
		p.Name = name
	}
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfileByEmail(email string) (*game.CommanderProfile, error) {
	var p game.CommanderProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.CommanderProfile{Email: email}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.CommanderProfile) error {
	return r.db.Save(p).Error
}

// UpdateStatsOnBattleEnd bumps the aggregate counters for every human seat:
// one battle played each, a win for the winner's commander, a resignation
// for the resigning email when given. AI seats are skipped.
func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error {
	bump := func(email, name string, played, wins, resigns int) error {
		if email == "" {
			return nil
		}
		var p game.CommanderProfile
		if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			p = game.CommanderProfile{Email: email, Name: name}
		}
		p.BattlesPlayed += played
		p.Wins += wins
		p.Resignations += resigns
		return r.db.Save(&p).Error
	}

	for i := range b.Commanders {
		c := &b.Commanders[i]
		if c.IsAI {
			continue
		}
		if err := bump(c.Email, c.Name, 1, 0, 0); err != nil {
			return err
		}
		if b.Winner != game.SideNone && c.Side == b.Winner {
			if err := bump(c.Email, c.Name, 0, 1, 0); err != nil {
				return err
			}
		}
		if resignedEmail != "" && c.Email == resignedEmail {
			if err := bump(c.Email, c.Name, 0, 0, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetTopCommanders returns the top N profiles ordered by wins, then battles
// played.
func (r *sqliteRepository) GetTopCommanders(limit int) ([]game.CommanderProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.CommanderProfile
	if err := r.db.Model(&game.CommanderProfile{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Where("status = ? AND action_deadline != ? AND action_deadline <= ?",
		game.StatusInProgress, time.Time{}, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
