package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	accountdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/account/domain"
	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "2024admin"

	roomsPerLevel = 40
	topLevel      = 5
)

var defaultCycles = []cycledomain.CreateCycleRequest{
	{Name: "Semester 1 2024/2025", StartDate: "2024-08-03", EndDate: "2024-12-08"},
	{Name: "Semester 2 2024/2025", StartDate: "2025-01-18", EndDate: "2025-06-15"},
	{Name: "Recess 2024/2025", StartDate: "2025-06-22", EndDate: "2025-08-24"},
}

const (
	defaultCostSingle = int64(1300000)
	defaultCostDouble = int64(650000)
)

// Bootstrap populates an empty database with the admin account, the
// default semester cycles and the building's rooms, all in one
// transaction. A database with any account at all is left untouched,
// so running it on every start is safe.
func Bootstrap(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	if db == nil || genID == nil {
		return errors.New("seed dependencies are required")
	}
	log = log.Named("seed")

	var count int64
	if err := db.Model(&accountdomain.Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("database already has accounts, skipping bootstrap")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		admin := accountdomain.Account{
			ID:        genID.Generate(),
			Username:  defaultAdminUsername,
			Password:  defaultAdminPassword,
			Role:      accountdomain.RoleAdmin,
			Approved:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		for _, spec := range defaultCycles {
			start, err := cycledomain.ParseDate(spec.StartDate)
			if err != nil {
				return err
			}
			end, err := cycledomain.ParseDate(spec.EndDate)
			if err != nil {
				return err
			}
			costSingle := defaultCostSingle
			costDouble := defaultCostDouble
			cycle := cycledomain.BillingCycle{
				ID:         genID.Generate(),
				Name:       spec.Name,
				StartDate:  start,
				EndDate:    end,
				CostSingle: &costSingle,
				CostDouble: &costDouble,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&cycle).Error; err != nil {
				return err
			}
		}

		rng := rand.New(rand.NewSource(now.UnixNano()))
		for level := 1; level <= topLevel; level++ {
			for i := 0; i < roomsPerLevel; i++ {
				room := roomdomain.Room{
					ID:          genID.Generate(),
					LevelNumber: level,
					RoomName:    randomRoomName(rng),
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := tx.Create(&room).Error; err != nil {
					return err
				}
			}
		}

		log.Info("seeded empty database",
			zap.String("admin_username", defaultAdminUsername),
			zap.Int("cycles", len(defaultCycles)),
			zap.Int("rooms", roomsPerLevel*topLevel),
		)
		return nil
	})
}

// randomRoomName follows the house numbering style: one letter and a
// three digit number, like B407.
func randomRoomName(rng *rand.Rand) string {
	letter := rune('A' + rng.Intn(26))
	return fmt.Sprintf("%c%d", letter, 100+rng.Intn(900))
}
