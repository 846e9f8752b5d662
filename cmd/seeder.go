package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mputra/treasury-management/internal/activity"
	"github.com/mputra/treasury-management/internal/expense"
	"github.com/mputra/treasury-management/internal/income"
	"github.com/mputra/treasury-management/internal/kas"
	"github.com/mputra/treasury-management/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample members and ledger entries for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		members := []user.User{
			{NPM: "2110512001", Name: "Dimas Arya", Role: "admin", Position: "Ketua Umum"},
			{NPM: "2110512002", Name: "Siti Rahma", Role: "bendahara", Position: "Bendahara Umum"},
			{NPM: "2110512003", Name: "Andi Saputra", Role: "keuangan", Position: "Staff Keuangan"},
			{NPM: "2110512004", Name: "Putri Lestari", Role: "anggota", Position: "Anggota Divisi Humas"},
		}

		var memberIDs []int64
		for i := range members {
			m := members[i]
			m.PasswordHash = string(hash)
			m.IsActive = true

			var existing user.User
			err := db.Where("npm = ?", m.NPM).First(&existing).Error
			if err == nil {
				fmt.Printf("member %s already exists, skipping\n", m.NPM)
				memberIDs = append(memberIDs, existing.ID)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to check member %s: %v", m.NPM, err)
			}

			if err := db.Create(&m).Error; err != nil {
				log.Fatalf("failed to seed member %s: %v", m.NPM, err)
			}
			memberIDs = append(memberIDs, m.ID)
			fmt.Printf("seeded member %s (%s)\n", m.Name, m.Role)
		}

		makrab := activity.Activity{
			Name:     "Makrab 2024",
			Date:     time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
			Location: "Villa Puncak",
		}
		if err := db.Where("name = ?", makrab.Name).FirstOrCreate(&makrab).Error; err != nil {
			log.Fatalf("failed to seed activity: %v", err)
		}

		var kasCount int64
		db.Model(&kas.Kas{}).Count(&kasCount)
		if kasCount == 0 {
			entries := []kas.Kas{
				{UserID: memberIDs[3], Amount: 5000, Date: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC), Type: kas.TypeInflow},
				{UserID: memberIDs[3], Amount: 5000, Date: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), Type: kas.TypeInflow, ActivityID: &makrab.ID},
				{UserID: memberIDs[2], Amount: 5000, Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), Type: kas.TypeInflow},
			}
			for i := range entries {
				if err := db.Create(&entries[i]).Error; err != nil {
					log.Fatalf("failed to seed kas entry: %v", err)
				}
			}
			fmt.Printf("seeded %d kas entries\n", len(entries))
		}

		var incomeCount int64
		db.Model(&income.Income{}).Count(&incomeCount)
		if incomeCount == 0 {
			donation := income.Income{
				Amount:      20000,
				Date:        time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC),
				Description: "sponsorship for makrab",
			}
			if err := db.Create(&donation).Error; err != nil {
				log.Fatalf("failed to seed income entry: %v", err)
			}
			fmt.Println("seeded income entry")
		}

		var expenseCount int64
		db.Model(&expense.Expense{}).Count(&expenseCount)
		if expenseCount == 0 {
			consumption := expense.Expense{
				Amount:      7000,
				Date:        time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
				Description: "consumption for committee meeting",
			}
			if err := db.Create(&consumption).Error; err != nil {
				log.Fatalf("failed to seed expense entry: %v", err)
			}
			fmt.Println("seeded expense entry")
		}

		fmt.Println("seeding complete")
	},
}
