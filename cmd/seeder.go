package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/prasetya/wiki-management/internal/settings"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the built-in roles and bootstrap admin",
	Long:  `Idempotently seeds the four system roles, a bootstrap superadmin account and default settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		systemRoles := []struct {
			Slug string
			Name string
			Desc string
		}{
			{"superadmin", "Superadmin", "Full access to everything, bypasses all permission checks"},
			{"admin", "Admin", "Can create folders and administer roles"},
			{"member", "Member", "Default role for registered users"},
			{"public", "Public", "Role for unauthenticated visitors"},
		}

		for _, r := range systemRoles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE id = ?", r.Slug).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (id, name, is_system, description, created_at) VALUES (?, ?, true, ?, now())", r.Slug, r.Name, r.Desc).Error; err != nil {
				log.Fatalf("failed to insert system role %s: %v", r.Slug, err)
			}
			fmt.Println("Seeded system role:", r.Slug)
		}

		adminEmail := "admin@wiki.local"
		var adminID string
		if err := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row().Scan(&adminID); err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash bootstrap password: %v", err)
			}
			adminID = uuid.NewString()
			if err := db.Exec("INSERT INTO users (id, email, full_name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", adminID, adminEmail, "Bootstrap Admin", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert bootstrap admin: %v", err)
			}
			fmt.Println("Seeded bootstrap superadmin:", adminEmail)
		} else {
			fmt.Println("bootstrap admin already exists; will ensure role link")
		}

		var linked int
		if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", adminID, "superadmin").Row().Scan(&linked); err != nil {
			if err := db.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", adminID, "superadmin").Error; err != nil {
				log.Fatalf("failed to link superadmin role: %v", err)
			}
			fmt.Println("Linked superadmin role to bootstrap admin")
		}

		var settingExists int
		if err := db.Raw("SELECT 1 FROM settings WHERE key = ?", settings.KeyAllowZeroRoleUsers).Row().Scan(&settingExists); err != nil {
			if err := db.Exec("INSERT INTO settings (key, value, updated_at) VALUES (?, ?, now())", settings.KeyAllowZeroRoleUsers, "true").Error; err != nil {
				log.Fatalf("failed to insert default setting: %v", err)
			}
			fmt.Println("Seeded default setting:", settings.KeyAllowZeroRoleUsers)
		}

		fmt.Println("Seeding complete")
	},
}
