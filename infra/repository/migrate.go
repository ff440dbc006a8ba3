package repository

import (
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/infra/repository/activitylog"
	"github.com/yosvanyperez/fondos/infra/repository/currency"
	"github.com/yosvanyperez/fondos/infra/repository/fund"
	"github.com/yosvanyperez/fondos/infra/repository/role"
	"github.com/yosvanyperez/fondos/infra/repository/session"
	"github.com/yosvanyperez/fondos/infra/repository/user"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the schema and seeds the fixed role set.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&role.Role{},
		&user.User{},
		&currency.Currency{},
		&fund.Fund{},
		&fund.FundCurrency{},
		&activitylog.ActivityLog{},
		&session.Session{},
	)
	if err != nil {
		return err
	}
	return seedRoles(db)
}

// SeedAdmin creates the bootstrap administrator account when no user with
// the given username exists yet. An empty password skips the seed.
func SeedAdmin(db *gorm.DB, cnf config.Admin) error {
	if cnf.Password == "" {
		return nil
	}
	var count int64
	err := db.Model(&user.User{}).
		Where("username = ?", cnf.Username).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	var adminRole role.Role
	err = db.Where("code = ?", string(domain.RoleAdministrator)).
		First(&adminRole).Error
	if err != nil {
		return err
	}
	hash, salt, err := utils.HashPassword(cnf.Password)
	if err != nil {
		return err
	}
	return db.Create(&user.User{
		ID:           uuid.New(),
		Username:     cnf.Username,
		Email:        cnf.Email,
		RoleID:       adminRole.ID,
		PasswordHash: hash,
		PasswordSalt: salt,
		Active:       true,
	}).Error
}

func seedRoles(db *gorm.DB) error {
	for _, r := range domain.Roles() {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&role.Role{
			ID:   uuid.New(),
			Code: string(r),
			Name: r.Label(),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
