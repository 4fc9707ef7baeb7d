package database

import (
	"fmt"
	"log"
	"okr_backend/internal/config"
	"okr_backend/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedCurrentCycle(db, time.Now()); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移所有表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cycle{},
		&model.Objective{},
		&model.KeyResult{},
		&model.CheckIn{},
	)
}

// seedCurrentCycle 周期表为空时创建当前季度
func seedCurrentCycle(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&model.Cycle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	start, end := QuarterBounds(now)
	quarter := (int(start.Month())-1)/3 + 1
	return db.Create(&model.Cycle{
		Name:    fmt.Sprintf("%d Q%d", start.Year(), quarter),
		StartAt: start,
		EndAt:   end,
	}).Error
}

// QuarterBounds 返回 now 所在季度的起止时间
func QuarterBounds(now time.Time) (time.Time, time.Time) {
	firstMonth := time.Month((int(now.Month())-1)/3*3 + 1)
	start := time.Date(now.Year(), firstMonth, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 3, 0).Add(-time.Second)
	return start, end
}
