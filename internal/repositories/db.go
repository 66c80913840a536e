package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/nudge/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormStore implements Store on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// ConnectDatabase opens the database and runs migrations.
func ConnectDatabase(dsn string, log *zap.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Interaction{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Info("successfully connected to database")
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an already opened handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Omit("Tasks", "Interactions").Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *GormStore) ClearInitial(ctx context.Context, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("initial", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) AcquireLease(ctx context.Context, userID uuid.UUID, field models.LeaseField, now time.Time, window time.Duration) (bool, error) {
	col, err := leaseColumn(field)
	if err != nil {
		return false, err
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Where("("+col+" IS NULL OR "+col+" <= ?)", now.Add(-window)).
		Update(col, now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) AddTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStore) AddInteraction(ctx context.Context, i *models.Interaction) error {
	return s.db.WithContext(ctx).Create(i).Error
}

func (s *GormStore) SetSurvey(ctx context.Context, interactionID uuid.UUID, survey string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("id = ? AND survey IS NULL", interactionID).
		Update("survey", survey)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func leaseColumn(f models.LeaseField) (string, error) {
	switch f {
	case models.LeaseAccess, models.LeaseNotification, models.LeaseSurvey:
		return string(f), nil
	}
	return "", fmt.Errorf("unknown lease field %q", f)
}
