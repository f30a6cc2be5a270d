package service

import (
	"context"
	"io"
	"testing"
	"time"

	"smarthealth/config"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/repository"
	"smarthealth/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.SlotInput{},
		&entity.AGPreference{},
		&entity.Availability{},
		&entity.DoctorLeave{},
		&entity.Holiday{},
	))
	require.NoError(t, db.Create(&entity.Role{ID: entity.RoleIDDoctor, RoleName: string(entity.RoleDoctor)}).Error)

	return db
}

func newAutoGenerateServiceForTest(t *testing.T, db *gorm.DB) *AutoGenerateService {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	slotsConfig := config.SlotsConfig{MaximumGenerationDays: 15, AutoGenerateInterval: time.Hour}

	availabilityUsecase := usecase.NewAvailabilityUsecase(
		db,
		log,
		repository.NewAvailabilityRepository(),
		repository.NewAGPreferenceRepository(),
		repository.NewSlotInputRepository(),
		repository.NewHolidayRepository(),
		repository.NewDoctorLeaveRepository(),
		repository.NewDoctorProfileRepository(),
		slotsConfig,
	)
	return NewAutoGenerateService(db, log, repository.NewAGPreferenceRepository(), availabilityUsecase, slotsConfig)
}

func seedActivePreference(t *testing.T, db *gorm.DB, mode entity.AGMode, daysAhead int) *entity.AGPreference {
	t.Helper()

	user := &entity.User{
		Email:    uuid.NewString() + "@clinic.test",
		Password: "x",
		FullName: "Dr. Test",
		RoleID:   entity.RoleIDDoctor,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&entity.DoctorProfile{UserID: user.ID, ProfileComplete: true}).Error)

	preference := &entity.AGPreference{
		DoctorID:   user.ID,
		Mode:       mode,
		DaysAhead:  daysAhead,
		IsActive:   true,
		SlotInputs: []entity.SlotInput{{StartTime: "09:00", EndTime: "10:00", GapMinutes: 30}},
	}
	require.NoError(t, db.Create(preference).Error)
	return preference
}

func TestRunOnceGeneratesAndAdvancesWatermark(t *testing.T) {
	db := newServiceTestDB(t)
	s := newAutoGenerateServiceForTest(t, db)
	preference := seedActivePreference(t, db, entity.AGModeAuto, 5)

	require.NoError(t, s.RunOnce(context.Background()))

	var updated entity.AGPreference
	require.NoError(t, db.First(&updated, "doctor_id = ?", preference.DoctorID).Error)
	require.NotNil(t, updated.LastGeneratedOn)

	target := time.Now().AddDate(0, 0, 5)
	assert.Equal(t, target.Format("2006-01-02"), updated.LastGeneratedOn.Format("2006-01-02"))

	var count int64
	require.NoError(t, db.Model(&entity.Availability{}).
		Where("doctor_id = ?", preference.DoctorID).
		Count(&count).Error)
	assert.Positive(t, count)
}

func TestRunOnceIsIdempotent(t *testing.T) {
	db := newServiceTestDB(t)
	s := newAutoGenerateServiceForTest(t, db)
	preference := seedActivePreference(t, db, entity.AGModeCustomContinuous, 3)

	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&entity.Availability{}).
		Where("doctor_id = ?", preference.DoctorID).
		Count(&count).Error)

	// The watermark is current now, so a second run generates nothing.
	require.NoError(t, s.RunOnce(context.Background()))

	var countAfter int64
	require.NoError(t, db.Model(&entity.Availability{}).
		Where("doctor_id = ?", preference.DoctorID).
		Count(&countAfter).Error)
	assert.Equal(t, count, countAfter)
}

func TestRunOnceIgnoresInactiveAndManualPreferences(t *testing.T) {
	db := newServiceTestDB(t)
	s := newAutoGenerateServiceForTest(t, db)

	manual := seedActivePreference(t, db, entity.AGModeManual, 5)
	inactive := seedActivePreference(t, db, entity.AGModeAuto, 5)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&entity.Availability{}).
		Where("doctor_id IN ?", []uuid.UUID{manual.DoctorID, inactive.DoctorID}).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartAndStop(t *testing.T) {
	db := newServiceTestDB(t)
	s := newAutoGenerateServiceForTest(t, db)

	s.Start()
	s.Stop()
	// A second Stop must not panic or block.
	s.Stop()
}
