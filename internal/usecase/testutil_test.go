package usecase

import (
	"io"
	"testing"
	"time"

	"smarthealth/config"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.SubProfile{},
		&entity.SlotInput{},
		&entity.AGPreference{},
		&entity.Availability{},
		&entity.Appointment{},
		&entity.DoctorLeave{},
		&entity.Holiday{},
		&entity.AuditLog{},
	))

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: string(entity.RoleAdmin)},
		{ID: entity.RoleIDDoctor, RoleName: string(entity.RoleDoctor)},
		{ID: entity.RoleIDPatient, RoleName: string(entity.RolePatient)},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSlotsConfig() config.SlotsConfig {
	return config.SlotsConfig{
		MaximumGenerationDays: 15,
		AutoGenerateInterval:  time.Hour,
	}
}

func seedDoctor(t *testing.T, db *gorm.DB) *entity.DoctorProfile {
	t.Helper()

	user := &entity.User{
		Email:    uuid.NewString() + "@clinic.test",
		Password: "x",
		FullName: "Dr. Test",
		RoleID:   entity.RoleIDDoctor,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	doctor := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  "Cardiology",
		Phone:           "555-0100",
		ProfileComplete: true,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB) *entity.PatientProfile {
	t.Helper()

	user := &entity.User{
		Email:    uuid.NewString() + "@patients.test",
		Password: "x",
		FullName: "Pat Test",
		RoleID:   entity.RoleIDPatient,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	patient := &entity.PatientProfile{
		UserID:      user.ID,
		PhoneNumber: "555-0200",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderMale,
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func seedPreference(t *testing.T, db *gorm.DB, doctorID uuid.UUID, mode entity.AGMode) *entity.AGPreference {
	t.Helper()

	preference := &entity.AGPreference{
		DoctorID:  doctorID,
		Mode:      mode,
		DaysAhead: 5,
		IsActive:  true,
	}
	require.NoError(t, db.Create(preference).Error)
	return preference
}

func seedSlot(t *testing.T, db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string, status entity.SlotStatus) *entity.Availability {
	t.Helper()

	slot := &entity.Availability{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		Mode:      entity.AGModeManual,
	}
	require.NoError(t, db.Create(slot).Error)
	return slot
}

// fixedClock returns a clock pinned to Monday 2026-03-02 08:00 UTC.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newAvailabilityUsecaseForTest(t *testing.T, db *gorm.DB, clock func() time.Time) *availabilityUsecase {
	t.Helper()

	u := NewAvailabilityUsecase(
		db,
		newTestLogger(),
		repository.NewAvailabilityRepository(),
		repository.NewAGPreferenceRepository(),
		repository.NewSlotInputRepository(),
		repository.NewHolidayRepository(),
		repository.NewDoctorLeaveRepository(),
		repository.NewDoctorProfileRepository(),
		testSlotsConfig(),
	).(*availabilityUsecase)
	u.now = clock
	return u
}

func newAppointmentUsecaseForTest(t *testing.T, db *gorm.DB, clock func() time.Time) *appointmentUsecase {
	t.Helper()

	u := NewAppointmentUsecase(
		db,
		newTestLogger(),
		repository.NewAppointmentRepository(),
		repository.NewAvailabilityRepository(),
		repository.NewPatientProfileRepository(),
		repository.NewSubProfileRepository(),
		repository.NewDoctorProfileRepository(),
	).(*appointmentUsecase)
	u.now = clock
	return u
}

func newLeaveUsecaseForTest(t *testing.T, db *gorm.DB, clock func() time.Time) *leaveUsecase {
	t.Helper()

	u := NewLeaveUsecase(
		db,
		newTestLogger(),
		repository.NewDoctorLeaveRepository(),
		repository.NewHolidayRepository(),
		repository.NewAvailabilityRepository(),
		repository.NewAppointmentRepository(),
		repository.NewDoctorProfileRepository(),
		testSlotsConfig(),
	).(*leaveUsecase)
	u.now = clock
	return u
}
