package usecase

import (
	"context"
	"testing"
	"time"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSlots(t *testing.T, u *availabilityUsecase, doctorID uuid.UUID, from, to time.Time) []entity.Availability {
	t.Helper()
	var slots []entity.Availability
	require.NoError(t, u.db.
		Where("doctor_id = ? AND date BETWEEN ? AND ?", doctorID, from, to).
		Order("date, start_time").
		Find(&slots).Error)
	return slots
}

func TestGenerateCustomOneTime(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomOneTime,
		StartDate:  "2026-03-03",
		EndDate:    "2026-03-03",
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "10:00", GapMinutes: 30}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 3), date(2026, 3, 3))
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, "09:30", slots[1].StartTime)
	assert.Equal(t, "10:00", slots[1].EndTime)
	assert.Equal(t, entity.SlotStatusAvailable, slots[0].Status)
	assert.Equal(t, entity.AGModeCustomOneTime, slots[0].Mode)
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	req := &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomOneTime,
		StartDate:  "2026-03-03",
		EndDate:    "2026-03-04",
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "10:00", GapMinutes: 30}},
	}

	resp, err := u.Generate(context.Background(), principal, req)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Created)

	resp, err = u.Generate(context.Background(), principal, req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 3), date(2026, 3, 4))
	assert.Len(t, slots, 4)
}

func TestGenerateDropsTrailingRemainder(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	// 09:00-09:50 with 30 minute gaps: one whole slot fits, the 20 minute
	// remainder is dropped.
	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomOneTime,
		StartDate:  "2026-03-03",
		EndDate:    "2026-03-03",
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "09:50", GapMinutes: 30}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 3), date(2026, 3, 3))
	require.Len(t, slots, 1)
	assert.Equal(t, "09:30", slots[0].EndTime)
}

func TestGenerateSkipsBlockedDays(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	// 2026-03-08 is a Sunday, 2026-03-04 is a holiday and 2026-03-05 is
	// covered by an approved leave.
	require.NoError(t, db.Create(&entity.Holiday{HolidayDate: date(2026, 3, 4), Name: "Holiday"}).Error)
	require.NoError(t, db.Create(&entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: date(2026, 3, 5),
		ToDate:   date(2026, 3, 5),
		Status:   entity.LeaveStatusApproved,
		Days:     1,
	}).Error)

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomOneTime,
		StartDate:  "2026-03-03",
		EndDate:    "2026-03-09",
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "09:30", GapMinutes: 30}},
	})
	require.NoError(t, err)
	// 7 days minus Sunday, holiday and leave day.
	assert.Equal(t, 4, resp.Created)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 3), date(2026, 3, 9))
	generated := make(map[string]bool)
	for _, s := range slots {
		generated[s.Date.Format("2006-01-02")] = true
	}
	assert.False(t, generated["2026-03-04"])
	assert.False(t, generated["2026-03-05"])
	assert.False(t, generated["2026-03-08"])
	assert.True(t, generated["2026-03-03"])
	assert.True(t, generated["2026-03-09"])
}

func TestGenerateSkipsPastSlots(t *testing.T) {
	db := newTestDB(t)
	// Clock at 08:00: the 07:00-07:30 slot is already over, 07:30-08:30
	// still ends in the future.
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:      entity.AGModeManual,
		StartDate: "2026-03-02",
		ManualSlots: []dto.ManualSlotRequest{
			{Date: "2026-03-02", StartTime: "07:00", EndTime: "07:30"},
			{Date: "2026-03-02", StartTime: "07:30", EndTime: "08:30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 2), date(2026, 3, 2))
	require.Len(t, slots, 1)
	assert.Equal(t, "07:30", slots[0].StartTime)
}

func TestGenerateSkipsOverlappingSlots(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "09:15", "09:45", entity.SlotStatusAvailable)

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomOneTime,
		StartDate:  "2026-03-03",
		EndDate:    "2026-03-03",
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "10:00", GapMinutes: 30}},
	})
	require.NoError(t, err)
	// Both candidates intersect the existing 09:15-09:45 slot.
	assert.Equal(t, 0, resp.Created)
}

func TestGenerateAutoInstallsDefaultPreference(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeAuto})
	require.NoError(t, err)
	// AUTO only installs the preference; the scheduler generates later.
	assert.Equal(t, 0, resp.Created)

	pref, err := u.GetPreference(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, entity.AGModeAuto, pref.Mode)
	assert.Equal(t, defaultDaysAhead, pref.DaysAhead)
	assert.True(t, pref.IsActive)
	require.NotNil(t, pref.LastGeneratedOn)
	assert.Equal(t, "2026-03-02", pref.LastGeneratedOn.Format("2006-01-02"))
	require.Len(t, pref.SlotInputs, 2)
	starts := []string{pref.SlotInputs[0].StartTime, pref.SlotInputs[1].StartTime}
	assert.ElementsMatch(t, []string{"09:00", "14:00"}, starts)
}

func TestGenerateAutoPreservesFutureWatermark(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	future := date(2026, 3, 10)
	require.NoError(t, db.Create(&entity.AGPreference{
		DoctorID:        doctor.UserID,
		Mode:            entity.AGModeManual,
		DaysAhead:       3,
		LastGeneratedOn: &future,
		IsActive:        false,
	}).Error)

	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeAuto})
	require.NoError(t, err)

	pref, err := u.GetPreference(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, entity.AGModeAuto, pref.Mode)
	// Future watermark and the doctor's opt-out both survive the switch.
	assert.Equal(t, "2026-03-10", pref.LastGeneratedOn.Format("2006-01-02"))
	assert.False(t, pref.IsActive)
}

func TestGenerateAutoPreservesOptOut(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	require.NoError(t, db.Create(&entity.AGPreference{
		DoctorID:  doctor.UserID,
		Mode:      entity.AGModeManual,
		DaysAhead: 3,
		IsActive:  false,
	}).Error)

	// The opt-out must survive the insert itself, not just the struct copy.
	var row entity.AGPreference
	require.NoError(t, db.First(&row, "doctor_id = ?", doctor.UserID).Error)
	require.False(t, row.IsActive)

	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeAuto})
	require.NoError(t, err)

	var after entity.AGPreference
	require.NoError(t, db.First(&after, "doctor_id = ?", doctor.UserID).Error)
	assert.Equal(t, entity.AGModeAuto, after.Mode)
	assert.False(t, after.IsActive)
}

func TestGenerateManualNilSlotsUpdatesPreferenceOnly(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeManual})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)

	pref, err := u.GetPreference(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, entity.AGModeManual, pref.Mode)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 2), date(2026, 3, 31))
	assert.Empty(t, slots)
}

func TestGenerateManualWithoutPreferenceFails(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeManual})
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}

func TestGenerateInvalidMode(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: "WHENEVER"})
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestGenerateUnknownDoctor(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())

	principal := Principal{UserID: seedPatient(t, db).UserID, Role: entity.RoleDoctor}
	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{Mode: entity.AGModeAuto})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGenerateScheduledAdvancesWatermark(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	pref := seedPreference(t, db, doctor.UserID, entity.AGModeCustomContinuous)

	inputs := []entity.SlotInput{{StartTime: "09:00", EndTime: "10:00", GapMinutes: 30}}
	created, err := u.GenerateScheduled(context.Background(), doctor.UserID, date(2026, 3, 3), 2, inputs, false)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	require.NoError(t, db.First(pref, "doctor_id = ?", doctor.UserID).Error)
	require.NotNil(t, pref.LastGeneratedOn)
	assert.Equal(t, "2026-03-05", pref.LastGeneratedOn.Format("2006-01-02"))
	// A SCHEDULED run only touches the watermark.
	assert.Equal(t, entity.AGModeCustomContinuous, pref.Mode)
}

func TestWatermarkNeverMovesBackward(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	pref := seedPreference(t, db, doctor.UserID, entity.AGModeCustomContinuous)

	future := date(2026, 3, 20)
	require.NoError(t, db.Model(pref).Update("last_generated_on", future).Error)

	inputs := []entity.SlotInput{{StartTime: "09:00", EndTime: "09:30", GapMinutes: 30}}
	_, err := u.GenerateScheduled(context.Background(), doctor.UserID, date(2026, 3, 3), 1, inputs, false)
	require.NoError(t, err)

	require.NoError(t, db.First(pref, "doctor_id = ?", doctor.UserID).Error)
	assert.Equal(t, "2026-03-20", pref.LastGeneratedOn.Format("2006-01-02"))
}

func TestGenerateCustomContinuousRecordsWatermark(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	resp, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomContinuous,
		StartDate:  "2026-03-03",
		DaysAhead:  2,
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "09:30", GapMinutes: 30}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)

	pref, err := u.GetPreference(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, entity.AGModeCustomContinuous, pref.Mode)
	assert.Equal(t, 2, pref.DaysAhead)
	require.NotNil(t, pref.LastGeneratedOn)
	assert.Equal(t, "2026-03-05", pref.LastGeneratedOn.Format("2006-01-02"))
}

func TestGenerateClampsToHorizon(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Generate(context.Background(), principal, &dto.GenerateSlotsRequest{
		Mode:       entity.AGModeCustomContinuous,
		StartDate:  "2026-03-02",
		DaysAhead:  60,
		SlotInputs: []dto.SlotInputRequest{{StartTime: "09:00", EndTime: "09:30", GapMinutes: 30}},
	})
	require.NoError(t, err)

	pref, err := u.GetPreference(context.Background(), principal)
	require.NoError(t, err)
	require.NotNil(t, pref.LastGeneratedOn)
	assert.Equal(t, "2026-03-17", pref.LastGeneratedOn.Format("2006-01-02"))
}

func TestActivatePreference(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	err := u.ActivatePreference(context.Background(), principal)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)

	pref := seedPreference(t, db, doctor.UserID, entity.AGModeAuto)
	require.NoError(t, db.Model(pref).Update("is_active", false).Error)

	require.NoError(t, u.ActivatePreference(context.Background(), principal))

	require.NoError(t, db.First(pref, "doctor_id = ?", doctor.UserID).Error)
	assert.True(t, pref.IsActive)
}

func TestActivatePreferenceIncompleteProfile(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	require.NoError(t, db.Model(doctor).Update("profile_complete", false).Error)

	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}
	err := u.ActivatePreference(context.Background(), principal)
	assert.ErrorIs(t, err, ErrIncompleteDoctorProfile)
}

func TestDeleteSlot(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	available := seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "09:00", "09:30", entity.SlotStatusAvailable)
	booked := seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "10:00", "10:30", entity.SlotStatusBooked)

	require.NoError(t, u.DeleteSlot(context.Background(), principal, available.ID))
	assert.ErrorIs(t, u.DeleteSlot(context.Background(), principal, booked.ID), ErrSlotNotDeletable)

	other := seedDoctor(t, db)
	foreign := seedSlot(t, db, other.UserID, date(2026, 3, 3), "11:00", "11:30", entity.SlotStatusAvailable)
	assert.ErrorIs(t, u.DeleteSlot(context.Background(), principal, foreign.ID), ErrSlotNotDeletable)
}

func TestBulkDeleteSlots(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "09:00", "09:30", entity.SlotStatusAvailable)
	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "09:30", "10:00", entity.SlotStatusAvailable)
	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "14:00", "14:30", entity.SlotStatusAvailable)
	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "10:00", "10:30", entity.SlotStatusBooked)

	deleted, err := u.BulkDeleteSlots(context.Background(), principal, &dto.BulkDeleteSlotsRequest{
		StartDate: "2026-03-03",
		EndDate:   "2026-03-03",
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	slots := loadSlots(t, u, doctor.UserID, date(2026, 3, 3), date(2026, 3, 3))
	assert.Len(t, slots, 2)
}

func TestListSlots(t *testing.T) {
	db := newTestDB(t)
	u := newAvailabilityUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)

	seedSlot(t, db, doctor.UserID, date(2026, 3, 4), "09:00", "09:30", entity.SlotStatusAvailable)
	seedSlot(t, db, doctor.UserID, date(2026, 3, 3), "10:00", "10:30", entity.SlotStatusBooked)
	seedSlot(t, db, doctor.UserID, date(2026, 3, 10), "09:00", "09:30", entity.SlotStatusAvailable)

	slots, err := u.ListSlots(context.Background(), doctor.UserID, "2026-03-03", "2026-03-04")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2026-03-03", slots[0].Date)
	assert.Equal(t, "2026-03-04", slots[1].Date)

	_, err = u.ListSlots(context.Background(), doctor.UserID, "03/03/2026", "2026-03-04")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
