package usecase

import (
	"context"
	"errors"
	"time"

	"smarthealth/config"
	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"
	"smarthealth/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrInvalidMode             = errors.New("invalid generation mode")
	ErrInvalidDateFormat       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeRange        = errors.New("invalid time range, use HH:MM with start before end")
	ErrPreferenceNotFound      = errors.New("generation preference not found")
	ErrIncompleteDoctorProfile = errors.New("doctor profile is incomplete")
	ErrSlotNotDeletable        = errors.New("slot cannot be deleted")
)

// defaultSlotInputs are installed when a doctor opts into AUTO mode: two
// daily blocks of 30 minute slots.
var defaultSlotInputs = []entity.SlotInput{
	{StartTime: "09:00", EndTime: "13:00", GapMinutes: 30},
	{StartTime: "14:00", EndTime: "18:00", GapMinutes: 30},
}

const defaultDaysAhead = 5

type AvailabilityUsecase interface {
	Generate(ctx context.Context, principal Principal, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error)
	// GenerateScheduled runs a SCHEDULED generation pass for one doctor,
	// driven by the auto generation service.
	GenerateScheduled(ctx context.Context, doctorID uuid.UUID, startDate time.Time, daysAhead int, inputs []entity.SlotInput, skipHoliday bool) (int, error)
	ActivatePreference(ctx context.Context, principal Principal) error
	GetPreference(ctx context.Context, principal Principal) (*dto.PreferenceResponse, error)
	ListSlots(ctx context.Context, doctorID uuid.UUID, from, to string) ([]dto.AvailabilityResponse, error)
	DeleteSlot(ctx context.Context, principal Principal, id int) error
	BulkDeleteSlots(ctx context.Context, principal Principal, req *dto.BulkDeleteSlotsRequest) (int64, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	availabilityRepo  repository.AvailabilityRepository
	agPreferenceRepo  repository.AGPreferenceRepository
	slotInputRepo     repository.SlotInputRepository
	holidayRepo       repository.HolidayRepository
	doctorLeaveRepo   repository.DoctorLeaveRepository
	doctorProfileRepo repository.DoctorProfileRepository
	slotsConfig       config.SlotsConfig

	now func() time.Time
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	agPreferenceRepo repository.AGPreferenceRepository,
	slotInputRepo repository.SlotInputRepository,
	holidayRepo repository.HolidayRepository,
	doctorLeaveRepo repository.DoctorLeaveRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotsConfig config.SlotsConfig,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		availabilityRepo:  availabilityRepo,
		agPreferenceRepo:  agPreferenceRepo,
		slotInputRepo:     slotInputRepo,
		holidayRepo:       holidayRepo,
		doctorLeaveRepo:   doctorLeaveRepo,
		doctorProfileRepo: doctorProfileRepo,
		slotsConfig:       slotsConfig,
		now:               time.Now,
	}
}

func (u *availabilityUsecase) Generate(ctx context.Context, principal Principal, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created := 0
	switch req.Mode {
	case entity.AGModeAuto:
		if err := u.setDefaultPreference(tx, doctor.UserID); err != nil {
			return nil, err
		}

	case entity.AGModeCustomOneTime, entity.AGModeCustomContinuous:
		created, err = u.generateFromRequest(tx, doctor.UserID, req)
		if err != nil {
			return nil, err
		}

	case entity.AGModeManual:
		// nil manual slots means "switch to manual, keep existing slots";
		// only the preference row is updated.
		if req.ManualSlots == nil {
			if err := u.savePreference(tx, doctor.UserID, req, nil); err != nil {
				return nil, err
			}
		} else {
			created, err = u.generateManual(tx, doctor.UserID, req.ManualSlots)
			if err != nil {
				return nil, err
			}
		}

	default:
		return nil, ErrInvalidMode
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.GenerateSlotsResponse{Mode: req.Mode, Created: created}, nil
}

func (u *availabilityUsecase) GenerateScheduled(ctx context.Context, doctorID uuid.UUID, startDate time.Time, daysAhead int, inputs []entity.SlotInput, skipHoliday bool) (int, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created, lastGenerated, err := u.generateRange(tx, doctorID, entity.AGModeScheduled, startDate, daysAhead, inputs)
	if err != nil {
		return 0, err
	}

	req := &dto.GenerateSlotsRequest{Mode: entity.AGModeScheduled, DaysAhead: daysAhead, SkipHoliday: skipHoliday}
	if err := u.savePreference(tx, doctorID, req, &lastGenerated); err != nil {
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}
	return created, nil
}

// generateFromRequest handles CUSTOM_ONE_TIME and CUSTOM_CONTINUOUS. One-time
// generation derives its day count from the date range; continuous generation
// uses days_ahead and records the watermark for the scheduler to advance.
func (u *availabilityUsecase) generateFromRequest(tx *gorm.DB, doctorID uuid.UUID, req *dto.GenerateSlotsRequest) (int, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}

	daysAhead := req.DaysAhead
	if req.Mode == entity.AGModeCustomOneTime {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return 0, ErrInvalidDateFormat
		}
		daysAhead = timeslot.DaysBetween(startDate, endDate)
		if daysAhead < 0 {
			return 0, ErrInvalidDateFormat
		}
	}
	// Generation never extends past the horizon; status cascades sweep up
	// to the same bound.
	if daysAhead > u.slotsConfig.MaximumGenerationDays {
		daysAhead = u.slotsConfig.MaximumGenerationDays
	}

	inputs := make([]entity.SlotInput, 0, len(req.SlotInputs))
	for _, in := range req.SlotInputs {
		inputs = append(inputs, entity.SlotInput{StartTime: in.StartTime, EndTime: in.EndTime, GapMinutes: in.GapMinutes})
	}

	created, lastGenerated, err := u.generateRange(tx, doctorID, req.Mode, startDate, daysAhead, inputs)
	if err != nil {
		return 0, err
	}

	var watermark *time.Time
	if req.Mode == entity.AGModeCustomContinuous {
		watermark = &lastGenerated
	}
	if err := u.savePreference(tx, doctorID, req, watermark); err != nil {
		return 0, err
	}
	return created, nil
}

func (u *availabilityUsecase) generateManual(tx *gorm.DB, doctorID uuid.UUID, slots []dto.ManualSlotRequest) (int, error) {
	created := 0
	for _, slot := range slots {
		date, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			return 0, ErrInvalidDateFormat
		}
		n, err := u.createSlot(tx, doctorID, date, slot.StartTime, slot.EndTime, entity.AGModeManual)
		if err != nil {
			return 0, err
		}
		created += n
	}
	return created, nil
}

// generateRange walks daysAhead+1 days starting at startDate, skipping
// blocked days, and splits each input block into gap-sized slots. The
// returned lastGenerated is the final date of the walk.
func (u *availabilityUsecase) generateRange(tx *gorm.DB, doctorID uuid.UUID, mode entity.AGMode, startDate time.Time, daysAhead int, inputs []entity.SlotInput) (int, time.Time, error) {
	date := timeslot.DateOnly(startDate)
	created := 0
	for i := 0; i <= daysAhead; i++ {
		blocked, err := u.isBlockedDay(tx, doctorID, date)
		if err != nil {
			return 0, time.Time{}, err
		}
		if !blocked {
			for _, in := range inputs {
				n, err := u.generateBlock(tx, doctorID, date, in, mode)
				if err != nil {
					return 0, time.Time{}, err
				}
				created += n
			}
		}
		date = date.AddDate(0, 0, 1)
	}
	return created, date.AddDate(0, 0, -1), nil
}

// generateBlock emits consecutive [cur, cur+gap) slots while a whole gap
// still fits. A trailing remainder shorter than the gap is dropped.
func (u *availabilityUsecase) generateBlock(tx *gorm.DB, doctorID uuid.UUID, date time.Time, in entity.SlotInput, mode entity.AGMode) (int, error) {
	start, err := timeslot.Minutes(in.StartTime)
	if err != nil {
		return 0, ErrInvalidTimeRange
	}
	end, err := timeslot.Minutes(in.EndTime)
	if err != nil {
		return 0, ErrInvalidTimeRange
	}
	if in.GapMinutes <= 0 {
		return 0, ErrInvalidTimeRange
	}

	created := 0
	for start+in.GapMinutes <= end {
		slotEnd := start + in.GapMinutes
		n, err := u.createSlot(tx, doctorID, date, timeslot.Format(start), timeslot.Format(slotEnd), mode)
		if err != nil {
			return 0, err
		}
		created += n
		start = slotEnd
	}
	return created, nil
}

// createSlot persists one slot after the acceptance checks: the slot must
// end in the future, must not already exist and must not overlap an existing
// slot. Rejections are logged and skipped, not errors. The unique key on
// (doctor, date, start, end) backstops concurrent generation runs.
func (u *availabilityUsecase) createSlot(tx *gorm.DB, doctorID uuid.UUID, date time.Time, from, to string, mode entity.AGMode) (int, error) {
	if !timeslot.EndsAfter(date, to, u.now()) {
		u.log.Infof("Slot generation request is for past; doctorId: %s, date: %s, startTime: %s, endTime: %s",
			doctorID, date.Format("2006-01-02"), from, to)
		return 0, nil
	}

	exists, err := u.availabilityRepo.ExistsByKey(tx, doctorID, date, from, to)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	overlap, err := u.availabilityRepo.HasOverlap(tx, doctorID, date, from, to)
	if err != nil {
		return 0, err
	}
	if overlap {
		u.log.Infof("Slot overlap for doctorId: %s, date: %s, startTime: %s, endTime: %s",
			doctorID, date.Format("2006-01-02"), from, to)
		return 0, nil
	}

	availability := &entity.Availability{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: from,
		EndTime:   to,
		Status:    entity.SlotStatusAvailable,
		Mode:      mode,
	}
	if err := u.availabilityRepo.Create(tx, availability); err != nil {
		if isDuplicateKeyError(err, "idx_slot_key") {
			u.log.Warnf("Concurrent slot creation for doctorId: %s, date: %s, startTime: %s", doctorID, date.Format("2006-01-02"), from)
			return 0, nil
		}
		u.log.Warnf("Failed to create availability slot: %+v", err)
		return 0, err
	}
	return 1, nil
}

// isBlockedDay reports whether no slots may be generated on date: Sundays,
// holidays and days covered by an approved leave of the doctor.
func (u *availabilityUsecase) isBlockedDay(tx *gorm.DB, doctorID uuid.UUID, date time.Time) (bool, error) {
	if date.Weekday() == time.Sunday {
		return true, nil
	}
	holiday, err := u.holidayRepo.ExistsByDate(tx, date)
	if err != nil {
		return false, err
	}
	if holiday {
		return true, nil
	}
	return u.doctorLeaveRepo.HasApprovedOn(tx, doctorID, date)
}

// setDefaultPreference installs the AUTO configuration for a doctor,
// creating the preference row if it does not exist yet. A watermark still in
// the future is preserved; a stale or missing one is reset to today.
func (u *availabilityUsecase) setDefaultPreference(tx *gorm.DB, doctorID uuid.UUID) error {
	today := timeslot.DateOnly(u.now())

	existing, err := u.agPreferenceRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find generation preference: %+v", err)
		return err
	}

	preference := &entity.AGPreference{
		DoctorID:  doctorID,
		Mode:      entity.AGModeAuto,
		DaysAhead: defaultDaysAhead,
		StartDate: &today,
		IsActive:  true,
	}
	if existing != nil {
		preference.IsActive = existing.IsActive
		preference.CreatedAt = existing.CreatedAt
	}

	lastGeneratedOn := today
	if existing != nil && existing.LastGeneratedOn != nil && !existing.LastGeneratedOn.Before(today) {
		lastGeneratedOn = *existing.LastGeneratedOn
	}
	preference.LastGeneratedOn = &lastGeneratedOn

	inputs, err := u.internSlotInputs(tx, defaultSlotInputs)
	if err != nil {
		return err
	}
	preference.SlotInputs = inputs

	if err := u.agPreferenceRepo.Save(tx, preference); err != nil {
		u.log.Warnf("Failed to save generation preference: %+v", err)
		return err
	}
	return nil
}

// savePreference updates a doctor's existing preference row. SCHEDULED runs
// touch the watermark only; any other mode rewrites the configuration. The
// watermark never moves backward.
func (u *availabilityUsecase) savePreference(tx *gorm.DB, doctorID uuid.UUID, req *dto.GenerateSlotsRequest, lastGenerated *time.Time) error {
	preference, err := u.agPreferenceRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find generation preference: %+v", err)
		return err
	}
	if preference == nil {
		return ErrPreferenceNotFound
	}

	if req.Mode == entity.AGModeScheduled {
		u.advanceWatermark(preference, lastGenerated)
	} else {
		preference.Mode = req.Mode
		preference.SkipHoliday = req.SkipHoliday
		if req.DaysAhead > 0 {
			preference.DaysAhead = req.DaysAhead
		}
		if req.StartDate != "" {
			startDate, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				return ErrInvalidDateFormat
			}
			preference.StartDate = &startDate
		}
		if req.EndDate != "" {
			endDate, err := time.Parse("2006-01-02", req.EndDate)
			if err != nil {
				return ErrInvalidDateFormat
			}
			preference.EndDate = &endDate
		}
		if len(req.SlotInputs) > 0 {
			inputs := make([]entity.SlotInput, 0, len(req.SlotInputs))
			for _, in := range req.SlotInputs {
				inputs = append(inputs, entity.SlotInput{StartTime: in.StartTime, EndTime: in.EndTime, GapMinutes: in.GapMinutes})
			}
			interned, err := u.internSlotInputs(tx, inputs)
			if err != nil {
				return err
			}
			preference.SlotInputs = interned
		}
		u.advanceWatermark(preference, lastGenerated)
	}

	if err := u.agPreferenceRepo.Save(tx, preference); err != nil {
		u.log.Warnf("Failed to save generation preference: %+v", err)
		return err
	}
	return nil
}

func (u *availabilityUsecase) advanceWatermark(preference *entity.AGPreference, lastGenerated *time.Time) {
	if lastGenerated == nil {
		return
	}
	if preference.LastGeneratedOn == nil || lastGenerated.After(*preference.LastGeneratedOn) {
		preference.LastGeneratedOn = lastGenerated
	}
}

// internSlotInputs resolves each (start, end, gap) triple to its shared row,
// creating missing ones.
func (u *availabilityUsecase) internSlotInputs(tx *gorm.DB, inputs []entity.SlotInput) ([]entity.SlotInput, error) {
	interned := make([]entity.SlotInput, 0, len(inputs))
	for _, in := range inputs {
		existing, err := u.slotInputRepo.FindByValue(tx, in.StartTime, in.EndTime, in.GapMinutes)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			interned = append(interned, *existing)
			continue
		}
		slotInput := entity.SlotInput{StartTime: in.StartTime, EndTime: in.EndTime, GapMinutes: in.GapMinutes}
		if err := u.slotInputRepo.Create(tx, &slotInput); err != nil {
			return nil, err
		}
		interned = append(interned, slotInput)
	}
	return interned, nil
}

// ActivatePreference enables scheduled generation for a doctor. The profile
// must be complete and a preference row must already exist.
func (u *availabilityUsecase) ActivatePreference(ctx context.Context, principal Principal) error {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	if !doctor.ProfileComplete {
		return ErrIncompleteDoctorProfile
	}

	preference, err := u.agPreferenceRepo.FindByDoctorID(db, doctor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find generation preference: %+v", err)
		return err
	}
	if preference == nil {
		return ErrPreferenceNotFound
	}

	preference.IsActive = true
	if err := u.agPreferenceRepo.Save(db, preference); err != nil {
		u.log.Warnf("Failed to save generation preference: %+v", err)
		return err
	}
	return nil
}

func (u *availabilityUsecase) GetPreference(ctx context.Context, principal Principal) (*dto.PreferenceResponse, error) {
	preference, err := u.agPreferenceRepo.FindByDoctorID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find generation preference: %+v", err)
		return nil, err
	}
	if preference == nil {
		return nil, ErrPreferenceNotFound
	}

	resp := &dto.PreferenceResponse{
		Mode:            preference.Mode,
		DaysAhead:       preference.DaysAhead,
		StartDate:       preference.StartDate,
		EndDate:         preference.EndDate,
		LastGeneratedOn: preference.LastGeneratedOn,
		IsActive:        preference.IsActive,
		SkipHoliday:     preference.SkipHoliday,
	}
	for _, in := range preference.SlotInputs {
		resp.SlotInputs = append(resp.SlotInputs, dto.SlotInputResponse{
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			GapMinutes: in.GapMinutes,
		})
	}
	return resp, nil
}

func (u *availabilityUsecase) ListSlots(ctx context.Context, doctorID uuid.UUID, from, to string) ([]dto.AvailabilityResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slots, err := u.availabilityRepo.FindByDoctorAndDateRange(u.db.WithContext(ctx), doctorID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to list availability slots: %+v", err)
		return nil, err
	}

	responses := make([]dto.AvailabilityResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, dto.AvailabilityResponse{
			ID:        slot.ID,
			Date:      slot.Date.Format("2006-01-02"),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Status:    slot.Status,
			Mode:      slot.Mode,
		})
	}
	return responses, nil
}

// DeleteSlot removes a doctor's own slot while it is still AVAILABLE.
func (u *availabilityUsecase) DeleteSlot(ctx context.Context, principal Principal, id int) error {
	deleted, err := u.availabilityRepo.DeleteAvailableByID(u.db.WithContext(ctx), id, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to delete availability slot: %+v", err)
		return err
	}
	if deleted != 1 {
		return ErrSlotNotDeletable
	}
	return nil
}

func (u *availabilityUsecase) BulkDeleteSlots(ctx context.Context, principal Principal, req *dto.BulkDeleteSlotsRequest) (int64, error) {
	fromDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	toDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	if !timeslot.Valid(req.StartTime) || !timeslot.Valid(req.EndTime) {
		return 0, ErrInvalidTimeRange
	}

	deleted, err := u.availabilityRepo.DeleteAvailableInRange(u.db.WithContext(ctx), principal.UserID, fromDate, toDate, req.StartTime, req.EndTime)
	if err != nil {
		u.log.Warnf("Failed to bulk delete availability slots: %+v", err)
		return 0, err
	}
	return deleted, nil
}
