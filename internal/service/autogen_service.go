package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"smarthealth/config"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"
	"smarthealth/internal/usecase"
	"smarthealth/pkg/timeslot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AutoGenerateService advances availability slot generation for doctors with
// active AUTO or CUSTOM_CONTINUOUS preferences. It runs periodically and
// generates only the days between each doctor's watermark and the rolling
// target date, so a run is idempotent and cheap when nothing is due.
type AutoGenerateService struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	agPreferenceRepo    repository.AGPreferenceRepository
	availabilityUsecase usecase.AvailabilityUsecase
	interval            time.Duration
	maxGenerationDays   int

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool

	now func() time.Time
}

func NewAutoGenerateService(
	db *gorm.DB,
	log *logrus.Logger,
	agPreferenceRepo repository.AGPreferenceRepository,
	availabilityUsecase usecase.AvailabilityUsecase,
	slotsConfig config.SlotsConfig,
) *AutoGenerateService {
	return &AutoGenerateService{
		db:                  db,
		log:                 log,
		agPreferenceRepo:    agPreferenceRepo,
		availabilityUsecase: availabilityUsecase,
		interval:            slotsConfig.AutoGenerateInterval,
		maxGenerationDays:   slotsConfig.MaximumGenerationDays,
		stopChan:            make(chan struct{}),
		now:                 time.Now,
	}
}

// Start launches the generation loop. Call Stop during shutdown.
func (s *AutoGenerateService) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *AutoGenerateService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("AutoGenerateService stopped")
	}
}

func (s *AutoGenerateService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if err := s.RunOnce(context.Background()); err != nil {
				s.log.Warnf("Scheduled slot generation failed: %+v", err)
			}
		}
	}
}

// RunOnce performs one generation pass over all eligible preferences.
func (s *AutoGenerateService) RunOnce(ctx context.Context) error {
	s.log.Info("Started scheduled availability slot generation")
	start := s.now()

	preferences, err := s.agPreferenceRepo.FindActiveByModes(s.db.WithContext(ctx),
		[]entity.AGMode{entity.AGModeAuto, entity.AGModeCustomContinuous})
	if err != nil {
		s.log.Warnf("Failed to load active generation preferences: %+v", err)
		return err
	}

	for i := range preferences {
		if err := s.generateFor(ctx, &preferences[i]); err != nil {
			s.log.Warnf("Failed scheduled generation for doctorId %s: %+v", preferences[i].DoctorID, err)
		}
	}

	s.log.Infof("Ended scheduled availability slot generation, took %s", time.Since(start))
	return nil
}

// generateFor advances one doctor's slots up to the target date. The target
// is daysAhead past today, or past the preference start date if that is
// still in the future. Doctors already generated through the target are
// skipped.
func (s *AutoGenerateService) generateFor(ctx context.Context, preference *entity.AGPreference) error {
	today := timeslot.DateOnly(s.now())
	daysAhead := preference.DaysAhead
	if daysAhead > s.maxGenerationDays {
		daysAhead = s.maxGenerationDays
	}
	target := today.AddDate(0, 0, daysAhead)
	if preference.StartDate != nil && preference.StartDate.After(today) {
		target = preference.StartDate.AddDate(0, 0, daysAhead)
	}

	lastGeneratedOn := today
	if preference.LastGeneratedOn != nil {
		lastGeneratedOn = timeslot.DateOnly(*preference.LastGeneratedOn)
	}
	if timeslot.DaysBetween(lastGeneratedOn, target) <= 0 {
		s.log.Infof("Slots already generated till target date, doctorId: %s, target: %s, lastGeneratedOn: %s",
			preference.DoctorID, target.Format("2006-01-02"), lastGeneratedOn.Format("2006-01-02"))
		return nil
	}

	if lastGeneratedOn.Before(today) {
		lastGeneratedOn = today
	}
	daysAhead = timeslot.DaysBetween(lastGeneratedOn, target)

	_, err := s.availabilityUsecase.GenerateScheduled(ctx, preference.DoctorID, lastGeneratedOn, daysAhead, preference.SlotInputs, preference.SkipHoliday)
	return err
}
