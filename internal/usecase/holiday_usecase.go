package usecase

import (
	"context"
	"errors"
	"time"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHolidayOnSunday      = errors.New("holiday cannot fall on a Sunday")
	ErrHolidayAlreadyExists = errors.New("holiday already exists for this date")
	ErrHolidayNotFound      = errors.New("holiday not found")
)

type HolidayUsecase interface {
	Add(ctx context.Context, req *dto.HolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]dto.HolidayResponse, error)
}

type holidayUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	holidayRepo repository.HolidayRepository
}

func NewHolidayUsecase(db *gorm.DB, log *logrus.Logger, holidayRepo repository.HolidayRepository) HolidayUsecase {
	return &holidayUsecase{
		db:          db,
		log:         log,
		holidayRepo: holidayRepo,
	}
}

func (u *holidayUsecase) Add(ctx context.Context, req *dto.HolidayRequest) (*dto.HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	// Sundays are blocked for generation anyway; a Sunday holiday is a
	// data entry mistake.
	if date.Weekday() == time.Sunday {
		return nil, ErrHolidayOnSunday
	}

	db := u.db.WithContext(ctx)
	exists, err := u.holidayRepo.ExistsByDate(db, date)
	if err != nil {
		u.log.Warnf("Failed to check holiday: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrHolidayAlreadyExists
	}

	holiday := &entity.Holiday{HolidayDate: date, Name: req.Name}
	if err := u.holidayRepo.Create(db, holiday); err != nil {
		if isDuplicateKeyError(err, "holiday_date") {
			return nil, ErrHolidayAlreadyExists
		}
		u.log.Warnf("Failed to create holiday: %+v", err)
		return nil, err
	}

	return &dto.HolidayResponse{
		ID:   holiday.ID,
		Date: holiday.HolidayDate.Format("2006-01-02"),
		Name: holiday.Name,
	}, nil
}

func (u *holidayUsecase) Delete(ctx context.Context, id int) error {
	deleted, err := u.holidayRepo.DeleteByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete holiday: %+v", err)
		return err
	}
	if deleted != 1 {
		return ErrHolidayNotFound
	}
	return nil
}

func (u *holidayUsecase) List(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := u.holidayRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list holidays: %+v", err)
		return nil, err
	}

	responses := make([]dto.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, dto.HolidayResponse{
			ID:   h.ID,
			Date: h.HolidayDate.Format("2006-01-02"),
			Name: h.Name,
		})
	}
	return responses, nil
}
