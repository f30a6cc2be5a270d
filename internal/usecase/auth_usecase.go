package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"
	"smarthealth/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrRoleNotFound       = errors.New("role not found")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	jwtService         *jwt.JWTService
	redisClient        *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		jwtService:         jwtService,
		redisClient:        redisClient,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
		IsActive: true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	patientProfile := &entity.PatientProfile{
		UserID:      user.ID,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Address:     req.Address,
	}

	if err := u.patientProfileRepo.Create(tx, patientProfile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RolePatient,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
		IsActive: true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	doctorProfile := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		Phone:           req.Phone,
		Biography:       req.Biography,
		ProfileComplete: req.Specialization != "" && req.Phone != "",
	}

	if err := u.doctorProfileRepo.Create(tx, doctorProfile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RoleDoctor,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, ok := entity.NameForRoleID(user.RoleID)
	if !ok {
		return nil, ErrRoleNotFound
	}

	return u.issueTokens(ctx, user.ID, user.Email, role)
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, role entity.RoleName) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	accessPattern := fmt.Sprintf("access_token:*:%s", accessTokenID)
	refreshPattern := fmt.Sprintf("refresh_token:*:%s", refreshTokenID)

	for _, pattern := range []string{accessPattern, refreshPattern} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is dropped before new tokens go out.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role, ok := entity.NameForRoleID(user.RoleID)
	if !ok {
		return nil, ErrRoleNotFound
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// isDuplicateKeyError matches a unique constraint violation. The gorm
// translated error covers drivers without pg error details.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
