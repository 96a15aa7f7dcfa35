package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/domain/services"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, email, username, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Profile(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockEntryUseCase struct {
	mock.Mock
}

func (m *MockEntryUseCase) Create(ctx context.Context, callerID string, input entities.NewEntryInput) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, callerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

func (m *MockEntryUseCase) List(ctx context.Context, callerID string) ([]*entities.DiaryEntry, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiaryEntry), args.Error(1)
}

func (m *MockEntryUseCase) FindByCalendarDay(ctx context.Context, callerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error) {
	args := m.Called(ctx, callerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DiaryEntry), args.Error(1)
}

func (m *MockEntryUseCase) Update(ctx context.Context, callerID, entryID string, patch entities.EntryPatch) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, callerID, entryID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

func (m *MockEntryUseCase) Delete(ctx context.Context, callerID, entryID string) (*entities.DiaryEntry, error) {
	args := m.Called(ctx, callerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DiaryEntry), args.Error(1)
}

type MockImageUseCase struct {
	mock.Mock
}

func (m *MockImageUseCase) Upload(ctx context.Context, callerID string, upload entities.ImageUpload) (*entities.ImageRef, error) {
	args := m.Called(ctx, callerID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ImageRef), args.Error(1)
}

func (m *MockImageUseCase) Discard(ctx context.Context, images []entities.ImageRef) {
	m.Called(ctx, images)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	args := m.Called(ctx, userID, username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}
