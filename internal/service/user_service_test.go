package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service/mocks"
	"github.com/fsdevblog/food-delivery/internal/service/tokens"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	uowmocks "github.com/fsdevblog/food-delivery/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW          *uowmocks.MockUOW
	mockTX           *uowmocks.MockTX
	mockUserRepo     *mocks.MockUserRepository
	mockBalanceRepo  *mocks.MockBalanceRepository
	mockPsswd        *mocks.MockPasswordHasher
	mockSessions     *mocks.MockSessionStore
	mockBalanceCache *mocks.MockBalanceCache
	jwtSecret        []byte
	userService      *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockBalanceRepo = mocks.NewMockBalanceRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockSessions = mocks.NewMockSessionStore(mockCtrl)
	s.mockBalanceCache = mocks.NewMockBalanceCache(mockCtrl)

	s.jwtSecret = []byte("secret")

	// Мок получения репозиториев из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.BalanceRepoName)).
		Return(s.mockBalanceRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.BalanceRepoName)).
		Return(s.mockBalanceRepo, nil).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	userService, servErr := NewUserService(UserServiceArgs{
		UOW:            s.mockUOW,
		Hasher:         s.mockPsswd,
		Sessions:       s.mockSessions,
		BalanceCache:   s.mockBalanceCache,
		JWTSecret:      s.jwtSecret,
		OpeningBalance: decimal.NewFromInt(1000),
		Logger:         l,
	})
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) user() *domain.User {
	return &domain.User{
		ID:                uuid.New(),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
		Email:             "john@example.com",
		Username:          "john",
		EncryptedPassword: "hashed",
	}
}

func (s *UserServiceTestSuite) expectSession(user *domain.User) uuid.UUID {
	sessionID := uuid.New()
	s.mockSessions.EXPECT().
		Create(gomock.Any(), domain.NewSessionUser(user)).
		Return(sessionID, time.Now().Add(time.Hour), nil)
	return sessionID
}

func (s *UserServiceTestSuite) TestRegister() {
	user := s.user()
	args := repoargs.CreateUser{Username: "John", Email: "John@Example.com", Password: "secret"}

	s.mockUserRepo.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), "John", "John@Example.com").Return(false, nil)
	s.mockPsswd.EXPECT().HashPassword("secret").Return("hashed", nil)
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), repoargs.CreateUser{Username: "John", Email: "John@Example.com", Password: "hashed"}).
		Return(user, nil)
	s.mockBalanceRepo.EXPECT().
		Create(gomock.Any(), user.ID, decimal.NewFromInt(1000)).
		Return(&domain.Balance{UserID: user.ID, Amount: decimal.NewFromInt(1000)}, nil)
	s.mockBalanceCache.EXPECT().Set(gomock.Any(), user.ID, decimal.NewFromInt(1000)).Return(nil)
	sessionID := s.expectSession(user)

	res, err := s.userService.Register(context.Background(), args)
	s.Require().NoError(err)
	s.Equal(user.ID, res.User.ID)
	s.Equal(sessionID, res.SessionID)
	s.Equal("1000", res.Balance.String())

	claims, err := tokens.ValidateUserJWT(res.Token, s.jwtSecret)
	s.Require().NoError(err)
	claimSession, _ := claims.SessionID()
	s.Equal(sessionID, claimSession)
}

func (s *UserServiceTestSuite) TestRegisterValidation() {
	_, err := s.userService.Register(context.Background(), repoargs.CreateUser{
		Username: "jo", Email: "john@example.com", Password: "secret",
	})
	var vErr *domain.ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Equal("Username", vErr.First().Field)
}

func (s *UserServiceTestSuite) TestRegisterExists() {
	s.mockUserRepo.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := s.userService.Register(context.Background(), repoargs.CreateUser{
		Username: "john", Email: "john@example.com", Password: "secret",
	})
	s.ErrorIs(err, domain.ErrUserExists)
}

func (s *UserServiceTestSuite) TestRegisterDuplicateRace() {
	s.mockUserRepo.EXPECT().ExistsByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockPsswd.EXPECT().HashPassword(gomock.Any()).Return("hashed", nil)
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).
		Return(&domain.DatabaseError{Op: "create user", Kind: domain.ErrDuplicateKey})

	_, err := s.userService.Register(context.Background(), repoargs.CreateUser{
		Username: "john", Email: "john@example.com", Password: "secret",
	})
	s.ErrorIs(err, domain.ErrUserExists)
}

func (s *UserServiceTestSuite) TestLogin() {
	user := s.user()
	notFound := &domain.DatabaseError{Op: "find user", Kind: domain.ErrRecordNotFound}

	cases := []struct {
		name     string
		identity string
		password string
		setup    func()
		wantErr  error
	}{
		{
			name:     "by email",
			identity: "JOHN@example.com",
			password: "secret",
			setup: func() {
				s.mockUserRepo.EXPECT().FindByEmail(gomock.Any(), "JOHN@example.com").Return(user, nil)
				s.mockPsswd.EXPECT().ComparePassword("secret", "hashed").Return(true)
				s.mockBalanceCache.EXPECT().Get(gomock.Any(), user.ID).Return(decimal.NewFromInt(900), true, nil)
				s.expectSession(user)
			},
		},
		{
			name:     "by username with cache miss",
			identity: "John",
			password: "secret",
			setup: func() {
				s.mockUserRepo.EXPECT().FindByUsername(gomock.Any(), "John").Return(user, nil)
				s.mockPsswd.EXPECT().ComparePassword("secret", "hashed").Return(true)
				s.mockBalanceCache.EXPECT().Get(gomock.Any(), user.ID).Return(decimal.Zero, false, nil)
				s.mockBalanceRepo.EXPECT().GetByUserID(gomock.Any(), user.ID).
					Return(&domain.Balance{Amount: decimal.NewFromInt(900)}, nil)
				s.mockBalanceCache.EXPECT().Set(gomock.Any(), user.ID, decimal.NewFromInt(900)).Return(nil)
				s.expectSession(user)
			},
		},
		{
			name:     "unknown user",
			identity: "ghost",
			password: "secret",
			setup: func() {
				s.mockUserRepo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, notFound)
			},
			wantErr: domain.ErrRecordNotFound,
		},
		{
			name:     "wrong password",
			identity: "john",
			password: "wrong1",
			setup: func() {
				s.mockUserRepo.EXPECT().FindByUsername(gomock.Any(), "john").Return(user, nil)
				s.mockPsswd.EXPECT().ComparePassword("wrong1", "hashed").Return(false)
			},
			wantErr: domain.ErrPasswordMissMatch,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.setup()
			res, err := s.userService.Login(context.Background(), tc.identity, tc.password)
			if tc.wantErr != nil {
				s.Require().ErrorIs(err, tc.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal("900", res.Balance.String())
			s.NotEmpty(res.Token)
		})
	}
}

func (s *UserServiceTestSuite) TestResolveSession() {
	user := s.user()
	sessionUser := domain.NewSessionUser(user)
	sessionID := uuid.New()

	token, err := tokens.GenerateUserJWT(user.ID, sessionID, time.Now().Add(time.Hour), s.jwtSecret)
	s.Require().NoError(err)

	s.Run("live session", func() {
		s.mockSessions.EXPECT().Get(gomock.Any(), sessionID).Return(&sessionUser, nil)

		session, resolveErr := s.userService.ResolveSession(context.Background(), token)
		s.Require().NoError(resolveErr)
		s.Equal(sessionID, session.ID)
		s.Equal(user.ID, session.User.ID)
	})

	s.Run("session deleted", func() {
		s.mockSessions.EXPECT().Get(gomock.Any(), sessionID).Return(nil, domain.ErrSessionNotFound)

		_, resolveErr := s.userService.ResolveSession(context.Background(), token)
		s.ErrorIs(resolveErr, domain.ErrSessionNotFound)
	})

	s.Run("session of another user", func() {
		other := domain.SessionUser{ID: uuid.New()}
		s.mockSessions.EXPECT().Get(gomock.Any(), sessionID).Return(&other, nil)

		_, resolveErr := s.userService.ResolveSession(context.Background(), token)
		s.ErrorIs(resolveErr, domain.ErrSessionNotFound)
	})

	s.Run("bad token", func() {
		_, resolveErr := s.userService.ResolveSession(context.Background(), "garbage")
		s.ErrorIs(resolveErr, tokens.ErrInvalidToken)
	})
}

func (s *UserServiceTestSuite) TestBalanceCacheErrorFallsBackToDatabase() {
	userID := uuid.New()
	s.mockBalanceCache.EXPECT().Get(gomock.Any(), userID).Return(decimal.Zero, false, errors.New("redis down"))
	s.mockBalanceRepo.EXPECT().GetByUserID(gomock.Any(), userID).
		Return(&domain.Balance{Amount: decimal.RequireFromString("12.50")}, nil)
	s.mockBalanceCache.EXPECT().Set(gomock.Any(), userID, gomock.Any()).Return(errors.New("redis down"))

	amount, err := s.userService.Balance(context.Background(), userID)
	s.Require().NoError(err)
	s.Equal("12.50", amount.StringFixed(2))
}

func (s *UserServiceTestSuite) TestLogout() {
	sessionID := uuid.New()
	s.mockSessions.EXPECT().Delete(gomock.Any(), sessionID).Return(nil)
	s.NoError(s.userService.Logout(context.Background(), sessionID))
}
