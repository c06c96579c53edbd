package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service/tokens"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	balanceRepo    BalanceRepository
	hasher         PasswordHasher
	sessions       SessionStore
	balanceCache   BalanceCache
	jwtTokenSecret []byte
	openingBalance decimal.Decimal
	l              logrus.FieldLogger
}

type UserServiceArgs struct {
	UOW            uow.UOW
	Hasher         PasswordHasher
	Sessions       SessionStore
	BalanceCache   BalanceCache
	JWTSecret      []byte
	OpeningBalance decimal.Decimal
	Logger         logrus.FieldLogger
}

func NewUserService(args UserServiceArgs) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](
		args.UOW, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr //nolint:wrapcheck
	}
	balanceRepo, balanceRepoErr := uow.GetRepositoryAs[BalanceRepository](
		args.UOW, uow.RepositoryName(repoargs.BalanceRepoName))
	if balanceRepoErr != nil {
		return nil, balanceRepoErr //nolint:wrapcheck
	}
	return &UserService{
		uow:            args.UOW,
		userRepo:       userRepo,
		balanceRepo:    balanceRepo,
		hasher:         args.Hasher,
		sessions:       args.Sessions,
		balanceCache:   args.BalanceCache,
		jwtTokenSecret: args.JWTSecret,
		openingBalance: args.OpeningBalance,
		l:              args.Logger,
	}, nil
}

// AuthResult результат регистрации или входа.
type AuthResult struct {
	User      domain.SessionUser
	Balance   decimal.Decimal
	SessionID uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// Register создает пользователя и его баланс в одной транзакции, затем открывает сессию.
// Ошибки:
//   - *domain.ValidationError если данные не прошли проверку;
//   - domain.ErrUserExists если username или email уже заняты (без учета регистра).
func (s *UserService) Register(ctx context.Context, args repoargs.CreateUser) (*AuthResult, error) {
	if err := validate.Register(args); err != nil {
		return nil, err //nolint:wrapcheck
	}

	exists, existsErr := s.userRepo.ExistsByUsernameOrEmail(ctx, args.Username, args.Email)
	if existsErr != nil {
		return nil, fmt.Errorf("registering user: %w", existsErr)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	password, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, fmt.Errorf("registering user: %s", hashErr.Error())
	}

	var user *domain.User
	var balance *domain.Balance
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, repoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		balanceRepo, repoErr := uow.GetAs[BalanceRepository](tx, uow.RepositoryName(repoargs.BalanceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		var err error
		user, err = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: args.Username,
			Email:    args.Email,
			Password: password,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		balance, err = balanceRepo.Create(c, user.ID, s.openingBalance)
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		// параллельная регистрация с теми же данными
		if errors.Is(txErr, domain.ErrDuplicateKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("registering user: %w", txErr)
	}

	s.cacheBalance(ctx, user.ID, balance.Amount)
	return s.openSession(ctx, user, balance.Amount)
}

// Login ищет пользователя по email, если identity похож на email, иначе по username.
// Ошибки: domain.ErrRecordNotFound, domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, identity, password string) (*AuthResult, error) {
	if err := validate.Login(identity, password); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var user *domain.User
	var err error
	if validate.IsEmail(identity) {
		user, err = s.userRepo.FindByEmail(ctx, identity)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, identity)
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.ComparePassword(password, user.EncryptedPassword) {
		return nil, domain.ErrPasswordMissMatch
	}

	balance, err := s.Balance(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.openSession(ctx, user, balance)
}

func (s *UserService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Session пользователь активной сессии.
type Session struct {
	ID   uuid.UUID
	User domain.SessionUser
}

// ResolveSession проверяет токен и наличие сессии. Для неверного или истекшего токена возвращает
// tokens.ErrInvalidToken/ErrTokenExpired, для отсутствующей сессии domain.ErrSessionNotFound.
// Остальные ошибки относятся к хранилищу сессий.
func (s *UserService) ResolveSession(ctx context.Context, token string) (*Session, error) {
	claims, err := tokens.ValidateUserJWT(token, s.jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	// ValidateUserJWT уже проверил формат идентификаторов
	userID, _ := claims.UserID()
	sessionID, _ := claims.SessionID()

	user, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if user.ID != userID {
		return nil, fmt.Errorf("resolve session: %w", domain.ErrSessionNotFound)
	}
	return &Session{ID: sessionID, User: *user}, nil
}

// Balance возвращает баланс пользователя для отображения. Значение берется из кэша,
// при промахе или ошибке кэша читается из базы и кэшируется заново.
func (s *UserService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	amount, found, cacheErr := s.balanceCache.Get(ctx, userID)
	if cacheErr != nil {
		s.l.WithError(cacheErr).WithField("user_id", userID).Warn("balance cache read failed")
	}
	if found {
		return amount, nil
	}

	balance, err := s.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	s.cacheBalance(ctx, userID, balance.Amount)
	return balance.Amount, nil
}

func (s *UserService) openSession(ctx context.Context, user *domain.User, balance decimal.Decimal) (*AuthResult, error) {
	sessionUser := domain.NewSessionUser(user)
	sessionID, expiresAt, err := s.sessions.Create(ctx, sessionUser)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	token, err := tokens.GenerateUserJWT(user.ID, sessionID, expiresAt, s.jwtTokenSecret)
	if err != nil {
		// сессия без токена бесполезна
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &AuthResult{
		User:      sessionUser,
		Balance:   balance,
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *UserService) cacheBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) {
	if err := s.balanceCache.Set(ctx, userID, amount); err != nil {
		s.l.WithError(err).WithField("user_id", userID).Warn("balance cache write failed")
	}
}
