package service

import (
	"fmt"

	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	UserService    *UserService
	OrderService   *OrderService
	CatalogService *CatalogService
}

type FactoryArgs struct {
	UOW            uow.UOW
	Hasher         PasswordHasher
	Sessions       SessionStore
	BalanceCache   BalanceCache
	Publisher      EventPublisher
	JWTSecret      []byte
	OpeningBalance decimal.Decimal
	Logger         logrus.FieldLogger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(UserServiceArgs{
		UOW:            args.UOW,
		Hasher:         args.Hasher,
		Sessions:       args.Sessions,
		BalanceCache:   args.BalanceCache,
		JWTSecret:      args.JWTSecret,
		OpeningBalance: args.OpeningBalance,
		Logger:         args.Logger,
	})
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(args.UOW, args.BalanceCache, args.Publisher, args.Logger)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	catalogService, catalogServiceErr := NewCatalogService(args.UOW)
	if catalogServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogServiceErr.Error())
	}

	return &AppServices{
		UserService:    userService,
		OrderService:   orderService,
		CatalogService: catalogService,
	}, nil
}
