// Сидер заполняет каталог тестовыми данными от имени нового пользователя.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/caarlos0/env/v11"
	"github.com/fsdevblog/food-delivery/internal/app"
	"github.com/fsdevblog/food-delivery/internal/cache"
	"github.com/fsdevblog/food-delivery/internal/config"
	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/events"
	"github.com/fsdevblog/food-delivery/internal/logger"
	"github.com/fsdevblog/food-delivery/internal/repository/pgrepo"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/service/psswd"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	_ "github.com/golang-migrate/migrate/v4/source/file"       //nolint:revive
)

type seedConfig struct {
	Seed      uint64 `env:"SEED" envDefault:"0"`
	Countries int    `env:"SEED_COUNTRIES" envDefault:"3"`
	Locations int    `env:"SEED_LOCATIONS" envDefault:"2"`
	Menus     int    `env:"SEED_MENUS" envDefault:"2"`
	Foods     int    `env:"SEED_FOODS" envDefault:"5"`
}

func main() {
	l := logger.New(os.Stdout)

	conf, confErr := config.LoadConfig()
	if confErr != nil {
		l.WithError(confErr).Fatal("load config")
	}

	var sc seedConfig
	if err := env.Parse(&sc); err != nil {
		l.WithError(err).Fatal("parse seed config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute) //nolint:mnd
	defer cancel()

	if err := run(ctx, conf, sc, l); err != nil {
		l.WithError(err).Fatal("seed failed")
	}
}

func run(ctx context.Context, conf *config.Config, sc seedConfig, l *logrus.Logger) error {
	conn, connErr := pgrepo.Connect(ctx, conf.MigrationsDir, conf.DatabaseDSN, l)
	if connErr != nil {
		return fmt.Errorf("seed: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := app.InitUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("seed: %s", uowErr.Error())
	}

	redisClient, redisErr := cache.NewClient(ctx, cache.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if redisErr != nil {
		return fmt.Errorf("seed: %s", redisErr.Error())
	}
	defer redisClient.Close()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:            unitOfWork,
		Hasher:         psswd.New(bcrypt.DefaultCost),
		Sessions:       cache.NewSessionStore(redisClient, conf.SessionTTL),
		BalanceCache:   cache.NewBalanceCache(redisClient, conf.SessionTTL),
		Publisher:      events.NewNoopPublisher(l),
		JWTSecret:      []byte(conf.JWTSecret),
		OpeningBalance: conf.OpeningBalance,
		Logger:         logger.Component(l, "seed"),
	})
	if sErr != nil {
		return fmt.Errorf("seed: %s", sErr.Error())
	}

	s := &seeder{
		faker:   gofakeit.New(sc.Seed),
		catalog: services.CatalogService,
		conf:    sc,
	}

	password := s.faker.Password(true, true, true, false, false, 12) //nolint:mnd
	auth, regErr := services.UserService.Register(ctx, repoargs.CreateUser{
		Username: "seed" + strings.ToLower(s.faker.LetterN(8)), //nolint:mnd
		Email:    s.faker.Email(),
		Password: password,
	})
	if regErr != nil {
		return fmt.Errorf("seed register: %w", regErr)
	}
	s.owner = auth.User.ID

	l.WithFields(logrus.Fields{
		"username": auth.User.Username,
		"password": password,
	}).Info("Seed user created")

	total, err := s.countries(ctx)
	if err != nil {
		return err
	}
	l.WithField("foods", total).Info("Catalog seeded")
	return nil
}

type seeder struct {
	faker   *gofakeit.Faker
	catalog *service.CatalogService
	conf    seedConfig
	owner   uuid.UUID
}

func (s *seeder) countries(ctx context.Context) (int, error) {
	var total int
	for range s.conf.Countries {
		code := s.faker.CountryAbr()
		country, err := s.catalog.CreateCountry(ctx, repoargs.CreateCountry{
			Name:      s.faker.Country(),
			Code:      code,
			Emoji:     domain.CountryFlag(code),
			CreatedBy: s.owner,
		})
		if errors.Is(err, domain.ErrDuplicateKey) {
			// страна уже есть в базе, пропускаем
			continue
		}
		if err != nil {
			return total, fmt.Errorf("seed country: %w", err)
		}
		n, locErr := s.locations(ctx, country.ID)
		total += n
		if locErr != nil {
			return total, locErr
		}
	}
	return total, nil
}

func (s *seeder) locations(ctx context.Context, countryID uuid.UUID) (int, error) {
	var total int
	for range s.conf.Locations {
		phone := s.faker.Phone()
		location, err := s.catalog.CreateLocation(ctx, repoargs.CreateLocation{
			Address:   s.faker.Street() + ", " + s.faker.City(),
			CountryID: countryID,
			Phone:     &phone,
			CreatedBy: s.owner,
		})
		if errors.Is(err, domain.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return total, fmt.Errorf("seed location: %w", err)
		}
		n, rErr := s.restaurant(ctx, location.ID)
		total += n
		if rErr != nil {
			return total, rErr
		}
	}
	return total, nil
}

// restaurant у каждой локации ровно один ресторан.
func (s *seeder) restaurant(ctx context.Context, locationID uuid.UUID) (int, error) {
	active := true
	rating := int16(s.faker.IntRange(0, 10)) //nolint:gosec,mnd
	restaurant, err := s.catalog.CreateRestaurant(ctx, repoargs.CreateRestaurant{
		Name:       s.faker.Company(),
		Active:     &active,
		Rating:     &rating,
		LocationID: locationID,
		CreatedBy:  s.owner,
	})
	if err != nil {
		return 0, fmt.Errorf("seed restaurant: %w", err)
	}
	return s.menus(ctx, restaurant.ID)
}

func (s *seeder) menus(ctx context.Context, restaurantID uuid.UUID) (int, error) {
	var total int
	for i := range s.conf.Menus {
		active := true
		menu, err := s.catalog.CreateMenu(ctx, repoargs.CreateMenu{
			Name:         fmt.Sprintf("%s menu %d", s.faker.Adjective(), i+1),
			Active:       &active,
			RestaurantID: restaurantID,
			CreatedBy:    s.owner,
		})
		if err != nil {
			return total, fmt.Errorf("seed menu: %w", err)
		}
		for j := range s.conf.Foods {
			active := s.faker.Bool()
			if _, fErr := s.catalog.CreateFood(ctx, repoargs.CreateFood{
				Name:      fmt.Sprintf("%s #%d", s.faker.Dinner(), j+1),
				Active:    &active,
				MenuID:    menu.ID,
				Price:     decimal.NewFromFloat(s.faker.Price(3, 40)).Round(2), //nolint:mnd
				CreatedBy: s.owner,
			}); fErr != nil {
				return total, fmt.Errorf("seed food: %w", fErr)
			}
			total++
		}
	}
	return total, nil
}
