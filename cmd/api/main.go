package main

import (
	"time"

	"clothesmanager/internal/config"
	"clothesmanager/internal/domain/model"
	"clothesmanager/internal/handler"
	"clothesmanager/internal/infra/db"
	infraRepo "clothesmanager/internal/infra/repository"
	"clothesmanager/internal/logger"
	"clothesmanager/internal/server"
	"clothesmanager/internal/usecase"
	auth "clothesmanager/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	if user.StoreID != nil {
		claims["store_id"] = *user.StoreID
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもいい（本番は環境変数直渡し）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Store{},
		&model.Size{},
		&model.User{},
		&model.Material{},
		&model.Order{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	sizeRepo := infraRepo.NewSizeGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 12 * time.Hour,
	}

	//Usecase生成
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock, log)
	changePasswordUC := auth.NewChangePasswordUsecase(userRepo, verifier, hasher)
	setupUC := auth.NewSetupUsecase(txManager, hasher, log)

	materialUC := usecase.NewMaterialUsecase(txManager, log)
	orderUC := usecase.NewOrderUsecase(txManager, log)
	storeUC := usecase.NewStoreUsecase(txManager, log)
	sizeUC := usecase.NewSizeUsecase(sizeRepo)
	userUC := usecase.NewUserUsecase(txManager, hasher, log)
	dashboardUC := usecase.NewDashboardUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(loginUC, changePasswordUC, setupUC),
		Material:  handler.NewMaterialHandler(materialUC),
		Order:     handler.NewOrderHandler(orderUC),
		Store:     handler.NewStoreHandler(storeUC),
		Size:      handler.NewSizeHandler(sizeUC),
		User:      handler.NewUserHandler(userUC),
		Dashboard: handler.NewDashboardHandler(dashboardUC),
	}

	//Server起動
	e := server.New(cfg, log, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
