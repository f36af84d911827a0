package auth

import (
	"context"
	"net/http"
	"time"

	"clothesmanager/internal/domain/model"
	"clothesmanager/internal/repository"
	"clothesmanager/internal/usecase"

	"go.uber.org/zap"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token     string             `json:"token"`
	ExpiresIn int                `json:"expires_in"`
	User      usecase.UserOutput `json:"user"`
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
	logger   *zap.Logger
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
	logger *zap.Logger,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
		logger:   logger,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if in.Username == "" || in.Password == "" {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusBadRequest, "CREDENTIALS_REQUIRED")
	}

	user, err := u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			// ユーザーの有無を漏らさない
			return LoginOutput{}, usecase.NewHTTPError(http.StatusUnauthorized, "INVALID_CREDENTIALS")
		}
		return LoginOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "DB_ERROR")
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusUnauthorized, "INVALID_CREDENTIALS")
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user, now)
	if err != nil {
		return LoginOutput{}, usecase.NewHTTPError(http.StatusInternalServerError, "TOKEN_ERROR")
	}

	u.logger.Info("user logged in", zap.String("username", user.Username))

	return LoginOutput{
		Token:     token,
		ExpiresIn: int(expiresAt.Sub(now).Seconds()),
		User: usecase.UserOutput{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			StoreID:  user.StoreID,
		},
	}, nil
}
