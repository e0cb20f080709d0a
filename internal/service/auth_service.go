package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/internal/service/initdata"
	"github.com/fsdevblog/botshop/pkg/uow"
)

// AuthScheme префикс заголовка Authorization для init data.
const AuthScheme = "tma "

type AuthService struct {
	verifier InitDataVerifier
	userRepo UserRepository
}

func NewAuthService(u uow.UOW, verifier InitDataVerifier) (*AuthService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &AuthService{
		verifier: verifier,
		userRepo: userRepo,
	}, nil
}

// Authenticate проверяет заголовок Authorization вида `tma <init data>` и возвращает пользователя,
// создавая его при первом входе. Ошибки проверки имеют тип *domain.AuthError.
func (a *AuthService) Authenticate(ctx context.Context, authorization string) (*domain.User, error) {
	raw, ok := strings.CutPrefix(authorization, AuthScheme)
	if !ok {
		return nil, domain.NewAuthError(domain.AuthBadScheme, nil)
	}

	data, verifyErr := a.verifier.Verify(raw)
	if verifyErr != nil {
		return nil, verifyErr //nolint:wrapcheck
	}
	if data.User == nil {
		return nil, domain.NewAuthError(domain.AuthMissingUserID, nil)
	}
	return a.ResolveUser(ctx, *data.User)
}

// ResolveUser возвращает пользователя по telegram id или создает его. Повторные вызовы с тем же id
// возвращают одну и ту же запись. Если параллельный запрос успел создать пользователя раньше,
// возвращается его запись.
func (a *AuthService) ResolveUser(ctx context.Context, tgUser initdata.User) (*domain.User, error) {
	if tgUser.ID == 0 {
		return nil, domain.NewAuthError(domain.AuthMissingUserID, nil)
	}

	user, findErr := a.userRepo.FindByTelegramID(ctx, tgUser.ID)
	if findErr == nil {
		return user, nil
	}
	if !errors.Is(findErr, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("resolving user %d: %w", tgUser.ID, findErr)
	}

	user, createErr := a.userRepo.CreateUser(ctx, repoargs.CreateUser{
		TelegramID: tgUser.ID,
		Username:   tgUser.Username,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
	})
	if createErr == nil {
		return user, nil
	}
	if !errors.Is(createErr, domain.ErrDuplicateKey) {
		return nil, fmt.Errorf("creating user %d: %w", tgUser.ID, createErr)
	}

	user, findErr = a.userRepo.FindByTelegramID(ctx, tgUser.ID)
	if findErr != nil {
		return nil, fmt.Errorf("resolving user %d after duplicate: %w", tgUser.ID, findErr)
	}
	return user, nil
}
