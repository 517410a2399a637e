package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/core/throttle"
	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/pkg/utils"
)

const (
	msgBadCredentials = "Invalid Email or Password"
	msgLoginOK        = "Login successful"
)

type IdentityConfig struct {
	BcryptCost int
	Guard      throttle.LoginGuard
}

type IdentityService struct {
	users domain.UserStore
	jwt   *auth.JWTer
	cost  int
	guard throttle.LoginGuard
	log   *zap.Logger
	// 不存在的邮箱也跑一次 bcrypt，两条失败路径耗时一致
	dummyHash string
}

func NewIdentityService(users domain.UserStore, jwter *auth.JWTer, cfg IdentityConfig, l *zap.Logger) (*IdentityService, error) {
	if l == nil {
		l = zap.NewNop()
	}
	guard := cfg.Guard
	if guard == nil {
		guard = throttle.Nop{}
	}
	dummy, err := utils.HashPassword("dummy-password-for-timing", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &IdentityService{
		users:     users,
		jwt:       jwter,
		cost:      cfg.BcryptCost,
		guard:     guard,
		log:       l,
		dummyHash: dummy,
	}, nil
}

type RegisterInput struct {
	Name     string
	Gender   string
	Country  string
	Hobbies  string
	Email    string
	Password string
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Email already registered")
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Name:         in.Name,
		Gender:       in.Gender,
		Country:      in.Country,
		Hobbies:      in.Hobbies,
		Email:        in.Email,
		PasswordHash: hash,
	}
	// 并发注册同一邮箱时由唯一索引兜底，repo 会转成 Conflict
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("uid", u.ID))
	return u, nil
}

type LoginResult struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	*domain.User
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	key := strings.ToLower(email)
	ok, err := s.guard.Allow(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.TooManyAttempts("Too many login attempts, try again later")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	hash := s.dummyHash
	if u != nil {
		hash = u.PasswordHash
	}
	if !utils.CheckPassword(password, hash) || u == nil {
		if err := s.guard.Fail(ctx, key); err != nil {
			s.log.Warn("record login failure", zap.Error(err))
		}
		return nil, domain.Unauthorized(msgBadCredentials)
	}
	if err := s.guard.Reset(ctx, key); err != nil {
		s.log.Warn("reset login failures", zap.Error(err))
	}

	token, err := s.jwt.Issue(u.ID, u.Email, auth.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Message: msgLoginOK, AccessToken: token, User: u}, nil
}

// IssueAdminToken 给已存在的用户签发 admin 角色令牌，仅供 CLI 使用
func (s *IdentityService) IssueAdminToken(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", domain.NotFound("User not found")
	}
	return s.jwt.Issue(u.ID, u.Email, auth.RoleAdmin)
}

func (s *IdentityService) ListUsers(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	offset, limit = NormalizeOffset(offset, limit)
	return s.users.List(ctx, offset, limit, q)
}

// PurgeUser 删除用户，todos 由外键级联删除
func (s *IdentityService) PurgeUser(ctx context.Context, id string) error {
	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("User not found")
	}
	s.log.Info("user purged", zap.String("uid", id))
	return nil
}
