package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/pkg/jwt"
	"github.com/qs3c/shelf_server/internal/pkg/tokenstore"
	"github.com/qs3c/shelf_server/internal/repository"
)

type AuthService struct {
	tx        *repository.Transactor
	userRepo  *repository.UserRepository
	listRepo  *repository.ListRepository
	blacklist *tokenstore.Blacklist
	cfg       *config.Config
}

func NewAuthService(
	tx *repository.Transactor,
	userRepo *repository.UserRepository,
	listRepo *repository.ListRepository,
	blacklist *tokenstore.Blacklist,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		tx:        tx,
		userRepo:  userRepo,
		listRepo:  listRepo,
		blacklist: blacklist,
		cfg:       cfg,
	}
}

// Register 用户注册，同一事务内创建预设列表
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Password != req.Password2 {
		return nil, ErrPasswordMismatch
	}

	// 检查用户名是否存在
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	// 检查邮箱是否存在
	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	email := req.Email
	user := &model.User{
		Username:     req.Username,
		Email:        &email,
		PasswordHash: &passwordStr,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	err = s.tx.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrUsernameExists
			}
			return err
		}
		return s.listRepo.WithTx(tx).CreatePredefined(user.ID)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		User:  buildUserInfo(user),
		Token: token,
	}, nil
}

// Login 用户名密码登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

// Logout 注销令牌，直到其自然过期
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.TTL())
}
