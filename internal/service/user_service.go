package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

type UserService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
}

func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetProfile 用户主页：资料、关注统计、与 viewer 的关系
func (s *UserService) GetProfile(viewerID, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(userID)
	if err != nil {
		return nil, err
	}

	status := &dto.ProfileStatus{IsOwner: viewerID == userID}
	if !status.IsOwner && viewerID != 0 {
		status.IsFollowing, err = s.followRepo.IsFollowing(viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	info := buildUserInfo(user)
	if !status.IsOwner {
		info.Email = ""
	}

	return &dto.UserProfile{
		UserDetails:   info,
		Stats:         &dto.FollowStats{Followers: followers, Following: following},
		ProfileStatus: status,
	}, nil
}

// UpdateProfile 更新用户资料，只修改请求中出现的字段
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
		user.AvatarURL = *req.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	return buildUserInfo(user), nil
}
