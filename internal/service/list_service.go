package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

type ListService struct {
	tx           *repository.Transactor
	listRepo     *repository.ListRepository
	activityRepo *repository.ActivityRepository
	hydrator     *Hydrator
}

func NewListService(
	tx *repository.Transactor,
	listRepo *repository.ListRepository,
	activityRepo *repository.ActivityRepository,
	hydrator *Hydrator,
) *ListService {
	return &ListService{
		tx:           tx,
		listRepo:     listRepo,
		activityRepo: activityRepo,
		hydrator:     hydrator,
	}
}

// CreateList 创建自定义列表，同一用户下名称唯一
func (s *ListService) CreateList(userID int64, name string) (*dto.ListDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "name must not be empty")
	}

	list := &model.PersonalList{UserID: userID, Name: name}
	if err := s.listRepo.Create(list); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrListNameExists
		}
		return nil, err
	}

	return &dto.ListDetail{
		ID:           list.ID,
		Name:         list.Name,
		IsPredefined: list.IsPredefined,
		Items:        []*dto.ListItemDetail{},
	}, nil
}

// ListsForUser 用户的全部列表及条目内容
func (s *ListService) ListsForUser(userID int64) ([]*dto.ListDetail, error) {
	lists, err := s.listRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListDetail, 0, len(lists))
	for _, l := range lists {
		detail := &dto.ListDetail{
			ID:           l.ID,
			Name:         l.Name,
			IsPredefined: l.IsPredefined,
			Items:        make([]*dto.ListItemDetail, 0, len(l.Items)),
		}
		for _, item := range l.Items {
			content, err := s.hydrator.ContentSummary(item.Target())
			if err != nil {
				return nil, err
			}
			detail.Items = append(detail.Items, buildListItemDetail(item, content))
		}
		result = append(result, detail)
	}
	return result, nil
}

// DeleteList 删除自定义列表，条目和对应动态一并删除
func (s *ListService) DeleteList(userID, listID int64) error {
	return s.tx.Transaction(func(tx *gorm.DB) error {
		lists := s.listRepo.WithTx(tx)
		list, err := lists.GetByID(listID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListNotFound
			}
			return err
		}
		if list.UserID != userID {
			return ErrPermissionDenied
		}
		if list.IsPredefined {
			return ErrPredefinedList
		}

		itemIDs, err := lists.ItemIDs(list.ID)
		if err != nil {
			return err
		}
		if err := s.activityRepo.WithTx(tx).DeleteByTargets(model.KindListItem, itemIDs); err != nil {
			return err
		}
		return lists.Delete(list.ID)
	})
}
