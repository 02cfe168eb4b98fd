package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/shelf_server/internal/model"
)

// Transactor 为一次写操作划定事务范围
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Transaction 在事务中执行 fn，fn 返回错误时回滚
func (t *Transactor) Transaction(fn func(tx *gorm.DB) error) error {
	return t.db.Transaction(fn)
}

// IsDuplicateKey 判断是否为唯一约束冲突（需要 gorm.Config.TranslateError）
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// insertOnce 在保存点内插入，唯一约束冲突只回滚这一条语句
func insertOnce(db *gorm.DB, value interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
}

// lockingRead 以 FOR UPDATE 读取，看到其他事务已提交的最新行。
// 唯一约束冲突后的回读必须用它：REPEATABLE READ 下普通读仍使用事务开始时的快照
func lockingRead(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func targetScope(ref model.TargetRef) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("target_kind = ? AND target_id = ?", ref.Kind, ref.ID)
	}
}

func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 20
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
