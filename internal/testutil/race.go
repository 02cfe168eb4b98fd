package testutil

import (
	"testing"

	"gorm.io/gorm"
)

// AfterFirstQuery 在第一次查询 table 之后执行 fn，用来模拟另一个请求在
// "检查不存在" 与 "插入" 之间抢先写入。fn 拿到的会话与被拦截的语句共用同一连接（含事务）
func AfterFirstQuery(t *testing.T, db *gorm.DB, table string, fn func(tx *gorm.DB)) {
	t.Helper()

	err := db.Callback().Query().After("gorm:query").
		Register("testutil:after_first_query_"+table, onceForTable(table, fn))
	if err != nil {
		t.Fatalf("Failed to register query callback: %v", err)
	}
}

// AfterFirstDelete 在第一次删除 table 的行之后执行 fn
func AfterFirstDelete(t *testing.T, db *gorm.DB, table string, fn func(tx *gorm.DB)) {
	t.Helper()

	err := db.Callback().Delete().After("gorm:delete").
		Register("testutil:after_first_delete_"+table, onceForTable(table, fn))
	if err != nil {
		t.Fatalf("Failed to register delete callback: %v", err)
	}
}

func onceForTable(table string, fn func(tx *gorm.DB)) func(*gorm.DB) {
	fired := false
	return func(db *gorm.DB) {
		if fired || db.Statement.Table != table {
			return
		}
		fired = true
		fn(db.Session(&gorm.Session{NewDB: true}))
	}
}
