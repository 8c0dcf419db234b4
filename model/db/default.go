package db

import (
	"reflect"
	"sync"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/utils"
)

// 所有数据库结构体 都需实现的接口
type Dbfunc interface {
	TableName() string
}

// auto:"time" 标记的列在插入时由 dao 填充为当前时间戳
type BaseField struct {
	Id        uint  `db:"id" json:"id"`
	CreatedAt int64 `db:"created_at" json:"created_at" auto:"time"`
	UpdatedAt int64 `db:"updated_at" json:"-" auto:"time"`
}

// CreatedAtFormat 按时区格式化下单时间
func (b *BaseField) CreatedAtFormat(loc *time.Location) string {
	if b.CreatedAt == 0 {
		return ""
	}
	return utils.TimeFormat(b.CreatedAt, loc)
}

var (
	autoTimeOnce    sync.Once
	autoTimeColumns []string
)

// AutoTimeColumns 返回 BaseField 中需要自动填充的列名
func AutoTimeColumns() []string {
	autoTimeOnce.Do(func() {
		t := reflect.TypeOf(BaseField{})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Tag.Get("auto") == "time" {
				autoTimeColumns = append(autoTimeColumns, f.Tag.Get("db"))
			}
		}
	})
	return autoTimeColumns
}
