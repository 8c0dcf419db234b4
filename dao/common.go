package dao

import (
	"fmt"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/model/db"
)

type dbUtils struct{}

// getBatchInsertSql 按 columns 顺序生成批量插入语句, 自动补充 created_at/updated_at
func (u *dbUtils) getBatchInsertSql(d db.Dbfunc, columns []string, rows [][]interface{}) (string, []interface{}, error) {
	if len(rows) == 0 || len(columns) == 0 {
		return "", nil, nil
	}

	now := time.Now().Unix()
	stamps := db.AutoTimeColumns()
	cols := append(append([]string{}, columns...), stamps...)

	placeholder := "(?" + strings.Repeat(", ?", len(cols)-1) + ")"
	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*len(cols))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("批量插入失败[c8nb2r]: 第%d行字段数量为%d, 应为%d", i, len(row), len(columns))
		}
		args = append(args, row...)
		for range stamps {
			args = append(args, now)
		}
		values = append(values, placeholder)
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO `")
	sql.WriteString(d.TableName())
	sql.WriteString("` (`")
	sql.WriteString(strings.Join(cols, "`, `"))
	sql.WriteString("`) VALUES ")
	sql.WriteString(strings.Join(values, ", "))

	return sql.String(), args, nil
}

// where 拼接 AND 条件
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
