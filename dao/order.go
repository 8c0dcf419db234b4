package dao

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/model/db"
	"github.com/jmoiron/sqlx"
)

type OrderDb struct{}

var orderColumns = []string{"order_code", "phone", "status", "total_amount", "payment_method", "items"}

// GetByCode 查询订单; phone 非空时需同时匹配. 不存在时返回 (nil, nil)
func (d *OrderDb) GetByCode(code, phone string, tx ...*sqlx.Tx) (*db.Orders, error) {
	w := new(where)
	w.add("`order_code` = ?", strings.TrimSpace(code))
	if phone = strings.TrimSpace(phone); phone != "" {
		w.add("`phone` = ?", phone)
	}
	query := fmt.Sprintf("SELECT * FROM `%s`%s LIMIT 1", db.Orders{}.TableName(), w.String())

	var order db.Orders
	var err error
	if len(tx) > 0 && tx[0] != nil {
		err = tx[0].Get(&order, tx[0].Rebind(query), w.args...)
	} else {
		err = DB.Get(&order, DB.Rebind(query), w.args...)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询订单失败[h1oy5x]: %w", err)
	}
	return &order, nil
}

// BatchInsert 插入订单
func (d *OrderDb) BatchInsert(data []db.Orders, tx *sqlx.Tx) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("请使用事务[ioddfsaa]")
	}

	rows := make([][]interface{}, 0, len(data))
	for _, o := range data {
		if strings.TrimSpace(o.OrderCode) == "" {
			continue
		}
		if o.Items == "" {
			o.Items = "[]"
		}
		rows = append(rows, []interface{}{o.OrderCode, o.Phone, o.Status, o.TotalAmount, o.PaymentMethod, o.Items})
	}

	query, args, err := utils.getBatchInsertSql(db.Orders{}, orderColumns, rows)
	if err != nil {
		return 0, fmt.Errorf("构建批量插入SQL失败: %w", err)
	}
	if query == "" {
		return 0, nil
	}

	result, err := tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("批量插入订单失败: %w", err)
	}
	return result.RowsAffected()
}
