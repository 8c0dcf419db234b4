package dao

import (
	"fmt"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/model/db"
	"github.com/jmoiron/sqlx"
)

type ProductDb struct{}

// ProductFilter nil/空值条件不参与查询
type ProductFilter struct {
	Keyword   string
	Brand     string
	PriceMin  *float64
	PriceMax  *float64
	RamGb     *float64
	StorageGb *float64
	Limit     int
}

var productColumns = []string{"sku", "name", "brand", "slug", "image", "price", "original_price", "discount_percent", "ram_gb", "storage_gb", "variants"}

// Search 按条件查询商品, 价格条件作用于基础价
func (d *ProductDb) Search(list *[]db.Products, f ProductFilter, tx ...*sqlx.Tx) error {
	w := new(where)
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		w.add("(LOWER(`name`) LIKE ? OR LOWER(`sku`) LIKE ?)", like, like)
	}
	if brand := strings.TrimSpace(f.Brand); brand != "" {
		w.add("LOWER(`brand`) = ?", strings.ToLower(brand))
	}
	if f.PriceMin != nil {
		w.add("`price` >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		w.add("`price` <= ?", *f.PriceMax)
	}
	// 规格未录入(0)的商品保留
	if f.RamGb != nil {
		w.add("(`ram_gb` = 0 OR `ram_gb` >= ?)", *f.RamGb)
	}
	if f.StorageGb != nil {
		w.add("(`storage_gb` = 0 OR `storage_gb` >= ?)", *f.StorageGb)
	}

	sql := fmt.Sprintf("SELECT * FROM `%s`%s ORDER BY `price` ASC, `id` ASC", db.Products{}.TableName(), w.String())
	args := w.args
	if f.Limit > 0 {
		sql += " LIMIT ?"
		args = append(args, f.Limit)
	}

	if len(tx) > 0 && tx[0] != nil {
		return tx[0].Select(list, tx[0].Rebind(sql), args...)
	}
	return DB.Select(list, DB.Rebind(sql), args...)
}

// BatchInsert 插入商品
func (d *ProductDb) BatchInsert(data []db.Products, tx *sqlx.Tx) (int64, error) {
	if tx == nil {
		return 0, fmt.Errorf("请使用事务[ioddfsaa]")
	}

	rows := make([][]interface{}, 0, len(data))
	for _, p := range data {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if p.Variants == "" {
			p.Variants = "[]"
		}
		rows = append(rows, []interface{}{p.Sku, p.Name, p.Brand, p.Slug, p.Image, p.Price, p.OriginalPrice, p.DiscountPercent, p.RamGb, p.StorageGb, p.Variants})
	}

	sql, args, err := utils.getBatchInsertSql(db.Products{}, productColumns, rows)
	if err != nil {
		return 0, fmt.Errorf("构建批量插入SQL失败: %w", err)
	}
	if sql == "" {
		return 0, nil
	}

	result, err := tx.Exec(tx.Rebind(sql), args...)
	if err != nil {
		return 0, fmt.Errorf("批量插入商品失败: %w", err)
	}
	return result.RowsAffected()
}
