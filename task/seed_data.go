package task

import (
	"errors"
	"fmt"

	"gitee.com/taoJie_1/cellphone-agent/dao"
	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/model/db"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
)

var demoProducts = []db.Products{
	{Sku: "IP15-128", Name: "iPhone 15 128GB", Brand: "Apple", Slug: "iphone-15", Image: "products/iphone-15.png", Price: 22990000, OriginalPrice: 24990000, DiscountPercent: 8, RamGb: 6, StorageGb: 128,
		Variants: `[{"color":"Đen","capacity":"128GB","price":22990000},{"color":"Hồng","capacity":"256GB","price":25990000}]`},
	{Sku: "SS-S24", Name: "Samsung Galaxy S24", Brand: "Samsung", Slug: "galaxy-s24", Image: "products/galaxy-s24.png", Price: 19990000, OriginalPrice: 22990000, RamGb: 8, StorageGb: 256,
		Variants: `[{"color":"Tím","capacity":"256GB","price":19990000}]`},
	{Sku: "SS-A15", Name: "Samsung Galaxy A15", Brand: "Samsung", Slug: "galaxy-a15", Image: "products/galaxy-a15.png", Price: 4990000, RamGb: 8, StorageGb: 128},
	{Sku: "XM-RN13", Name: "Xiaomi Redmi Note 13", Brand: "Xiaomi", Slug: "redmi-note-13", Image: "products/redmi-note-13.png", Price: 4590000, OriginalPrice: 4890000, RamGb: 6, StorageGb: 128},
	{Sku: "OP-R11", Name: "OPPO Reno11 F", Brand: "OPPO", Slug: "oppo-reno11-f", Image: "products/oppo-reno11-f.png", Price: 8490000, DiscountPercent: 5, RamGb: 8, StorageGb: 256},
}

var demoOrders = []db.Orders{
	{OrderCode: "DH100001", Phone: "0901234567", Status: "Đang giao hàng", TotalAmount: 22990000, PaymentMethod: "COD",
		Items: `[{"name":"iPhone 15 128GB","quantity":1,"price":22990000}]`},
	{OrderCode: "DH100002", Phone: "0912345678", Status: "Đã giao", TotalAmount: 9580000, PaymentMethod: "VNPAY",
		Items: `[{"name":"Samsung Galaxy A15","quantity":1,"price":4990000},{"name":"Xiaomi Redmi Note 13","quantity":1,"price":4590000}]`},
}

// SeedDemoData 写入演示商品与订单, 已写入过则跳过
func (m *Manager) SeedDemoData() error {
	if dao.DB == nil {
		return errors.New("未配置数据库, 无法写入演示数据[s0dq4m]")
	}

	if err := dao.CreateTables(enum.DbType(global.Config().Database.Type)); err != nil {
		return err
	}

	exist, err := dao.App.OrderDb.GetByCode(demoOrders[0].OrderCode, "")
	if err != nil {
		return err
	}
	if exist != nil {
		global.Log.Info("演示数据已存在, 跳过")
		return nil
	}

	tx, err := dao.DB.Beginx()
	if err != nil {
		return fmt.Errorf("开启事务失败[b5mk1z]: %w", err)
	}
	defer tx.Rollback()

	products, err := dao.App.ProductDb.BatchInsert(demoProducts, tx)
	if err != nil {
		return err
	}
	orders, err := dao.App.OrderDb.BatchInsert(demoOrders, tx)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败[r2wn8c]: %w", err)
	}

	global.Log.Infof("演示数据写入完成: 商品 %d 条, 订单 %d 条", products, orders)
	return nil
}
