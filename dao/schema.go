package dao

import (
	"fmt"

	"gitee.com/taoJie_1/cellphone-agent/model/enum"
)

var schemas = map[enum.DbType][]string{
	enum.SQLITE: {
		"CREATE TABLE IF NOT EXISTS `products` (" +
			"`id` INTEGER PRIMARY KEY AUTOINCREMENT," +
			"`sku` TEXT NOT NULL DEFAULT ''," +
			"`name` TEXT NOT NULL DEFAULT ''," +
			"`brand` TEXT NOT NULL DEFAULT ''," +
			"`slug` TEXT NOT NULL DEFAULT ''," +
			"`image` TEXT NOT NULL DEFAULT ''," +
			"`price` INTEGER NOT NULL DEFAULT 0," +
			"`original_price` INTEGER NOT NULL DEFAULT 0," +
			"`discount_percent` REAL NOT NULL DEFAULT 0," +
			"`ram_gb` INTEGER NOT NULL DEFAULT 0," +
			"`storage_gb` INTEGER NOT NULL DEFAULT 0," +
			"`variants` TEXT NOT NULL DEFAULT '[]'," +
			"`created_at` INTEGER NOT NULL DEFAULT 0," +
			"`updated_at` INTEGER NOT NULL DEFAULT 0)",
		"CREATE TABLE IF NOT EXISTS `orders` (" +
			"`id` INTEGER PRIMARY KEY AUTOINCREMENT," +
			"`order_code` TEXT NOT NULL UNIQUE," +
			"`phone` TEXT NOT NULL DEFAULT ''," +
			"`status` TEXT NOT NULL DEFAULT ''," +
			"`total_amount` INTEGER NOT NULL DEFAULT 0," +
			"`payment_method` TEXT NOT NULL DEFAULT ''," +
			"`items` TEXT NOT NULL DEFAULT '[]'," +
			"`created_at` INTEGER NOT NULL DEFAULT 0," +
			"`updated_at` INTEGER NOT NULL DEFAULT 0)",
	},
	enum.MYSQL: {
		"CREATE TABLE IF NOT EXISTS `products` (" +
			"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"`sku` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`name` VARCHAR(255) NOT NULL DEFAULT ''," +
			"`brand` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`slug` VARCHAR(255) NOT NULL DEFAULT ''," +
			"`image` VARCHAR(512) NOT NULL DEFAULT ''," +
			"`price` BIGINT NOT NULL DEFAULT 0," +
			"`original_price` BIGINT NOT NULL DEFAULT 0," +
			"`discount_percent` DOUBLE NOT NULL DEFAULT 0," +
			"`ram_gb` INT NOT NULL DEFAULT 0," +
			"`storage_gb` INT NOT NULL DEFAULT 0," +
			"`variants` TEXT NOT NULL," +
			"`created_at` BIGINT NOT NULL DEFAULT 0," +
			"`updated_at` BIGINT NOT NULL DEFAULT 0," +
			"KEY `idx_brand` (`brand`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `orders` (" +
			"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"`order_code` VARCHAR(64) NOT NULL," +
			"`phone` VARCHAR(32) NOT NULL DEFAULT ''," +
			"`status` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`total_amount` BIGINT NOT NULL DEFAULT 0," +
			"`payment_method` VARCHAR(64) NOT NULL DEFAULT ''," +
			"`items` TEXT NOT NULL," +
			"`created_at` BIGINT NOT NULL DEFAULT 0," +
			"`updated_at` BIGINT NOT NULL DEFAULT 0," +
			"UNIQUE KEY `uk_order_code` (`order_code`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

// CreateTables 建表(已存在则跳过)
func CreateTables(dbType enum.DbType) error {
	stmts, ok := schemas[dbType]
	if !ok {
		return fmt.Errorf("数据库类型错误[rjfsos]: %s", dbType)
	}
	for _, stmt := range stmts {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("建表失败[m4ez7k]: %w", err)
		}
	}
	return nil
}
