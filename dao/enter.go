package dao

import "github.com/jmoiron/sqlx"

var DB *sqlx.DB

type DaoGroup struct {
	OrderDb
	ProductDb
}

var App = new(DaoGroup)

var utils = new(dbUtils)
