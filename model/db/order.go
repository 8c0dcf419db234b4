package db

type Orders struct {
	BaseField
	OrderCode     string `db:"order_code" json:"order_code" info:"订单号"`
	Phone         string `db:"phone" json:"phone" info:"下单手机号"`
	Status        string `db:"status" json:"status" info:"订单状态"`
	TotalAmount   int64  `db:"total_amount" json:"total_amount" info:"订单金额(VND)"`
	PaymentMethod string `db:"payment_method" json:"payment_method" info:"支付方式"`
	Items         string `db:"items" json:"items" info:"商品明细JSON"`
}

func (Orders) TableName() string {
	return `orders`
}
