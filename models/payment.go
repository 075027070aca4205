package models

// PaymentRecord is a payment (ABL) received against an order.
type PaymentRecord struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty" db:"id"`
	OrderNo  string `json:"orderNo" bson:"order_no" db:"order_no" validate:"required"`
	Advanced Amount `json:"advanced" bson:"advanced" db:"advanced"`
	PDC      Amount `json:"pdc" bson:"pdc" db:"pdc"`
}
