package models

// ConsignmentRecord is a consignment (bilty) as owned by the upstream
// booking system.
type ConsignmentRecord struct {
	ID            string            `json:"id,omitempty" bson:"_id,omitempty" db:"id"`
	BiltyNo       string            `json:"biltyNo" bson:"bilty_no" db:"bilty_no" validate:"required"`
	OrderNo       string            `json:"orderNo" bson:"order_no" db:"order_no"`
	Date          string            `json:"date" bson:"date" db:"date"`
	Consignee     string            `json:"consignee" bson:"consignee" db:"consignee"`
	Consignor     string            `json:"consignor" bson:"consignor" db:"consignor"`
	CreditAllowed Amount            `json:"creditAllowed" bson:"credit_allowed" db:"credit_allowed" validate:"gte=0"`
	Items         []ConsignmentItem `json:"items" bson:"items" db:"-" validate:"dive"`
}

// ConsignmentItem is one goods line of a consignment.
type ConsignmentItem struct {
	Qty  Amount `json:"qty" bson:"qty" db:"qty" validate:"gte=0"`
	Rate Amount `json:"rate" bson:"rate" db:"rate" validate:"gte=0"`
}
