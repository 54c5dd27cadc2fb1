package domain

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPackaging OrderStatus = "packaging"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every valid status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusCreated,
	OrderStatusPaid,
	OrderStatusPackaging,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// PaymentMethods lists the accepted payment method kinds
var PaymentMethods = []string{"card", "paypal", "apple_pay", "google_pay", "bnpl"}

type Address struct {
	FullName   string `json:"full_name" bson:"full_name" validate:"required"`
	Line1      string `json:"line1" bson:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city" validate:"required"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code" bson:"postal_code" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type PaymentMethod struct {
	Method string `json:"method" bson:"method" validate:"required,oneof=card paypal apple_pay google_pay bnpl"`
	Token  string `json:"token,omitempty" bson:"token,omitempty"`
	Last4  string `json:"last4,omitempty" bson:"last4,omitempty"`
}

type ShippingOption struct {
	Insured          bool `json:"insured" bson:"insured"`
	PremiumPackaging bool `json:"premium_packaging" bson:"premium_packaging"`
}

// Order is an immutable priced snapshot of a cart
type Order struct {
	ID                string         `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CartID            string         `json:"cart_id,omitempty" bson:"cart_id,omitempty"`
	Items             []CartItem     `json:"items" bson:"items"`
	AmountSubtotal    float64        `json:"amount_subtotal" bson:"amount_subtotal"`
	AmountShipping    float64        `json:"amount_shipping" bson:"amount_shipping"`
	AmountInsurance   float64        `json:"amount_insurance" bson:"amount_insurance"`
	AmountTotal       float64        `json:"amount_total" bson:"amount_total"`
	ShippingAddress   Address        `json:"shipping_address" bson:"shipping_address"`
	Payment           PaymentMethod  `json:"payment" bson:"payment"`
	Shipping          ShippingOption `json:"shipping" bson:"shipping"`
	Status            OrderStatus    `json:"status" bson:"status"`
	EstimatedDelivery string         `json:"estimated_delivery,omitempty" bson:"estimated_delivery,omitempty"`
}
