package domain

// CartItem is one cart line. Price and fragility are looked up at checkout.
type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" bson:"quantity" validate:"gte=1"`
}

// Cart is replaced wholesale on update
type Cart struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	SessionID string     `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Items     []CartItem `json:"items" bson:"items" validate:"dive"`
}
