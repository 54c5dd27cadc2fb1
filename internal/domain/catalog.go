package domain

// Category groups products under a URL-friendly slug
type Category struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name" validate:"required"`
	Slug        string `json:"slug" bson:"slug" validate:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string `json:"icon,omitempty" bson:"icon,omitempty"`
}

// ProductImage is a picture attached to a product
type ProductImage struct {
	URL string `json:"url" bson:"url" validate:"required,url"`
	Alt string `json:"alt,omitempty" bson:"alt,omitempty"`
}

// Product is a catalog entry. Stock is only mutated by checkout.
type Product struct {
	ID                   string         `json:"id,omitempty" bson:"_id,omitempty"`
	Title                string         `json:"title" bson:"title" validate:"required"`
	Slug                 string         `json:"slug" bson:"slug" validate:"required"`
	Description          string         `json:"description" bson:"description" validate:"required"`
	Price                float64        `json:"price" bson:"price" validate:"gte=0"`
	Category             string         `json:"category" bson:"category" validate:"required"`
	Stock                int            `json:"stock" bson:"stock" validate:"gte=0"`
	FragilityRating      int            `json:"fragility_rating" bson:"fragility_rating" validate:"gte=1,lte=5"`
	HandlingInstructions string         `json:"handling_instructions,omitempty" bson:"handling_instructions,omitempty"`
	AssuranceBadge       *bool          `json:"assurance_badge,omitempty" bson:"assurance_badge,omitempty"`
	Images               []ProductImage `json:"images" bson:"images" validate:"dive"`
	SEOKeywords          []string       `json:"seo_keywords,omitempty" bson:"seo_keywords,omitempty"`
}

// ProductDetail is a product with its reviews joined at read time
type ProductDetail struct {
	Product
	Reviews []Review `json:"reviews"`
}

// Review references a product by id. Not enforced by the store.
type Review struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	ProductID string `json:"product_id" bson:"product_id" validate:"required,objectid"`
	UserName  string `json:"user_name" bson:"user_name" validate:"required"`
	Rating    int    `json:"rating" bson:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// ApplyDefaults fills the optional fields that carry a default value
func (p *Product) ApplyDefaults() {
	if p.AssuranceBadge == nil {
		badge := true
		p.AssuranceBadge = &badge
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}
