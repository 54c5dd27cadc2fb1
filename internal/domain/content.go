package domain

type PackagingGuide struct {
	ID        string   `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string   `json:"title" bson:"title" validate:"required"`
	ContentMD string   `json:"content_md" bson:"content_md" validate:"required"`
	Media     []string `json:"media,omitempty" bson:"media,omitempty"`
}

// NotificationKinds lists the accepted notification kinds
var NotificationKinds = []string{"order_update", "packaging", "announcement", "restock"}

type Notification struct {
	ID     string `json:"id,omitempty" bson:"_id,omitempty"`
	UserID string `json:"user_id" bson:"user_id" validate:"required"`
	Kind   string `json:"kind" bson:"kind" validate:"required,oneof=order_update packaging announcement restock"`
	Title  string `json:"title" bson:"title" validate:"required"`
	Body   string `json:"body" bson:"body" validate:"required"`
	Read   bool   `json:"read" bson:"read"`
}

type Testimonial struct {
	Author string `json:"author" bson:"author"`
	Quote  string `json:"quote" bson:"quote"`
}

type About struct {
	ID           string        `json:"id,omitempty" bson:"_id,omitempty"`
	Headline     string        `json:"headline" bson:"headline"`
	Story        string        `json:"story" bson:"story"`
	Years        int           `json:"years" bson:"years"`
	Badges       []string      `json:"badges" bson:"badges"`
	Testimonials []Testimonial `json:"testimonials,omitempty" bson:"testimonials,omitempty"`
}

// DefaultBadges are shown when an about record carries none
var DefaultBadges = []string{
	"Trusted handling for 25 years",
	"Expert packaging for fragile goods",
	"Curated artisan collections",
}

// DefaultAbout is served when no about record has been stored
func DefaultAbout() About {
	return About{
		Headline: "Delicassy — 25 Years of Elegant Craftsmanship",
		Story:    "For a quarter-century, Delicassy has curated and safely delivered delicate, handcrafted treasures to collectors worldwide.",
		Years:    25,
		Badges:   append([]string(nil), DefaultBadges...),
	}
}
