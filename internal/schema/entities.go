package schema

import (
	"delicassy/internal/domain"
	"delicassy/internal/store"
)

const idDesc = "Store generated object id"

func idField() Field {
	return optional("id", "objectid", idDesc)
}

// Default returns the registry of every storefront entity
func Default() *Registry {
	return NewRegistry(
		category(),
		productImage(),
		product(),
		review(),
		user(),
		cartItem(),
		cart(),
		address(),
		paymentMethod(),
		shippingOption(),
		order(),
		packagingGuide(),
		notification(),
		testimonial(),
		about(),
	)
}

func category() Shape {
	return Shape{
		Name:        "Category",
		Collection:  store.Categories,
		Description: "Product grouping addressed by slug",
		Fields: []Field{
			idField(),
			required("name", "string", "Display name"),
			required("slug", "string", "URL key"),
			optional("description", "string", ""),
			optional("icon", "string", "Icon name or URL"),
		},
	}
}

func productImage() Shape {
	return Shape{
		Name: "ProductImage",
		Fields: []Field{
			required("url", "string", "", "url"),
			optional("alt", "string", "Alternative text"),
		},
	}
}

func product() Shape {
	return Shape{
		Name:        "Product",
		Collection:  store.Products,
		Description: "Catalog entry",
		Fields: []Field{
			idField(),
			required("title", "string", ""),
			required("slug", "string", "Unique URL key"),
			required("description", "string", ""),
			required("price", "number", "Unit price", ">= 0"),
			required("category", "string", "Category slug"),
			required("stock", "integer", "Units on hand", ">= 0"),
			required("fragility_rating", "integer", "1 = sturdy, 5 = extremely fragile", ">= 1", "<= 5"),
			optional("handling_instructions", "string", ""),
			withDefault(optional("assurance_badge", "boolean", ""), true),
			withDefault(optional("images", "array<ProductImage>", ""), []any{}),
			optional("seo_keywords", "array<string>", ""),
		},
	}
}

func review() Shape {
	return Shape{
		Name:        "Review",
		Collection:  store.Reviews,
		Description: "Customer review of a product",
		Fields: []Field{
			idField(),
			required("product_id", "objectid", "Reviewed product"),
			required("user_name", "string", ""),
			required("rating", "integer", "", ">= 1", "<= 5"),
			optional("comment", "string", ""),
		},
	}
}

func user() Shape {
	return Shape{
		Name:        "User",
		Collection:  store.Users,
		Description: "Storefront account",
		Fields: []Field{
			idField(),
			required("name", "string", ""),
			required("email", "string", "", "email"),
			optional("password_hash", "string", "bcrypt hash, never returned"),
			withDefault(optional("language", "string", ""), "en"),
			withDefault(optional("dark_mode", "boolean", ""), false),
			withDefault(optional("role", "string", "", "customer | admin"), domain.RoleCustomer),
		},
	}
}

func cartItem() Shape {
	return Shape{
		Name: "CartItem",
		Fields: []Field{
			required("product_id", "string", "Product id"),
			required("quantity", "integer", "", ">= 1"),
		},
	}
}

func cart() Shape {
	return Shape{
		Name:        "Cart",
		Collection:  store.Carts,
		Description: "Mutable list of cart items",
		Fields: []Field{
			idField(),
			optional("user_id", "string", "Owning user"),
			optional("session_id", "string", "Anonymous session"),
			withDefault(optional("items", "array<CartItem>", ""), []any{}),
		},
	}
}

func address() Shape {
	return Shape{
		Name: "Address",
		Fields: []Field{
			required("full_name", "string", ""),
			required("line1", "string", ""),
			optional("line2", "string", ""),
			required("city", "string", ""),
			optional("state", "string", ""),
			required("postal_code", "string", ""),
			required("country", "string", ""),
			optional("phone", "string", ""),
		},
	}
}

func paymentMethod() Shape {
	return Shape{
		Name: "PaymentMethod",
		Fields: []Field{
			required("method", "string", "", "card | paypal | apple_pay | google_pay | bnpl"),
			optional("token", "string", "Opaque processor token"),
			optional("last4", "string", ""),
		},
	}
}

func shippingOption() Shape {
	return Shape{
		Name: "ShippingOption",
		Fields: []Field{
			withDefault(optional("insured", "boolean", ""), true),
			withDefault(optional("premium_packaging", "boolean", ""), false),
		},
	}
}

func order() Shape {
	statuses := make([]any, 0, len(domain.OrderStatuses))
	for _, s := range domain.OrderStatuses {
		statuses = append(statuses, string(s))
	}

	return Shape{
		Name:        "Order",
		Collection:  store.Orders,
		Description: "Immutable priced snapshot of a cart",
		Fields: []Field{
			idField(),
			optional("user_id", "string", ""),
			optional("cart_id", "objectid", "Cart the order was built from"),
			required("items", "array<CartItem>", ""),
			required("amount_subtotal", "number", "", ">= 0"),
			required("amount_shipping", "number", "", ">= 0"),
			required("amount_insurance", "number", "", ">= 0"),
			required("amount_total", "number", "", ">= 0"),
			required("shipping_address", "Address", ""),
			required("payment", "PaymentMethod", ""),
			required("shipping", "ShippingOption", ""),
			withDefault(optional("status", "string", "", "created | paid | packaging | shipped | delivered"), string(domain.OrderStatusCreated)),
			optional("estimated_delivery", "string", "Expected delivery window"),
		},
	}
}

func packagingGuide() Shape {
	return Shape{
		Name:        "PackagingGuide",
		Collection:  store.PackagingGuides,
		Description: "Packaging and handling article",
		Fields: []Field{
			idField(),
			required("title", "string", ""),
			required("content_md", "string", "Markdown body"),
			optional("media", "array<string>", "Media URLs"),
		},
	}
}

func notification() Shape {
	return Shape{
		Name:        "Notification",
		Collection:  store.Notifications,
		Description: "Message addressed to a user",
		Fields: []Field{
			idField(),
			required("user_id", "string", "Recipient"),
			required("kind", "string", "", "order_update | packaging | announcement | restock"),
			required("title", "string", ""),
			required("body", "string", ""),
			withDefault(optional("read", "boolean", ""), false),
		},
	}
}

func testimonial() Shape {
	return Shape{
		Name: "Testimonial",
		Fields: []Field{
			required("author", "string", ""),
			required("quote", "string", ""),
		},
	}
}

func about() Shape {
	badges := make([]any, 0, len(domain.DefaultBadges))
	for _, b := range domain.DefaultBadges {
		badges = append(badges, b)
	}

	return Shape{
		Name:        "About",
		Collection:  store.Abouts,
		Description: "Brand story shown on the about page",
		Fields: []Field{
			idField(),
			required("headline", "string", ""),
			required("story", "string", ""),
			withDefault(optional("years", "integer", ""), 25),
			withDefault(optional("badges", "array<string>", ""), badges),
			optional("testimonials", "array<Testimonial>", ""),
		},
	}
}
