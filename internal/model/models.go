// Package model holds the stored document shapes and request bodies.
//
// Field constraints are declared with gin binding tags and checked by the
// go-playground validator, both when requests are bound and when seed rows
// are inserted.
package model

type Product struct {
	Title       string   `bson:"title" json:"title" binding:"required"`
	Description string   `bson:"description" json:"description" binding:"required"`
	Price       float64  `bson:"price" json:"price" binding:"gte=0"`
	Category    string   `bson:"category" json:"category" binding:"required"`
	Stock       int      `bson:"stock" json:"stock" binding:"gte=0"`
	Rating      float64  `bson:"rating" json:"rating" binding:"gte=0,lte=5"`
	Images      []string `bson:"images" json:"images"`
	Thumbnail   *string  `bson:"thumbnail" json:"thumbnail"`
	Featured    bool     `bson:"featured" json:"featured"`
}

type BlogPost struct {
	Title     string   `bson:"title" json:"title" binding:"required"`
	Excerpt   string   `bson:"excerpt" json:"excerpt" binding:"required"`
	Content   string   `bson:"content" json:"content" binding:"required"`
	Thumbnail *string  `bson:"thumbnail" json:"thumbnail"`
	Author    string   `bson:"author" json:"author"`
	Tags      []string `bson:"tags" json:"tags"`
}

const (
	DefaultAuthor         = "Admin"
	DefaultShippingMethod = "standard"
	DefaultPaymentMethod  = "cod"
	DefaultPaymentStatus  = "pending"
	DefaultOrderStatus    = "created"
)

type OrderItem struct {
	ProductID string   `bson:"product_id" json:"product_id" binding:"required"`
	Title     string   `bson:"title" json:"title" binding:"required"`
	Price     *float64 `bson:"price" json:"price" binding:"required"`
	Quantity  *int     `bson:"quantity" json:"quantity" binding:"required"`
	Thumbnail *string  `bson:"thumbnail" json:"thumbnail"`
}

type ShippingInfo struct {
	FullName       string `bson:"full_name" json:"full_name" binding:"required"`
	Email          string `bson:"email" json:"email" binding:"required,email"`
	Phone          string `bson:"phone" json:"phone" binding:"required"`
	Address        string `bson:"address" json:"address" binding:"required"`
	City           string `bson:"city" json:"city" binding:"required"`
	PostalCode     string `bson:"postal_code" json:"postal_code" binding:"required"`
	Country        string `bson:"country" json:"country" binding:"required"`
	ShippingMethod string `bson:"shipping_method" json:"shipping_method"`
}

type PaymentInfo struct {
	Method string `bson:"method" json:"method"`
	Status string `bson:"status" json:"status"`
}

// Order totals are stored exactly as the caller sent them.
type Order struct {
	Items        []OrderItem   `bson:"items" json:"items" binding:"required,dive"`
	Subtotal     *float64      `bson:"subtotal" json:"subtotal" binding:"required"`
	ShippingCost *float64      `bson:"shipping_cost" json:"shipping_cost" binding:"required"`
	Total        *float64      `bson:"total" json:"total" binding:"required"`
	Shipping     *ShippingInfo `bson:"shipping" json:"shipping" binding:"required"`
	Payment      *PaymentInfo  `bson:"payment" json:"payment"`
	Status       string        `bson:"status" json:"status"`
}

// ApplyDefaults fills the optional parts of an order the caller left out.
func (o *Order) ApplyDefaults() {
	if o.Payment == nil {
		o.Payment = &PaymentInfo{}
	}
	if o.Payment.Method == "" {
		o.Payment.Method = DefaultPaymentMethod
	}
	if o.Payment.Status == "" {
		o.Payment.Status = DefaultPaymentStatus
	}
	if o.Shipping != nil && o.Shipping.ShippingMethod == "" {
		o.Shipping.ShippingMethod = DefaultShippingMethod
	}
	if o.Status == "" {
		o.Status = DefaultOrderStatus
	}
}

type OrderResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url,omitempty"`
}

type User struct {
	Name     string  `bson:"name" json:"name"`
	Email    string  `bson:"email" json:"email"`
	Password string  `bson:"password" json:"-"`
	Avatar   *string `bson:"avatar" json:"avatar"`
	IsActive bool    `bson:"is_active" json:"is_active"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ContactMessage struct {
	Name    string `bson:"name" json:"name" binding:"required"`
	Email   string `bson:"email" json:"email" binding:"required"`
	Message string `bson:"message" json:"message" binding:"required"`
}

type RegisterResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id,omitempty"`
}

type LoginResponse struct {
	Status string                 `json:"status"`
	Token  string                 `json:"token"`
	User   map[string]interface{} `json:"user,omitempty"`
}

type ContactResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}
