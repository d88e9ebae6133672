package model

import "time"

type OrderStatus string
type DeliveryMethod string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"

	DeliveryMethodDelivery DeliveryMethod = "DELIVERY"
	DeliveryMethodPickup   DeliveryMethod = "PICKUP"
)

// Order is a customer order. CustomerPhone is stored in normalized
// local-digits form. Total is fixed at creation time and never
// recomputed afterwards.
type Order struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	OrderNumber    string         `json:"order_number" gorm:"type:varchar(64);unique;not null"`
	CustomerName   string         `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone  string         `json:"customer_phone" gorm:"type:varchar(32);index;not null"`
	CustomerEmail  string         `json:"customer_email" gorm:"type:varchar(255)"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" gorm:"type:varchar(16);not null"`
	Address        string         `json:"address" gorm:"type:text"`
	City           string         `json:"city" gorm:"type:varchar(128)"`
	Notes          string         `json:"notes" gorm:"type:text"`
	Status         OrderStatus    `json:"status" gorm:"type:varchar(16);default:'PENDING'"`
	Total          float64        `json:"total" gorm:"not null"`
	Items          []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// OrderItem snapshots name and price at checkout so historical orders
// stay stable when the catalog changes. ProductID is a soft reference;
// the product may be deleted later.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	NameFr    string  `json:"name_fr" gorm:"type:varchar(255);not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
}

// orderTransitions is the allowed-transitions table for the order
// workflow: a forward chain, with CANCELLED reachable from every
// non-terminal state. DELIVERED and CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s names a known status
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an admin may move an order from one
// status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
