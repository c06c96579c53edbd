package domain

type PaymentStatusType string

const (
	PaymentStatusPending PaymentStatusType = "PENDING"
	PaymentStatusPaid    PaymentStatusType = "PAID"
	PaymentStatusFailed  PaymentStatusType = "FAILED"
)

// CatalogKind тип сущности каталога. Используется при каскадном удалении.
type CatalogKind string

const (
	CatalogCountry    CatalogKind = "country"
	CatalogLocation   CatalogKind = "location"
	CatalogRestaurant CatalogKind = "restaurant"
	CatalogMenu       CatalogKind = "menu"
	CatalogFood       CatalogKind = "food"
)

type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventPaid    OrderEventType = "order.paid"
	OrderEventFailed  OrderEventType = "order.failed"
)
