package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido que se consideran terminados
const (
	OrderStatusCompleted = "Completado"
	OrderStatusDelivered = "Entregado"
	OrderStatusCancelled = "Cancelado"
)

// ProductRef referencia al producto de un pedido. En la hoja el campo
// llega como nombre suelto o como producto completo; se modela como
// variante explícita en vez de adivinar el tipo al renderizar.
type ProductRef struct {
	name    string
	product *Product
}

// NameRef referencia por nombre suelto
func NameRef(name string) ProductRef {
	return ProductRef{name: name}
}

// FullRef referencia con el producto completo
func FullRef(p *Product) ProductRef {
	return ProductRef{product: p}
}

// DisplayName resolver el nombre a mostrar: nombre suelto, luego el
// nombre del producto completo, luego el literal "Producto".
func (r ProductRef) DisplayName() string {
	if r.name != "" {
		return r.name
	}
	if r.product != nil && r.product.Name != "" {
		return r.product.Name
	}
	return "Producto"
}

// ActiveOrder pedido confirmado que sigue en curso. Este núcleo solo lo
// lee y lo renderiza; se crea y muta en el subsistema de pedidos.
type ActiveOrder struct {
	ID         string
	Product    ProductRef
	QuantityKg decimal.Decimal
	Total      decimal.Decimal
	Status     string
	Timestamp  string // ISO o vacío
	Fecha      string // respaldo dd/mm/yyyy [hh:mm]
}

// Order pedido completo tal como se escribe en la hoja PedidosWhatsApp
type Order struct {
	ID            string
	Client        string
	Business      string
	Phone         string
	ProductName   string
	QuantityKg    decimal.Decimal
	PriceKg       decimal.Decimal
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Address       string
	Contact       string
	Notes         string
	Status        string
	PaymentMethod string
	CreatedAt     time.Time
}

// DraftOrder pedido en curso aún sin confirmar. Cantidad y total son
// opcionales mientras el cliente los define.
type DraftOrder struct {
	Product    *Product
	QuantityKg *decimal.Decimal
	Total      *decimal.Decimal
}

// UserSession estado conversacional de un cliente. El núcleo solo
// inspecciona el borrador de pedido.
type UserSession struct {
	Phone     string
	Step      string
	Draft     *DraftOrder
	UpdatedAt time.Time
}

// HasDraft el menú muestra el borrador solo si ya tiene producto
func (s *UserSession) HasDraft() bool {
	return s != nil && s.Draft != nil && s.Draft.Product != nil
}

// ClientData datos de entrega de un cliente conocido
type ClientData struct {
	Phone    string
	Business string
	Contact  string
	Address  string
}
