// Package portal shapes normalized backend records into the views the portal
// frontend renders.
package portal

import (
	"fmt"
	"strings"

	"customer-portal/internal/normalize"
)

const notAvailable = "N/A"

// OrderItem is one line of a sales order.
type OrderItem struct {
	ItemNumber  string  `json:"itemNumber"`
	Product     string  `json:"product"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Order is a sales document with its items.
type Order struct {
	ID       string      `json:"id"`
	Date     string      `json:"date"`
	Product  string      `json:"product"`
	Quantity string      `json:"quantity"`
	Status   string      `json:"status"`
	Items    []OrderItem `json:"items"`
}

// DeliveryItem is one line of an outbound delivery.
type DeliveryItem struct {
	ItemNumber     string `json:"itemNumber"`
	MaterialNumber string `json:"materialNumber"`
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
	NetValue       string `json:"netValue"`
	Currency       string `json:"currency"`
}

// Delivery is an outbound delivery with its items.
type Delivery struct {
	DeliveryNumber string         `json:"deliveryNumber"`
	DeliveryDate   string         `json:"deliveryDate"`
	SalesOrder     string         `json:"salesOrder"`
	Items          []DeliveryItem `json:"items"`
}

// GroupOrders groups sales order lines by document number, keeping the order
// in which documents first appear.
func GroupOrders(records []normalize.Record) []Order {
	orders := make([]Order, 0)
	index := make(map[string]int)
	for _, r := range records {
		id := text(r, "VBELN")
		i, ok := index[id]
		if !ok {
			i = len(orders)
			index[id] = i
			orders = append(orders, Order{
				ID:       id,
				Date:     text(r, "ERDAT"),
				Quantity: notAvailable,
				Status:   notAvailable,
				Items:    []OrderItem{},
			})
		}
		price := amount(r, "NETWR")
		orders[i].Items = append(orders[i].Items, OrderItem{
			ItemNumber:  normalize.StripZeros(text(r, "MATNR")),
			Product:     text(r, "ARKTX"),
			Description: notAvailable,
			Quantity:    notAvailable,
			UnitPrice:   price,
			Total:       price,
		})
	}
	for i := range orders {
		products := make([]string, 0, len(orders[i].Items))
		for _, item := range orders[i].Items {
			products = append(products, item.Product)
		}
		orders[i].Product = strings.Join(products, ", ")
	}
	return orders
}

// GroupDeliveries groups delivery lines by delivery number, keeping the order
// in which deliveries first appear.
func GroupDeliveries(records []normalize.Record) []Delivery {
	deliveries := make([]Delivery, 0)
	index := make(map[string]int)
	for _, r := range records {
		id := text(r, "VBELN_DELIVERY")
		i, ok := index[id]
		if !ok {
			i = len(deliveries)
			index[id] = i
			deliveries = append(deliveries, Delivery{
				DeliveryNumber: id,
				DeliveryDate:   text(r, "LFDAT"),
				SalesOrder:     text(r, "VBELN_SO"),
				Items:          []DeliveryItem{},
			})
		}
		deliveries[i].Items = append(deliveries[i].Items, DeliveryItem{
			ItemNumber:     id,
			MaterialNumber: text(r, "MATNR"),
			Description:    text(r, "ARKTX"),
			Quantity:       text(r, "LFIMG"),
			Unit:           text(r, "MEINS"),
			NetValue:       text(r, "NETWR"),
			Currency:       text(r, "WAERK"),
		})
	}
	return deliveries
}

// FilterByTerm keeps the items for which any of the values returned by fields
// contains term, ignoring case. An empty term keeps everything.
func FilterByTerm[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, v := range fields(item) {
			if v != "" && strings.Contains(strings.ToLower(v), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// RecordFields returns a FilterByTerm accessor reading keys from a record.
func RecordFields(keys ...string) func(normalize.Record) []string {
	return func(r normalize.Record) []string {
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if v, ok := r[k]; ok && v != nil {
				out = append(out, fmt.Sprint(v))
			}
		}
		return out
	}
}

// OrderFields is the FilterByTerm accessor for grouped orders.
func OrderFields(o Order) []string { return []string{o.ID, o.Product} }

// DeliveryFields is the FilterByTerm accessor for grouped deliveries.
func DeliveryFields(d Delivery) []string { return []string{d.DeliveryNumber, d.SalesOrder} }

func text(r normalize.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func amount(r normalize.Record, key string) float64 {
	n, err := normalize.ParseAmount(text(r, key))
	if err != nil {
		return 0
	}
	return n
}
