package model

import (
	"fmt"
	"strings"
)

// DefaultCategoryNames is the process-wide keyword tie-break order.
var DefaultCategoryNames = []string{
	"Housing",
	"Bills",
	"Subscriptions",
	"Food",
	"Travel",
	"Health",
	"Transport",
	"Education",
	"Personal",
	"Shopping",
	"Work",
}

// CategoryOrder is a total order over category names used to rank keyword rules.
// Lower rank wins.
type CategoryOrder struct {
	rank  map[string]int
	names []string
}

// NewCategoryOrder builds an order from names, rejecting blanks and duplicates.
func NewCategoryOrder(names []string) (CategoryOrder, error) {
	if len(names) == 0 {
		return CategoryOrder{}, fmt.Errorf("category order cannot be empty")
	}

	order := CategoryOrder{
		rank:  make(map[string]int, len(names)),
		names: make([]string, 0, len(names)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return CategoryOrder{}, fmt.Errorf("category order contains an empty name")
		}
		if _, dup := order.rank[name]; dup {
			return CategoryOrder{}, fmt.Errorf("category %q appears more than once in category order", name)
		}
		order.rank[name] = len(order.names)
		order.names = append(order.names, name)
	}
	return order, nil
}

// DefaultCategoryOrder returns the built-in order.
func DefaultCategoryOrder() CategoryOrder {
	order, err := NewCategoryOrder(DefaultCategoryNames)
	if err != nil {
		panic(err) // built-in list is static
	}
	return order
}

// Rank returns the position of category in the order.
func (o CategoryOrder) Rank(category string) (int, bool) {
	r, ok := o.rank[category]
	return r, ok
}

// Contains reports whether category is ranked.
func (o CategoryOrder) Contains(category string) bool {
	_, ok := o.rank[category]
	return ok
}

// Names returns a copy of the ordered category names.
func (o CategoryOrder) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Len returns the number of ranked categories.
func (o CategoryOrder) Len() int {
	return len(o.names)
}
