package domain

import (
	"sort"
	"strings"
)

// Category identifies a budget line / transaction category ("partida").
// Categories outside the standard list are allowed as free text; an empty
// category falls back to CategoryOtros.
type Category string

const (
	CategoryVenta        Category = "VENTA"
	CategoryCarpinteria  Category = "CARPINTERIA"
	CategoryMontaje      Category = "MONTAJE"
	CategoryMaterial     Category = "MATERIAL"
	CategoryTransporte   Category = "TRANSPORTE"
	CategoryGastosViaje  Category = "GASTOS VIAJE"
	CategoryMobAlq       Category = "MOB ALQ"
	CategoryElectricidad Category = "ELECTRICIDAD"
	CategorySSFF         Category = "SSFF"
	CategoryMobCompra    Category = "MOB COMPRA"
	CategoryGrafica      Category = "GRAFICA"
	CategoryGastosGG     Category = "GASTOS GG"
	CategoryOtros        Category = "OTROS"
)

// StandardCategories is the fixed reporting row set, in ordinal display order.
// CategoryVenta is the income category; the rest are expense categories.
var StandardCategories = []Category{
	CategoryVenta,
	CategoryCarpinteria,
	CategoryMontaje,
	CategoryMaterial,
	CategoryTransporte,
	CategoryGastosViaje,
	CategoryMobAlq,
	CategoryElectricidad,
	CategorySSFF,
	CategoryMobCompra,
	CategoryGrafica,
	CategoryGastosGG,
	CategoryOtros,
}

// StandardExpenseCategories is the category choice set for expense imputation
// (StandardCategories minus the income category).
var StandardExpenseCategories = StandardCategories[1:]

// NormalizeCategory uppercases and trims a raw category string.
// Empty input falls back to CategoryOtros.
func NormalizeCategory(raw string) Category {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if c == "" {
		return CategoryOtros
	}
	return Category(c)
}

// StandardIndex returns the position of c in StandardCategories, or -1.
func StandardIndex(c Category) int {
	for i, sc := range StandardCategories {
		if sc == c {
			return i
		}
	}
	return -1
}

// IsStandard reports whether c belongs to the fixed category list.
func IsStandard(c Category) bool {
	return StandardIndex(c) >= 0
}

// CategoryUniverse returns the union of StandardCategories and any extra
// categories present in the given set. Standard categories keep their ordinal
// order and come first; extras are appended sorted alphabetically.
func CategoryUniverse(extras map[Category]struct{}) []Category {
	universe := make([]Category, len(StandardCategories))
	copy(universe, StandardCategories)

	var adHoc []Category
	for c := range extras {
		if !IsStandard(c) {
			adHoc = append(adHoc, c)
		}
	}
	sort.Slice(adHoc, func(i, j int) bool { return adHoc[i] < adHoc[j] })

	return append(universe, adHoc...)
}
