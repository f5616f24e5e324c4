package types

// QuantitySpecifier is the closed set of unit kinds an ingredient quantity
// can be expressed in.
type QuantitySpecifier string

const (
	Unspecified QuantitySpecifier = "Unspecified"
	Count       QuantitySpecifier = "Count"
	Dash        QuantitySpecifier = "Dash"
	Drop        QuantitySpecifier = "Drop"
	Teaspoon    QuantitySpecifier = "Teaspoon"
	Tablespoon  QuantitySpecifier = "Tablespoon"
	FluidOunce  QuantitySpecifier = "FluidOunce"
	Cup         QuantitySpecifier = "Cup"
	Pint        QuantitySpecifier = "Pint"
	Quart       QuantitySpecifier = "Quart"
	Gallon      QuantitySpecifier = "Gallon"
	Pinch       QuantitySpecifier = "Pinch"
	Milliliter  QuantitySpecifier = "Milliliter"
	Liter       QuantitySpecifier = "Liter"
	Ounce       QuantitySpecifier = "Ounce"
	Pound       QuantitySpecifier = "Pound"
	Milligram   QuantitySpecifier = "Milligram"
	Gram        QuantitySpecifier = "Gram"
	Kilogram    QuantitySpecifier = "Kilogram"
)

var quantitySpecifiers = map[QuantitySpecifier]struct{}{
	Unspecified: {}, Count: {}, Dash: {}, Drop: {}, Teaspoon: {},
	Tablespoon: {}, FluidOunce: {}, Cup: {}, Pint: {}, Quart: {},
	Gallon: {}, Pinch: {}, Milliliter: {}, Liter: {}, Ounce: {},
	Pound: {}, Milligram: {}, Gram: {}, Kilogram: {},
}

func (q QuantitySpecifier) Valid() bool {
	_, ok := quantitySpecifiers[q]
	return ok
}
