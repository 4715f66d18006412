package units

// Category names of the built-in table.
const (
	Length      = "Length"
	Mass        = "Mass"
	Volume      = "Volume"
	Speed       = "Speed"
	Temperature = "Temperature"
	Area        = "Area"
	Power       = "Power"
)

func linear(name string, factor float64, aliases ...string) Unit {
	return Unit{Name: name, Aliases: aliases, Rule: Linear{Factor: factor}}
}

// kmhPerMS is a variable so 1/kmhPerMS rounds like a runtime division.
var kmhPerMS = 3.6

// Temperatures use Celsius as the base unit.
var (
	celsius = Affine{
		To:   func(v float64) float64 { return v },
		From: func(v float64) float64 { return v },
	}
	fahrenheit = Affine{
		To:   func(v float64) float64 { return (v - 32) * 5.0 / 9.0 },
		From: func(v float64) float64 { return v*9.0/5.0 + 32 },
	}
	kelvin = Affine{
		To:   func(v float64) float64 { return v - 273.15 },
		From: func(v float64) float64 { return v + 273.15 },
	}
)

// Default is the built-in conversion table.
var Default = MustNewTable(
	Category{Name: Length, Base: "meter", Units: []Unit{
		linear("km", 1000.0),
		linear("m", 1.0),
		linear("cm", 0.01),
		linear("mm", 0.001),
		linear("inch", 0.0254, "in"),
		linear("foot", 0.3048, "ft"),
		linear("yard", 0.9144, "yd"),
		linear("mile", 1609.344, "mi"),
	}},
	Category{Name: Mass, Base: "kilogram", Units: []Unit{
		linear("t", 1000.0),
		linear("q", 100.0),
		linear("kg", 1.0),
		linear("g", 0.001),
		linear("mg", 0.000001),
		linear("ct", 0.0002),
		linear("lb", 0.45359237),
		linear("oz", 0.028349523125),
	}},
	Category{Name: Volume, Base: "liter", Units: []Unit{
		linear("mL", 0.001, "ml"),
		linear("L", 1.0, "l"),
		linear("cup", 0.24),
		linear("pint", 0.473176),
		linear("quart", 0.946353),
		linear("gallon", 3.78541),
		linear("m³", 1000.0, "m3"),
	}},
	Category{Name: Speed, Base: "meter/second", Units: []Unit{
		linear("m/s", 1.0),
		linear("km/h", 1/kmhPerMS, "kph"),
		linear("mph", 0.44704),
	}},
	Category{Name: Temperature, Base: "Celsius", Units: []Unit{
		{Name: "C", Aliases: []string{"°C"}, Rule: celsius},
		{Name: "F", Aliases: []string{"°F"}, Rule: fahrenheit},
		{Name: "K", Rule: kelvin},
	}},
	Category{Name: Area, Base: "square meter", Units: []Unit{
		linear("m²", 1.0, "m2"),
		linear("cm²", 0.0001, "cm2"),
		linear("km²", 1e6, "km2"),
		linear("ft²", 0.092903, "ft2"),
		linear("acre", 4046.8564224),
		linear("hectare", 10000.0, "ha"),
	}},
	Category{Name: Power, Base: "watt", Units: []Unit{
		linear("W", 1.0),
		linear("kW", 1000.0),
		linear("hp", 745.699872),
	}},
)

// Convert converts value between two units of category in the Default table.
func Convert(category string, value float64, from, to string) (float64, error) {
	return Default.Convert(category, value, from, to)
}

// ConvertString parses value and converts it with the Default table.
func ConvertString(category, value, from, to string) (float64, error) {
	return Default.ConvertString(category, value, from, to)
}

// Categories returns the categories of the Default table in display order.
func Categories() []string { return Default.Categories() }

// Units returns the units of category in the Default table.
func Units(category string) ([]string, error) { return Default.Units(category) }

// DefaultPair returns the default from/to units of category.
func DefaultPair(category string) (from, to string, err error) {
	return Default.DefaultPair(category)
}

// Base returns the base unit name of category.
func Base(category string) (string, error) { return Default.Base(category) }
