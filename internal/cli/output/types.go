package output

// EvalOutput is the structured result of an evaluation.
type EvalOutput struct {
	Expression string `json:"expression" yaml:"expression"`
	Result     string `json:"result" yaml:"result"`
	Mode       string `json:"mode" yaml:"mode"`
}

// ConvertOutput is the structured result of a conversion.
type ConvertOutput struct {
	Category string  `json:"category" yaml:"category"`
	Value    float64 `json:"value" yaml:"value"`
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Result   string  `json:"result" yaml:"result"`
}

// CategoryOutput describes one conversion category.
type CategoryOutput struct {
	Name  string   `json:"name" yaml:"name"`
	Base  string   `json:"base" yaml:"base"`
	Units []string `json:"units" yaml:"units"`
}

// UnitsOutput lists conversion categories.
type UnitsOutput struct {
	Categories []CategoryOutput `json:"categories" yaml:"categories"`
}

// FunctionOutput describes one calculator function.
type FunctionOutput struct {
	Name      string `json:"name" yaml:"name"`
	Signature string `json:"signature" yaml:"signature"`
	Doc       string `json:"doc" yaml:"doc"`
}

// FunctionsOutput lists the calculator namespace.
type FunctionsOutput struct {
	Functions []FunctionOutput `json:"functions" yaml:"functions"`
	Constants []string         `json:"constants" yaml:"constants"`
}
