package feature

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells how the value of a feature on a record must be interpreted
type Kind int

const (
	// Undefined is the kind of a value that is absent from a record
	Undefined Kind = iota
	// Numeric is the kind of float64 values
	Numeric
	// Categorical is the kind of string token values
	Categorical
)

// UndefinedKey is the branch key and textual representation of an undefined value
const UndefinedKey = "?"

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return "undefined"
}

/*
ParseKind takes a string and returns the Kind it names. Besides the names
returned by Kind's String method, "continuous" and "discrete" are accepted
for numeric and categorical respectively.
*/
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "continuous", "number":
		return Numeric, nil
	case "categorical", "discrete", "string":
		return Categorical, nil
	}
	return Undefined, fmt.Errorf("unknown feature kind %q", s)
}

/*
Value is the value a record has for a feature: either a number, a categorical
token or nothing at all. Its zero value is the undefined value.
*/
type Value struct {
	kind  Kind
	num   float64
	token string
}

// Number returns a numeric value
func Number(f float64) Value {
	return Value{kind: Numeric, num: f}
}

// Token returns a categorical value. The UndefinedKey token "?" stands for
// a missing value on every input, so it returns the undefined value instead
// of a token that would share its key.
func Token(s string) Value {
	if s == UndefinedKey {
		return Value{}
	}
	return Value{kind: Categorical, token: s}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Defined returns whether the value is not undefined
func (v Value) Defined() bool {
	return v.kind != Undefined
}

// Float returns the number held by the value and whether it is numeric
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Numeric
}

// Token returns the token held by the value and whether it is categorical
func (v Value) Token() (string, bool) {
	return v.token, v.kind == Categorical
}

/*
Key returns the string under which the value is grouped when partitioning on a
categorical feature: the token itself, UndefinedKey for undefined values and the
shortest decimal representation for numbers.
*/
func (v Value) Key() string {
	switch v.kind {
	case Categorical:
		return v.token
	case Numeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return UndefinedKey
}

func (v Value) String() string {
	return v.Key()
}

/*
ParseValue takes a raw string and a kind and returns the value it represents.
Empty strings and UndefinedKey are parsed as undefined values. For the
Numeric kind the string must be a valid float.
*/
func ParseValue(raw string, k Kind) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == UndefinedKey {
		return Value{}, nil
	}
	if k == Numeric {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("converting %q to a number: %v", raw, err)
		}
		return Number(f), nil
	}
	return Token(raw), nil
}

/*
Sample is an interface for something that has values for features, like a
record of a dataset or a record to classify.

Its ValueFor method returns the value corresponding to the feature passed as
parameter, the undefined value if the sample has none.
*/
type Sample interface {
	ValueFor(Feature) Value
}
