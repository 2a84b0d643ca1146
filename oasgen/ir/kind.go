package ir

// Kind identifies the variant of an Expr.
type Kind int

const (
	KindAny Kind = iota
	KindUndefined
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindLiteral
	KindEnum
	KindObject
	KindArray
	KindNamed
	KindLazy
	KindOptional
	KindNullable
	KindUnion
	KindIntersection
	KindDescribe
	KindDefault
)

var kindNames = [...]string{
	KindAny:          "any",
	KindUndefined:    "undefined",
	KindNull:         "null",
	KindString:       "string",
	KindNumber:       "number",
	KindBoolean:      "boolean",
	KindLiteral:      "literal",
	KindEnum:         "enum",
	KindObject:       "object",
	KindArray:        "array",
	KindNamed:        "named",
	KindLazy:         "lazy",
	KindOptional:     "optional",
	KindNullable:     "nullable",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindDescribe:     "describe",
	KindDefault:      "default",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
