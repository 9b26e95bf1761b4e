package model

// Kind is the syntactic category of an element.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindCompilationUnit
	KindPackage
	KindImport
	KindClass
	KindInterface
	KindField
	KindMethod
	KindConstructor
	KindParameter
	KindModifier
	KindAnnotation
	KindTypeRef
	KindTypeParameters
	KindBlock
	KindStatement
	KindExpression
	KindComment
	// KindSnippet is a declaration kept as opaque text (enums, records,
	// initializer blocks, anything the front-end does not structure).
	KindSnippet
)

var kindNames = [...]string{
	KindInvalid:         "invalid",
	KindCompilationUnit: "compilation-unit",
	KindPackage:         "package",
	KindImport:          "import",
	KindClass:           "class",
	KindInterface:       "interface",
	KindField:           "field",
	KindMethod:          "method",
	KindConstructor:     "constructor",
	KindParameter:       "parameter",
	KindModifier:        "modifier",
	KindAnnotation:      "annotation",
	KindTypeRef:         "type-ref",
	KindTypeParameters:  "type-parameters",
	KindBlock:           "block",
	KindStatement:       "statement",
	KindExpression:      "expression",
	KindComment:         "comment",
	KindSnippet:         "snippet",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}

// IsType reports class-like declarations.
func (k Kind) IsType() bool {
	return k == KindClass || k == KindInterface
}

// IsNamed reports kinds that carry a name attribute.
func (k Kind) IsNamed() bool {
	switch k {
	case KindClass, KindInterface, KindField, KindMethod, KindConstructor, KindParameter:
		return true
	default:
		return false
	}
}

// IsText reports leaf kinds printed from their value.
func (k Kind) IsText() bool {
	switch k {
	case KindPackage, KindImport, KindModifier, KindAnnotation, KindTypeRef,
		KindTypeParameters, KindStatement, KindExpression, KindComment, KindSnippet:
		return true
	default:
		return false
	}
}
