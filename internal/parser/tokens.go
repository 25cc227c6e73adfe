package parser

const (
	symPub    = "pub"
	symImport = "import"
	symVar    = "var"
	symConst  = "const"
	symDot    = "."
	symAssign = "="
	symSemi   = ";"
	symTilde  = "~"
)

// Keywords cannot be used as names.
var Keywords = []string{symConst, symImport, symVar}

var identPattern = pattern{
	label: "identifier",
	parts: []part{
		{class: anyOf(isASCIILetter, oneOf("_")), min: 1, max: 1},
		{class: anyOf(isASCIILetter, isASCIIDigit, oneOf("_")), min: 0, max: unbounded},
	},
	excluded: Keywords,
}

var intPattern = pattern{
	label: "`i32` literal",
	parts: []part{
		{class: oneOf("-"), min: 0, max: 1},
		{class: isASCIIDigit, min: 1, max: 1},
		{class: anyOf(isASCIIDigit, oneOf("_")), min: 0, max: unbounded},
	},
}
