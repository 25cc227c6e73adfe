package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Синтаксис
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001

	// Семантика
	SemaInfo               Code = 3000
	SemaUnresolvedSymbol   Code = 3001
	SemaDuplicateSymbol    Code = 3002
	SemaCircularDependency Code = 3003
	SemaNotConstant        Code = 3004
	SemaLiteralOutOfBounds Code = 3005
	SemaUnusedValue        Code = 3006
	SemaUsedUnderscore     Code = 3007
	SemaNameStyle          Code = 3008
	SemaSingleCharName     Code = 3009

	// Ввод-вывод
	IOInfo           Code = 4000
	IOReadFailed     Code = 4001
	IOWriteFailed    Code = 4002
	IOInvalidProgram Code = 4003

	// Импорты и проект
	ProjInfo           Code = 5000
	ProjModuleNotFound Code = 5001
	ProjImportNotTop   Code = 5002
	ProjSelfImport     Code = 5003
	ProjUnusedImport   Code = 5004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		SynInfo:                "Syntax information",
		SynUnexpectedToken:     "Unexpected token",
		SemaInfo:               "Semantic information",
		SemaUnresolvedSymbol:   "Unresolved value",
		SemaDuplicateSymbol:    "Duplicate definition",
		SemaCircularDependency: "Circular dependency",
		SemaNotConstant:        "Expression not constant",
		SemaLiteralOutOfBounds: "Literal out of bounds",
		SemaUnusedValue:        "Unused value",
		SemaUsedUnderscore:     "Underscore-prefixed value is used",
		SemaNameStyle:          "Naming convention",
		SemaSingleCharName:     "Single character identifier",
		IOInfo:                 "I/O information",
		IOReadFailed:           "Cannot read file",
		IOWriteFailed:          "Cannot write file",
		IOInvalidProgram:       "Invalid compiled program",
		ProjInfo:               "Project information",
		ProjModuleNotFound:     "Module not found",
		ProjImportNotTop:       "Import after other items",
		ProjSelfImport:         "Module imports itself",
		ProjUnusedImport:       "Unused import",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
