// Package config holds process-wide settings and the closed catalog of
// built-in names the elaborator seeds every module.Table with before
// declare ever runs (spec.md §3, "ambient built-ins").
package config

// Version is the current language version.
// Set at build time via -ldflags or by writing to this file.
var Version = "0.1.0"

const SourceFileExt = ".vp"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".vp", ".vulpi"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode. No
// package in this module reads it; holes always print as "_" and
// skolems by name.
var IsTestMode = false

// Built-in type constructor names, seeded into every module.Table's
// root namespace before elaboration of user code begins.
const (
	BoolTypeName   = "Bool"
	UnitTypeName   = "Unit"
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	CharTypeName   = "Char"
	ListTypeName   = "List"
)

// Built-in data constructor names.
const (
	TrueCtorName  = "True"
	FalseCtorName = "False"
	NilCtorName   = "Nil"
	ConsCtorName  = "Cons"
)

// Built-in operator function names, the desugarer's Application
// targets for binary expressions (internal/desugar/expr.go's
// operatorName) and the module.Table keys their schemes are declared
// under before any user file is elaborated.
var OperatorFuncNames = []string{
	"+", "-", "*", "/", "%",
	"&&", "||", "^", "!",
	"==", "!=", "<", ">", "<=", ">=",
	"<<", ">>",
}
