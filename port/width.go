package port

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/pkg/errors"
)

// MaxWidth is the widest port supported. Wider signals are stored by Verilator
// as word arrays and cannot be passed by value.
const MaxWidth = 64

// WidthClass is the smallest unsigned integer type that holds a port.
type WidthClass int

const (
	U8 WidthClass = iota
	U16
	U32
	U64
)

type classInfo struct {
	name   string
	bits   int
	host   string
	cgo    string
	native string
}

var classes = [...]classInfo{
	U8:  {"u8", 8, "uint8", "C.uint8_t", "uint8_t"},
	U16: {"u16", 16, "uint16", "C.uint16_t", "uint16_t"},
	U32: {"u32", 32, "uint32", "C.uint32_t", "uint32_t"},
	U64: {"u64", 64, "uint64", "C.uint64_t", "uint64_t"},
}

func (c WidthClass) String() string { return classes[c].name }

// Bits returns the capacity of the class.
func (c WidthClass) Bits() int { return classes[c].bits }

// HostType returns the Go type carrying values of the class.
func (c WidthClass) HostType() string { return classes[c].host }

// CgoType returns the cgo spelling of the C type used at the ABI boundary.
func (c WidthClass) CgoType() string { return classes[c].cgo }

// NativeType returns the C/C++ type used at the ABI boundary.
func (c WidthClass) NativeType() string { return classes[c].native }

// Classify returns the smallest class able to hold `width` bits.
func Classify(width int) (WidthClass, error) {
	if width < 1 || width > MaxWidth {
		return 0, errors.Wrapf(ErrWidthOverflow, "width %d", width)
	}
	for c := U8; c <= U64; c++ {
		if width <= c.Bits() {
			return c, nil
		}
	}
	panic("unreachable")
}

// Width returns the bit width declared by a field type: 1 for bool and N for [N]bool.
func Width(expr ast.Expr) (int, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if t.Name == "bool" {
			return 1, nil
		}
		return 0, errors.Wrapf(ErrUnsupportedType, "type %s", t.Name)
	case *ast.ArrayType:
		if t.Len == nil {
			return 0, errors.Wrap(ErrUnsupportedType, "slices have no fixed width")
		}
		if elem, ok := t.Elt.(*ast.Ident); !ok || elem.Name != "bool" {
			return 0, errors.Wrap(ErrUnsupportedType, "arrays must have bool elements")
		}
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return 0, errors.Wrapf(ErrInvalidWidthExpression, "array length %s", exprString(t.Len))
		}
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrWidthOverflow, "array length %s", lit.Value)
		}
		return int(n), nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedType, "type %s", exprString(expr))
	}
}

func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.BasicLit:
		return e.Value
	case *ast.Ellipsis:
		return "..."
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(e.X)
	case *ast.BinaryExpr:
		return exprString(e.X) + e.Op.String() + exprString(e.Y)
	case *ast.ParenExpr:
		return "(" + exprString(e.X) + ")"
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + exprString(e.Elt)
		}
		return "[" + exprString(e.Len) + "]" + exprString(e.Elt)
	default:
		return "expression"
	}
}
