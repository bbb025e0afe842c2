package port

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/daedaleanai/verilated/util"

	"github.com/pkg/errors"
)

// Directive marks a struct type as a module declaration.
const Directive = "//verilated:module"

const (
	roleTag   = "port"
	signalTag = "signal"
)

// ExtractFiles extracts the modules declared in all of the given Go files, in
// file order and then declaration order. Module names must be unique across files.
func ExtractFiles(paths ...string) ([]Module, error) {
	modules := []Module{}
	seen := util.NewOrderedMap[string, token.Position]()
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read '%s'", path)
		}
		found, err := Extract(path, src)
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			if err := seen.Insert(m.NativeType, m.Pos); err != nil {
				first, _ := seen.Lookup(m.NativeType)
				return nil, &ConfigurationError{
					Pos:    m.Pos,
					Type:   m.HostType,
					Err:    ErrDuplicateModule,
					Detail: "'" + m.NativeType + "' is already declared at " + first.String(),
				}
			}
			modules = append(modules, m)
		}
	}
	return modules, nil
}

// Extract parses Go source and returns the modules it declares. `filename` is
// only used for positions in error messages.
func Extract(filename string, src []byte) ([]Module, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.AllErrors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse '%s'", filename)
	}

	modules := []Module{}
	declared := map[string]token.Position{}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			name, found, err := moduleDirective(doc)
			if err != nil {
				return nil, &ConfigurationError{
					Pos:    fset.Position(typeSpec.Pos()),
					Type:   typeSpec.Name.Name,
					Err:    ErrInvalidDirective,
					Detail: err.Error(),
				}
			}
			if !found || !typeSpec.Name.IsExported() {
				continue
			}
			module, err := extractModule(fset, typeSpec, name)
			if err != nil {
				return nil, err
			}
			if first, ok := declared[module.NativeType]; ok {
				return nil, &ConfigurationError{
					Pos:    module.Pos,
					Type:   module.HostType,
					Err:    ErrDuplicateModule,
					Detail: "'" + module.NativeType + "' is already declared at " + first.String(),
				}
			}
			declared[module.NativeType] = module.Pos
			if doc != nil {
				module.Doc = strings.TrimSpace(doc.Text())
			}
			modules = append(modules, module)
		}
	}
	return modules, nil
}

// moduleDirective looks for the module directive in a doc comment and returns
// the module name it carries, if any.
func moduleDirective(doc *ast.CommentGroup) (string, bool, error) {
	if doc == nil {
		return "", false, nil
	}
	for _, comment := range doc.List {
		rest, ok := strings.CutPrefix(comment.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		args := strings.Fields(rest)
		switch len(args) {
		case 0:
			return "", true, nil
		case 1:
			if !ValidName(args[0]) {
				return "", true, errors.Errorf("'%s' is not a valid module name", args[0])
			}
			return args[0], true, nil
		default:
			return "", true, errors.Errorf("expected at most one module name, got %d", len(args))
		}
	}
	return "", false, nil
}

func extractModule(fset *token.FileSet, spec *ast.TypeSpec, nativeName string) (Module, error) {
	module := Module{
		HostType:   spec.Name.Name,
		NativeType: nativeName,
		Pos:        fset.Position(spec.Pos()),
	}
	if module.NativeType == "" {
		module.NativeType = strings.ToLower(module.HostType)
	}

	fail := func(pos token.Pos, field string, err error) error {
		cfgErr := &ConfigurationError{
			Pos:   fset.Position(pos),
			Type:  module.HostType,
			Field: field,
			Err:   err,
		}
		// Keep the kind as the wrapped error and the context as detail.
		if cause := errors.Cause(err); cause != err {
			cfgErr.Err = cause
			cfgErr.Detail = strings.TrimSuffix(err.Error(), ": "+cause.Error())
		}
		return cfgErr
	}

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return module, fail(spec.Pos(), "", errors.Wrap(ErrUnsupportedType, "modules cannot have type parameters"))
	}
	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return module, fail(spec.Pos(), "", errors.Wrap(ErrUnsupportedType, "modules must be struct types"))
	}
	if !ValidName(module.NativeType) {
		return module, fail(spec.Pos(), "", errors.Wrapf(ErrInvalidName, "module name '%s'", module.NativeType))
	}

	signals := map[string]string{}
	for _, field := range structType.Fields.List {
		tag, err := fieldTag(field)
		if err != nil {
			return module, fail(field.Pos(), "", err)
		}
		roleMarker, tagged := tag.Lookup(roleTag)
		if !tagged {
			continue
		}
		if len(field.Names) == 0 {
			return module, fail(field.Pos(), exprString(field.Type), errors.Wrap(ErrUnsupportedType, "embedded fields cannot be ports"))
		}

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			role, err := parseRoleMarker(roleMarker)
			if err != nil {
				return module, fail(ident.Pos(), ident.Name, err)
			}

			p, err := newPort(ident.Name, tag.Get(signalTag), field.Type, role)
			if err != nil {
				return module, fail(ident.Pos(), ident.Name, err)
			}
			if other, ok := signals[p.Name]; ok {
				return module, fail(ident.Pos(), ident.Name, errors.Wrapf(ErrInvalidName, "signal '%s' is also used by %s", p.Name, other))
			}
			signals[p.Name] = ident.Name

			if err := module.Ports.add(p); err != nil {
				return module, fail(ident.Pos(), ident.Name, err)
			}
		}
	}
	return module, nil
}

func fieldTag(field *ast.Field) (reflect.StructTag, error) {
	if field.Tag == nil {
		return "", nil
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", errors.Wrapf(ErrMissingRoleArgument, "malformed tag %s", field.Tag.Value)
	}
	return reflect.StructTag(raw), nil
}

func parseRoleMarker(marker string) (Role, error) {
	args := strings.Split(marker, ",")
	if marker == "" || len(args) != 1 {
		return 0, errors.Wrapf(ErrMissingRoleArgument, "got %q", marker)
	}
	role, ok := ParseRole(strings.TrimSpace(args[0]))
	if !ok {
		return 0, errors.Wrapf(ErrMissingRoleArgument, "unknown role %q", args[0])
	}
	return role, nil
}

func newPort(field, signal string, typ ast.Expr, role Role) (Port, error) {
	if signal == "" {
		signal = SnakeCase(field)
	}
	if !ValidName(signal) {
		return Port{}, errors.Wrapf(ErrInvalidName, "signal '%s'", signal)
	}
	width, err := Width(typ)
	if err != nil {
		return Port{}, err
	}
	class, err := Classify(width)
	if err != nil {
		return Port{}, err
	}
	return Port{
		Field: field,
		Name:  signal,
		Width: width,
		Class: class,
		Role:  role,
	}, nil
}

func (s *Set) add(p Port) error {
	switch p.Role {
	case Clock:
		if s.Clock != nil {
			return errors.Wrapf(ErrDuplicateRole, "clock is already %s", s.Clock.Field)
		}
		s.Clock = &p
	case Reset:
		if s.Reset != nil {
			return errors.Wrapf(ErrDuplicateRole, "reset is already %s", s.Reset.Field)
		}
		s.Reset = &p
	case Input:
		s.Inputs = append(s.Inputs, p)
	case Output:
		s.Outputs = append(s.Outputs, p)
	case InOut:
		s.InOuts = append(s.InOuts, p)
	}
	return nil
}
