package translate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/typebridge/typebridge/ast"
	"github.com/typebridge/typebridge/decl"
	"github.com/typebridge/typebridge/errors"
	"github.com/typebridge/typebridge/jsdoc"
	"github.com/typebridge/typebridge/logger"
)

// DefaultRoots is the allow-list of recognized root namespaces. Paths rooted
// anywhere else are discarded silently.
var DefaultRoots = []string{"goog", "proto2", "osapi", "svgpan"}

// DefaultDeny lists fully-qualified names that are dropped as documented
// exceptions. These are not derivable from general rules; each entry exists
// because its translation is known to clash with lib.d.ts or the module
// wrapper.
var DefaultDeny = []string{
	"goog.Promise.prototype.then",
	"goog.module",
	"goog.isArrayLike",
}

// instanceMarker is the reserved path segment separating a class name from
// its instance members.
const instanceMarker = "prototype"

// droppedNamespace is the namespace alias for the global object; its
// members are never declared.
const droppedNamespace = "goog.global"

// noopFunctions are placeholder function references: assigning one of them
// declares a function even though the statement carries no function literal.
var noopFunctions = map[string]bool{
	"goog.nullFunction":    true,
	"goog.abstractMethod":  true,
	"goog.functions.TRUE":  true,
	"goog.functions.FALSE": true,
}

// Options configures one translation pass.
type Options struct {
	// Roots overrides DefaultRoots when non-empty.
	Roots []string
	// Deny overrides DefaultDeny when non-empty.
	Deny []string
	// Logger receives per-statement skip reasons at debug level. Defaults
	// to the global logger.
	Logger *zap.SugaredLogger
}

// Context is the single mutable state of one pass, threaded explicitly
// through every step. Independent modules can be translated concurrently
// because nothing here is shared.
type Context struct {
	module *ast.Module
	out    *decl.Module
	roots  map[string]bool
	deny   map[string]bool
	log    *zap.SugaredLogger
}

func newContext(mod *ast.Module, opts Options) *Context {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = DefaultRoots
	}
	deny := opts.Deny
	if len(deny) == 0 {
		deny = DefaultDeny
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger
	}
	ctx := &Context{
		module: mod,
		out:    decl.NewModule(),
		roots:  make(map[string]bool, len(roots)),
		deny:   make(map[string]bool, len(deny)),
		log:    log,
	}
	for _, r := range roots {
		ctx.roots[r] = true
	}
	for _, d := range deny {
		ctx.deny[d] = true
	}
	return ctx
}

// Translate runs one top-to-bottom pass over the module's statements and
// returns the declaration model plus the provide list. The first fatal
// statement aborts the pass; the returned error carries the statement.
func Translate(mod *ast.Module, opts Options) (*decl.Module, error) {
	ctx := newContext(mod, opts)
	for _, stmt := range mod.Stmts {
		if err := ctx.classify(stmt); err != nil {
			return nil, statementError(mod.Path, stmt, err)
		}
	}
	ctx.out.Provides = CollectProvides(mod.Stmts)
	return ctx.out, nil
}

// classify processes one statement. A nil error means the statement was
// recorded or soft-skipped; a non-nil error is fatal for the module.
func (c *Context) classify(stmt ast.Stmt) error {
	switch stmt.(type) {
	case *ast.IfStmt, *ast.TryStmt:
		c.skip(stmt, "conditional or guarded statement")
		return nil
	case *ast.UnknownStmt:
		return errors.WrapUnsupportedStatement(stmt.Describe())
	}

	if isDirective(stmt) {
		return nil
	}

	doc := ast.DocComment(stmt)
	if !doc.IsDoc() {
		c.skip(stmt, "no documentation comment")
		return nil
	}
	info, err := jsdoc.ParseComment(doc.Text)
	if err != nil {
		return err
	}

	path := QualifiedName(stmt)
	if path == nil {
		c.skip(stmt, "unresolvable name")
		return nil
	}
	if !c.roots[path[0]] {
		c.skip(stmt, "root namespace not recognized")
		return nil
	}
	if c.deny[strings.Join(path, ".")] {
		c.skip(stmt, "denylisted name")
		return nil
	}

	return c.record(stmt, info, path)
}

func (c *Context) record(stmt ast.Stmt, info *jsdoc.Info, path []string) error {
	name := path[len(path)-1]
	rest := path[:len(path)-1]

	isClassLike := info.HasTag(jsdoc.TagConstructor) || info.HasTag(jsdoc.TagInterface)
	isEnum := info.HasTag(jsdoc.TagEnum)
	isTypedef := info.HasTag(jsdoc.TagTypedef)

	// A re-declaration that only says "overrides the parent" adds nothing.
	if info.HasTag(jsdoc.TagOverride) && !hasSignatureTags(info) && info.Description == "" {
		c.skip(stmt, "empty override")
		return nil
	}

	// Private declarations are dropped except those whose shape other
	// translations still need: classes (demoted to interfaces), typedefs
	// and enums.
	if info.HasTag(jsdoc.TagPrivate) && !isClassLike && !isTypedef && !isEnum {
		c.skip(stmt, "private")
		return nil
	}

	ownerClass := ""
	static := false
	nsSegs := rest
	if len(rest) >= 2 && rest[len(rest)-1] == instanceMarker {
		ownerClass = rest[len(rest)-2]
		nsSegs = rest[:len(rest)-2]
	} else if len(rest) >= 2 && !isClassLike && !isEnum && !isTypedef {
		// Kind detection above runs first: a class, enum or typedef whose
		// parent segment happens to name a class is still its own
		// declaration, never a static member.
		parent := strings.Join(rest[:len(rest)-1], ".")
		if ns, ok := c.out.Namespaces[parent]; ok && ns.Class(rest[len(rest)-1]) != nil {
			ownerClass = rest[len(rest)-1]
			static = true
			nsSegs = rest[:len(rest)-1]
		}
	}

	if len(nsSegs) == 0 {
		c.skip(stmt, "declaration of a root segment")
		return nil
	}
	nsPath := strings.Join(nsSegs, ".")
	if nsPath == droppedNamespace {
		c.skip(stmt, "global namespace alias")
		return nil
	}

	var owner *decl.Class
	if ownerClass != "" {
		ns, ok := c.out.Namespaces[nsPath]
		if ok {
			owner = ns.Class(ownerClass)
		}
		if owner == nil {
			c.skip(stmt, "owning class not registered")
			return nil
		}
	}

	// Dispatch priority: class/interface wins over everything, function
	// detection over enum/typedef tags, typed values last.
	switch {
	case isClassLike:
		return c.recordClass(name, nsPath, info)
	case c.isFunction(stmt, info):
		return c.recordFunction(name, nsPath, owner, static, info)
	case isEnum:
		return c.recordEnum(stmt, name, nsPath, info)
	case isTypedef:
		return c.recordTypeAlias(name, nsPath, info)
	default:
		return c.recordVar(stmt, name, nsPath, owner, static, info)
	}
}

func hasSignatureTags(info *jsdoc.Info) bool {
	return info.HasTag(jsdoc.TagParam) ||
		info.HasTag(jsdoc.TagReturn) ||
		info.HasTag(jsdoc.TagType) ||
		info.HasTag(jsdoc.TagTemplate)
}

// isFunction detects function declarations: signature tags, a function
// literal initializer, or assignment of a known placeholder function.
func (c *Context) isFunction(stmt ast.Stmt, info *jsdoc.Info) bool {
	if info.HasTag(jsdoc.TagDefine) {
		// Macro defines are compile-time values even when the initializer
		// is an expression involving functions.
		return false
	}
	if info.HasTag(jsdoc.TagParam) || info.HasTag(jsdoc.TagReturn) {
		return true
	}
	switch s := stmt.(type) {
	case *ast.FuncDeclStmt:
		return true
	case *ast.AssignStmt:
		if _, ok := s.Value.(*ast.FuncLit); ok {
			return true
		}
		if noopFunctions[strings.Join(flattenPath(s.Value), ".")] {
			return true
		}
	case *ast.VarStmt:
		if _, ok := s.Value.(*ast.FuncLit); ok {
			return true
		}
	}
	return false
}

func (c *Context) recordClass(name, nsPath string, info *jsdoc.Info) error {
	kind := decl.KindClass
	if info.HasTag(jsdoc.TagInterface) || info.HasTag(jsdoc.TagPrivate) {
		kind = decl.KindInterface
	}

	cls := &decl.Class{
		Name:       name,
		Kind:       kind,
		TypeParams: templateNames(info.Tags),
		Doc:        info.Raw,
	}

	if kind == decl.KindClass {
		sig, err := BuildConstructorSignature(info.Tags)
		if err != nil {
			return err
		}
		cls.Ctor = sig
	}

	for _, tag := range info.Tags {
		if tag.Kind != jsdoc.TagExtends || tag.Type == nil {
			continue
		}
		parent, err := TranslateType(tag.Type)
		if err != nil {
			return err
		}
		cls.Extends = append(cls.Extends, parent)
	}

	c.out.Namespace(nsPath).AddClass(cls)
	return nil
}

func (c *Context) recordFunction(name, nsPath string, owner *decl.Class, static bool, info *jsdoc.Info) error {
	sig, typeParams, err := BuildSignature(info.Tags)
	if err != nil {
		return err
	}
	fn := &decl.Function{
		Name:       name,
		Signature:  sig,
		TypeParams: typeParams,
		Static:     static,
		Doc:        info.Raw,
	}
	if owner != nil {
		owner.Methods = append(owner.Methods, fn)
		return nil
	}
	ns := c.out.Namespace(nsPath)
	ns.Functions = append(ns.Functions, fn)
	return nil
}

func (c *Context) recordEnum(stmt ast.Stmt, name, nsPath string, info *jsdoc.Info) error {
	base := "number"
	if tag := info.Tag(jsdoc.TagEnum); tag != nil && tag.Type != nil {
		s, err := TranslateType(tag.Type)
		if err != nil {
			return err
		}
		base = s
	}

	enum := &decl.Enum{Name: name, BaseType: base, Doc: info.Raw}

	switch v := initializer(stmt).(type) {
	case *ast.ObjectLit:
		for _, field := range v.Fields {
			if field.KeyKind == ast.KeyOther {
				return errors.Wrapf(errors.ErrBadRecordKey, "enum %s", name)
			}
			enum.Keys = append(enum.Keys, field.Key)
		}
	case *ast.Ident, *ast.Member:
		// Re-export of another enumeration.
		enum.AliasOf = strings.Join(flattenPath(v), ".")
	}

	ns := c.out.Namespace(nsPath)
	ns.Enums = append(ns.Enums, enum)
	return nil
}

func (c *Context) recordTypeAlias(name, nsPath string, info *jsdoc.Info) error {
	typ := "any"
	if tag := info.Tag(jsdoc.TagTypedef); tag != nil && tag.Type != nil {
		s, err := TranslateType(tag.Type)
		if err != nil {
			return err
		}
		typ = s
	}
	ns := c.out.Namespace(nsPath)
	ns.Aliases = append(ns.Aliases, &decl.TypeAlias{Name: name, Type: typ, Doc: info.Raw})
	return nil
}

func (c *Context) recordVar(stmt ast.Stmt, name, nsPath string, owner *decl.Class, static bool, info *jsdoc.Info) error {
	var typed *jsdoc.Tag
	for _, kind := range []jsdoc.TagKind{jsdoc.TagType, jsdoc.TagDefine, jsdoc.TagConst} {
		if tag := info.Tag(kind); tag != nil && tag.Type != nil {
			typed = tag
			break
		}
	}

	var typ string
	switch {
	case typed != nil:
		s, err := TranslateType(typed.Type)
		if err != nil {
			return err
		}
		typ = s
	default:
		// A plain assignment with no annotation still declares something;
		// anything else leaves no type to infer.
		if _, ok := stmt.(*ast.AssignStmt); !ok {
			return errors.WrapMissingType(name)
		}
		typ = "any"
	}

	v := &decl.Var{Name: name, Type: typ, Static: static, Doc: info.Raw}
	if owner != nil {
		owner.Properties = append(owner.Properties, v)
		return nil
	}
	ns := c.out.Namespace(nsPath)
	ns.Vars = append(ns.Vars, v)
	return nil
}

// initializer returns the statement's right-hand value, if any.
func initializer(stmt ast.Stmt) ast.Expr {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return s.Value
	case *ast.VarStmt:
		return s.Value
	}
	return nil
}

func (c *Context) skip(stmt ast.Stmt, reason string) {
	c.log.Debugw("statement skipped",
		"module", c.module.Path,
		"at", stmt.Span().String(),
		"reason", reason,
		"statement", stmt.Describe(),
	)
}
