package java

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jnigen/jni"
)

// Options configures extraction.
type Options struct {
	// PtrType is the Java type used to carry native pointers: "int" for
	// 32-bit builds, "long" for 64-bit builds.
	PtrType string
	// Namespace overrides the output namespace when the source carries no
	// @JNINamespace annotation.
	Namespace string
}

var qualifierKeywords = map[string]bool{
	"public":       true,
	"protected":    true,
	"private":      true,
	"static":       true,
	"final":        true,
	"abstract":     true,
	"synchronized": true,
	"strictfp":     true,
	"default":      true,
}

type sourceParser struct {
	tokens []token
	pos    int
	lines  []string
}

func (p *sourceParser) cur() token { return p.tokens[p.pos] }

func (p *sourceParser) peek(n int) token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *sourceParser) advance() token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// contextLines returns the source line the token sits on plus the next
// line, for error reporting.
func (p *sourceParser) contextLines(tok token) []string {
	idx := tok.Line - 1
	var ctx []string
	for i := idx; i < idx+2 && i < len(p.lines); i++ {
		ctx = append(ctx, p.lines[i])
	}
	return ctx
}

func (p *sourceParser) errorAt(tok token, description string) error {
	return &ParseError{Description: description, ContextLines: p.contextLines(tok)}
}

// ParseSource extracts the JNI model from one Java source file. fileName
// is used to derive the class name from the package declaration; contents
// is the raw file text.
func ParseSource(fileName string, contents []byte, opts Options) (*File, error) {
	if opts.PtrType == "" {
		opts.PtrType = "int"
	}
	p := &sourceParser{
		tokens: tokenize(contents),
		lines:  strings.Split(string(contents), "\n"),
	}

	packagePath, err := p.findPackage(fileName)
	if err != nil {
		return nil, err
	}
	baseName := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	fullyQualifiedClass := packagePath + "/" + baseName

	file := &File{
		FullyQualifiedClass: fullyQualifiedClass,
		Context:             jni.NewContext(fullyQualifiedClass),
	}

	if err := p.walk(file, opts); err != nil {
		return nil, err
	}

	if len(file.Natives) == 0 && len(file.CalledByNatives) == 0 {
		return nil, fmt.Errorf("unable to find any JNI methods for %s",
			strings.ReplaceAll(fullyQualifiedClass, "/", "."))
	}

	if file.Namespace == "" {
		file.Namespace = opts.Namespace
	}
	if err := MangleCalledByNatives(file.Context, file.CalledByNatives); err != nil {
		return nil, err
	}
	return file, nil
}

func (p *sourceParser) findPackage(fileName string) (string, error) {
	for i, tok := range p.tokens {
		if tok.is(tokenIdent, "package") {
			p.pos = i + 1
			name, err := p.parseQualifiedName()
			if err != nil {
				return "", err
			}
			return strings.ReplaceAll(name, ".", "/"), nil
		}
	}
	return "", fmt.Errorf(`unable to find "package" line in %s`, fileName)
}

// parseQualifiedName reads ident(.ident)* and leaves the parser after its
// last segment.
func (p *sourceParser) parseQualifiedName() (string, error) {
	if p.cur().Kind != tokenIdent {
		return "", p.errorAt(p.cur(), "expected identifier in qualified name")
	}
	name := p.advance().Literal
	for p.cur().is(tokenPunct, ".") && p.peek(1).Kind == tokenIdent {
		p.advance()
		name += "." + p.advance().Literal
	}
	return name, nil
}

func (p *sourceParser) walk(file *File, opts Options) error {
	p.pos = 0
	for p.cur().Kind != tokenEOF {
		tok := p.cur()
		switch {
		case tok.is(tokenIdent, "import"):
			p.advance()
			if p.cur().is(tokenIdent, "static") {
				p.advance()
			}
			name, err := p.parseQualifiedName()
			if err != nil {
				return err
			}
			file.Context.AddImport(name)

		case tok.is(tokenIdent, "class") || tok.is(tokenIdent, "interface"):
			p.advance()
			if p.cur().Kind == tokenIdent {
				file.Context.AddInnerClass(p.cur().Literal)
			}

		case tok.Kind == tokenAnnotation && tok.Literal == "JNINamespace":
			p.advance()
			ns, err := p.parseStringArgument(tok)
			if err != nil {
				return err
			}
			file.Namespace = ns

		case tok.Kind == tokenAnnotation && tok.Literal == "JNIAdditionalImport":
			p.advance()
			if err := p.parseAdditionalImports(tok, file.Context); err != nil {
				return err
			}

		case tok.Kind == tokenAnnotation &&
			(tok.Literal == "NativeClassQualifiedName" || tok.Literal == "NativeCall"):
			if err := p.parseNativeDecl(file, opts); err != nil {
				return err
			}

		case tok.is(tokenIdent, "native"):
			if err := p.parseNativeDecl(file, opts); err != nil {
				return err
			}

		case tok.Kind == tokenAnnotation &&
			(tok.Literal == "CalledByNative" || tok.Literal == "CalledByNativeUnchecked"):
			if err := p.parseCalledByNative(file); err != nil {
				return err
			}

		case tok.is(tokenIdent, "public") && p.looksLikeConstantField():
			p.parseConstantField(file)

		default:
			p.advance()
		}
	}
	return nil
}

// parseStringArgument parses ("literal") following an annotation.
func (p *sourceParser) parseStringArgument(annotation token) (string, error) {
	if !p.cur().is(tokenPunct, "(") || p.peek(1).Kind != tokenString || !p.peek(2).is(tokenPunct, ")") {
		return "", p.errorAt(annotation,
			fmt.Sprintf("@%s must carry a single string argument", annotation.Literal))
	}
	p.advance()
	value := p.advance().Literal
	p.advance()
	return value, nil
}

// parseAdditionalImports parses (Foo.class, Bar.class) or ({Foo.class}).
func (p *sourceParser) parseAdditionalImports(annotation token, ctx *jni.Context) error {
	if !p.cur().is(tokenPunct, "(") {
		return p.errorAt(annotation, "@JNIAdditionalImport must carry a class list")
	}
	p.advance()
	braced := p.cur().is(tokenPunct, "{")
	if braced {
		p.advance()
	}
	for {
		if p.cur().Kind != tokenIdent {
			return p.errorAt(annotation, "@JNIAdditionalImport expects Name.class entries")
		}
		name := p.advance().Literal
		for p.cur().is(tokenPunct, ".") && p.peek(1).Kind == tokenIdent {
			p.advance()
			name += "." + p.advance().Literal
		}
		if err := ctx.AddAdditionalImport(name); err != nil {
			return err
		}
		if p.cur().is(tokenPunct, ",") {
			p.advance()
			continue
		}
		break
	}
	if braced {
		if !p.cur().is(tokenPunct, "}") {
			return p.errorAt(annotation, "@JNIAdditionalImport class list is not closed")
		}
		p.advance()
	}
	if !p.cur().is(tokenPunct, ")") {
		return p.errorAt(annotation, "@JNIAdditionalImport class list is not closed")
	}
	p.advance()
	return nil
}

// parseNativeDecl parses, starting at either a @NativeClassQualifiedName /
// @NativeCall annotation or the "native" keyword itself:
//
//	[@NativeClassQualifiedName("Peer")] [@NativeCall("Class")]
//	qualifiers "native" type nativeName(params);
func (p *sourceParser) parseNativeDecl(file *File, opts Options) error {
	start := p.cur()
	var nativeClassName, javaClassName string

	for p.cur().Kind == tokenAnnotation {
		annotation := p.cur()
		switch annotation.Literal {
		case "NativeClassQualifiedName":
			p.advance()
			value, err := p.parseStringArgument(annotation)
			if err != nil {
				return err
			}
			nativeClassName = value
		case "NativeCall":
			p.advance()
			value, err := p.parseStringArgument(annotation)
			if err != nil {
				return err
			}
			javaClassName = value
		default:
			// Unrelated marker annotation on the same declaration.
			p.advance()
		}
	}

	static := false
	for p.cur().Kind == tokenIdent && qualifierKeywords[p.cur().Literal] {
		if p.cur().Literal == "static" {
			static = true
		}
		p.advance()
	}
	// Qualifiers before the entry point of this parse were consumed as
	// plain tokens by the walk; recover staticness from them.
	if start.is(tokenIdent, "native") {
		for i := p.pos - 1; i >= 0; i-- {
			if p.tokens[i].Kind != tokenIdent || !qualifierKeywords[p.tokens[i].Literal] {
				break
			}
			if p.tokens[i].Literal == "static" {
				static = true
			}
		}
	}

	if !p.cur().is(tokenIdent, "native") {
		return p.errorAt(start, "could not parse native method declaration")
	}
	p.advance()

	returnType, err := p.parseType(start)
	if err != nil {
		return err
	}
	if p.cur().Kind != tokenIdent || !strings.HasPrefix(p.cur().Literal, "native") {
		return p.errorAt(start,
			`native method name must carry the reserved "native" prefix`)
	}
	name := strings.TrimPrefix(p.advance().Literal, "native")

	params, err := p.parseParams(start)
	if err != nil {
		return err
	}
	if !p.cur().is(tokenPunct, ";") {
		return p.errorAt(start, "native method declaration must end with a semicolon")
	}
	p.advance()

	file.Natives = append(file.Natives, NewNativeMethod(
		javaClassName, nativeClassName, returnType, name, params, static, opts.PtrType))
	return nil
}

// parseCalledByNative parses, starting at the annotation:
//
//	@CalledByNative["Unchecked"] [("Class")] qualifiers type name(params)
func (p *sourceParser) parseCalledByNative(file *File) error {
	annotation := p.advance()
	unchecked := annotation.Literal == "CalledByNativeUnchecked"

	javaClassName := ""
	if p.cur().is(tokenPunct, "(") {
		value, err := p.parseStringArgument(annotation)
		if err != nil {
			return err
		}
		javaClassName = value
	}

	static := false
	for {
		tok := p.cur()
		if tok.Kind == tokenIdent && qualifierKeywords[tok.Literal] {
			if tok.Literal == "static" {
				static = true
			}
			p.advance()
			continue
		}
		// Marker annotations on the return type are ignored.
		if tok.Kind == tokenAnnotation && !p.peek(1).is(tokenPunct, "(") {
			p.advance()
			continue
		}
		break
	}

	returnType, err := p.parseType(annotation)
	if err != nil {
		return p.calledByNativeError(annotation)
	}
	if p.cur().Kind != tokenIdent {
		return p.calledByNativeError(annotation)
	}
	name := p.advance().Literal

	params, err := p.parseParams(annotation)
	if err != nil {
		return err
	}

	file.CalledByNatives = append(file.CalledByNatives, &CalledByNative{
		Unchecked:     unchecked,
		Static:        static,
		JavaClassName: javaClassName,
		ReturnType:    returnType,
		Name:          name,
		Params:        params,
	})
	return nil
}

func (p *sourceParser) calledByNativeError(annotation token) error {
	return p.errorAt(annotation, "could not parse @CalledByNative method signature")
}

// parseType parses ident(.ident)* with an optional single-level generic
// argument list and trailing array markers. Nested generics are outside
// the supported subset and fail extraction rather than being mis-parsed.
func (p *sourceParser) parseType(context token) (string, error) {
	name, err := p.parseQualifiedName()
	if err != nil {
		return "", err
	}
	if p.cur().is(tokenPunct, "<") {
		generic, err := p.parseGenericSuffix(context)
		if err != nil {
			return "", err
		}
		name += generic
	}
	for p.cur().is(tokenPunct, "[") && p.peek(1).is(tokenPunct, "]") {
		p.advance()
		p.advance()
		name += "[]"
	}
	return name, nil
}

func (p *sourceParser) parseGenericSuffix(context token) (string, error) {
	var sb strings.Builder
	sb.WriteString(p.advance().Literal) // "<"
	for {
		tok := p.cur()
		switch {
		case tok.is(tokenPunct, ">"):
			sb.WriteString(p.advance().Literal)
			return sb.String(), nil
		case tok.is(tokenPunct, "<"):
			return "", p.errorAt(context, "nested generic parameter lists are not supported")
		case tok.Kind == tokenEOF:
			return "", p.errorAt(context, "generic parameter list is not closed")
		default:
			sb.WriteString(p.advance().Literal)
		}
	}
}

// parseParams parses "(param, param, ...)" and leaves the parser after the
// closing parenthesis. Leading marker annotations and "final" on a
// parameter are dropped; parameters without a name get p0, p1, ...
func (p *sourceParser) parseParams(context token) ([]Param, error) {
	if !p.cur().is(tokenPunct, "(") {
		return nil, p.errorAt(context, "expected parameter list")
	}
	p.advance()

	var params []Param
	if p.cur().is(tokenPunct, ")") {
		p.advance()
		return params, nil
	}
	for {
		for {
			tok := p.cur()
			if tok.Kind == tokenAnnotation {
				if p.peek(1).is(tokenPunct, "(") {
					return nil, p.errorAt(tok,
						"annotations with arguments are not supported inside parameter lists")
				}
				p.advance()
				continue
			}
			if tok.is(tokenIdent, "final") {
				p.advance()
				continue
			}
			break
		}

		datatype, err := p.parseType(context)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("p%d", len(params))
		if p.cur().Kind == tokenIdent {
			name = p.advance().Literal
		}
		params = append(params, Param{Datatype: datatype, Name: name})

		if p.cur().is(tokenPunct, ",") {
			p.advance()
			continue
		}
		if p.cur().is(tokenPunct, ")") {
			p.advance()
			return params, nil
		}
		return nil, p.errorAt(context, "parameter list is not closed")
	}
}

// looksLikeConstantField reports whether the parser sits at
// "public static final int NAME = <int>;".
func (p *sourceParser) looksLikeConstantField() bool {
	return p.peek(1).is(tokenIdent, "static") &&
		p.peek(2).is(tokenIdent, "final") &&
		p.peek(3).is(tokenIdent, "int") &&
		p.peek(4).Kind == tokenIdent &&
		p.peek(5).is(tokenPunct, "=") &&
		p.peek(6).Kind == tokenNumber &&
		p.peek(7).is(tokenPunct, ";")
}

func (p *sourceParser) parseConstantField(file *File) {
	p.advance() // public
	p.advance() // static
	p.advance() // final
	p.advance() // int
	name := p.advance().Literal
	p.advance() // =
	value := p.advance().Literal
	p.advance() // ;
	file.Constants = append(file.Constants, ConstantField{Name: name, Value: value})
}
