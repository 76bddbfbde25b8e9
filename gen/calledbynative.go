package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jnigen/java"
)

// wrappedSignature renders a computed JNI method descriptor as adjacent C
// string literals, one per component, starting on a fresh line. The
// compiler concatenates them back into one descriptor.
func (g *Generator) wrappedSignature(params []java.Param, returnType string) (string, error) {
	items := []string{"("}
	for _, p := range params {
		desc, err := g.file.Context.Resolve(p.Datatype)
		if err != nil {
			return "", err
		}
		items = append(items, desc)
	}
	items = append(items, ")")
	ret, err := g.file.Context.Resolve(returnType)
	if err != nil {
		return "", err
	}
	items = append(items, ret)

	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	return "\n" + strings.Join(quoted, "\n"), nil
}

// jniSignature returns the descriptor literal for a called-by-native
// method: the verbatim javap descriptor when one was extracted, otherwise
// the descriptor computed by the resolver.
func (g *Generator) jniSignature(m *java.CalledByNative) (string, error) {
	if m.Signature != "" {
		return `"` + m.Signature + `"`, nil
	}
	returnType := m.ReturnType
	if m.IsConstructor {
		returnType = "void"
	}
	return g.wrappedSignature(m.Params, returnType)
}

func argumentInCall(p java.Param) string {
	if p.Datatype == "int" {
		return "as_jint(" + p.Name + ")"
	}
	if isScopedJNIType(javaTypeToC(p.Datatype)) {
		return p.Name + ".obj()"
	}
	return p.Name
}

// methodIDImpl renders the lazy member-identifier lookup. The cache cell
// is an AtomicWord initialized by whichever thread gets there first.
func (g *Generator) methodIDImpl(m *java.CalledByNative, javaClass string) (string, error) {
	jniName := m.Name
	if m.IsConstructor {
		jniName = "<init>"
	}
	signature, err := g.jniSignature(m)
	if err != nil {
		return "", err
	}
	idType := "TYPE_INSTANCE"
	if m.Static {
		idType = "TYPE_STATIC"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  base::android::MethodID::LazyGet<\n")
	fmt.Fprintf(&b, "      base::android::MethodID::%s>(\n", idType)
	fmt.Fprintf(&b, "      env, %s_clazz(env),\n", javaClass)
	fmt.Fprintf(&b, "      \"%s\",\n", jniName)
	fmt.Fprintf(&b, "      %s,\n", signature)
	fmt.Fprintf(&b, "      &g_%s_%s);\n", javaClass, m.MethodIDVarName)
	return b.String(), nil
}

// calledByNativeStub renders the lazy invocation stub for one
// called-by-native method: class (and object) validation, cached member
// lookup, the env call selected by return type, exception propagation,
// and an ownership-safe return for reference results.
func (g *Generator) calledByNativeStub(m *java.CalledByNative) (string, error) {
	javaClass := m.JavaClassName
	if javaClass == "" {
		javaClass = g.className
	}

	firstParamInDeclaration := ""
	firstParamInCall := javaClass + "_clazz(env)"
	if !m.Static && !m.IsConstructor {
		firstParamInDeclaration = ", const base::android::JavaRefOrBare<jobject>& obj"
		firstParamInCall = "obj.obj()"
	}

	var declParams []string
	for _, p := range m.Params {
		declParams = append(declParams,
			javaTypeToCForCalledByNativeParam(p.Datatype)+" "+p.Name)
	}
	paramsInDeclaration := strings.Join(declParams, ",\n    ")
	if paramsInDeclaration != "" {
		paramsInDeclaration = ", " + paramsInDeclaration
	}

	var callArgs []string
	for _, p := range m.Params {
		callArgs = append(callArgs, argumentInCall(p))
	}
	paramsInCall := strings.Join(callArgs, ", ")
	if paramsInCall != "" {
		paramsInCall = ", " + paramsInCall
	}

	preCall := ""
	postCall := ""
	if cast := staticCastForReturnType(m.ReturnType); cast != "" {
		preCall = fmt.Sprintf("static_cast<%s>(", cast)
		postCall = ")"
	}
	checkException := ""
	if !m.Unchecked {
		checkException = "jni_generator::CheckException(env);"
	}

	// For constructors the declared return type is the class itself, which
	// maps to jobject like any other reference.
	returnType := javaTypeToC(m.ReturnType)
	errorReturn := javaReturnValueToC(m.ReturnType)
	if errorReturn != "" {
		errorReturn = ", " + errorReturn
	}
	returnDeclaration := ""
	returnClause := ""
	if returnType != "void" {
		preCall = " " + preCall
		returnDeclaration = returnType + " ret ="
		if isScopedJNIType(returnType) {
			// Hand the caller an owning ref instead of a raw local handle.
			scoped := "base::android::ScopedJavaLocalRef<" + returnType + ">"
			returnClause = "return " + scoped + "(env, ret);"
			returnType = scoped
		} else {
			returnClause = "return ret;"
		}
	}

	methodID, err := g.methodIDImpl(m, javaClass)
	if err != nil {
		return "", err
	}

	signature := fmt.Sprintf("static %s Java_%s_%s(JNIEnv* env%s%s)",
		returnType, javaClass, m.MethodIDVarName,
		firstParamInDeclaration, paramsInDeclaration)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "static base::subtle::AtomicWord g_%s_%s = 0;\n",
		javaClass, m.MethodIDVarName)
	if m.SystemClass {
		// Stubs for library classes are frequently unreferenced.
		fmt.Fprintf(&b, "%s __attribute__ ((unused));\n", signature)
	}
	fmt.Fprintf(&b, "%s {\n", signature)
	fmt.Fprintf(&b, "  CHECK_CLAZZ(env, %s,\n      %s_clazz(env)%s);\n",
		firstParamInCall, javaClass, errorReturn)
	fmt.Fprintf(&b, "  jmethodID method_id =\n    %s", methodID)
	fmt.Fprintf(&b, "  %s\n", returnDeclaration)
	fmt.Fprintf(&b, "     %senv->%s(%s,\n          method_id%s)%s;\n",
		preCall, envCall(m.IsConstructor, m.Static, m.ReturnType),
		firstParamInCall, paramsInCall, postCall)
	fmt.Fprintf(&b, "  %s\n", checkException)
	fmt.Fprintf(&b, "  %s\n}\n", returnClause)
	return b.String(), nil
}
