package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jnigen/java"
)

// stubName builds the external entry-point symbol for a native method:
// "Java_" plus the fully qualified class with "_" escaped as "_1" and "/"
// as "_", plus "_00024Inner" for inner class overrides, plus the declared
// method name. The JVM binds these by naming convention alone.
func (g *Generator) stubName(n *java.NativeMethod) string {
	javaName := strings.ReplaceAll(g.file.FullyQualifiedClass, "_", "_1")
	javaName = strings.ReplaceAll(javaName, "/", "_")
	if n.JavaClassName != "" {
		javaName += "_00024" + n.JavaClassName
	}
	return "Java_" + javaName + "_native" + n.Name
}

func (g *Generator) jniFirstParamType(n *java.NativeMethod) string {
	if n.Kind == java.DispatchFunction && n.Static {
		return "jclass"
	}
	return "jobject"
}

func javaParamRefForCall(cType, name string) string {
	return fmt.Sprintf("base::android::JavaParamRef<%s>(env, %s)", cType, name)
}

// nativeStub renders the forward declaration (free functions only) and
// the extern "C" call stub for one native method.
func (g *Generator) nativeStub(n *java.NativeMethod) string {
	firstParamType := g.jniFirstParamType(n)

	declParams := []string{wrapCTypeForDeclaration(firstParamType) + " jcaller"}
	stubParams := []string{firstParamType + " jcaller"}
	callParams := []string{"env", javaParamRefForCall(firstParamType, "jcaller")}

	params := n.Params
	if n.Kind == java.DispatchMethod {
		// The peer pointer parameter is consumed by the stub itself and
		// never forwarded.
		params = n.Params[1:]
	}
	for _, p := range n.Params {
		cType := javaTypeToC(p.Datatype)
		declParams = append(declParams, wrapCTypeForDeclaration(cType)+" "+p.Name)
		stubParams = append(stubParams, cType+" "+p.Name)
	}
	for _, p := range params {
		cType := javaTypeToC(p.Datatype)
		if isScopedJNIType(cType) {
			callParams = append(callParams, javaParamRefForCall(cType, p.Name))
		} else {
			callParams = append(callParams, p.Name)
		}
	}

	returnType := javaTypeToC(n.ReturnType)
	returnDeclaration := returnType
	postCall := ""
	if isScopedJNIType(returnType) {
		// The implementation hands back an owning local ref; the stub
		// releases it into the raw handle the JVM expects.
		postCall = ".Release()"
		returnDeclaration = "base::android::ScopedJavaLocalRef<" + returnType + ">"
	}

	paramsInStub := strings.Join(stubParams, ",\n    ")
	paramsInCall := strings.Join(callParams, ", ")

	var b strings.Builder
	if n.Kind == java.DispatchMethod {
		errorReturn := javaReturnValueToC(n.ReturnType)
		if errorReturn != "" {
			errorReturn = ", " + errorReturn
		}
		fmt.Fprintf(&b, "extern \"C\" __attribute__((visibility(\"default\")))\n")
		fmt.Fprintf(&b, "%s %s(JNIEnv* env,\n    %s) {\n", returnType, g.stubName(n), paramsInStub)
		fmt.Fprintf(&b, "  %s* native = reinterpret_cast<%s*>(%s);\n",
			n.PeerType, n.PeerType, n.Params[0].Name)
		fmt.Fprintf(&b, "  CHECK_NATIVE_PTR(env, jcaller, native, \"%s\"%s);\n",
			n.Name, errorReturn)
		fmt.Fprintf(&b, "  return native->%s(%s)%s;\n}\n", n.Name, paramsInCall, postCall)
		return b.String()
	}

	paramsInDeclaration := strings.Join(declParams, ",\n    ")
	b.WriteString("\n")
	fmt.Fprintf(&b, "static %s %s(JNIEnv* env, %s);\n\n",
		returnDeclaration, n.Name, paramsInDeclaration)
	fmt.Fprintf(&b, "extern \"C\" __attribute__((visibility(\"default\")))\n")
	fmt.Fprintf(&b, "%s %s(JNIEnv* env, %s) {\n", returnType, g.stubName(n), paramsInStub)
	fmt.Fprintf(&b, "  return %s(%s)%s;\n}\n", n.Name, paramsInCall, postCall)
	return b.String()
}
