package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jnigen/java"
)

// kMethodEntry renders one registration-table row mapping the Java-side
// method name and signature to the stub's address.
func (g *Generator) kMethodEntry(n *java.NativeMethod) (string, error) {
	signature, err := g.wrappedSignature(n.Params, n.ReturnType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("    { \"native%s\", %s, reinterpret_cast<void*>(%s) },",
		n.Name, signature, g.stubName(n)), nil
}

// nativesForClass selects the natives registered under one class: those
// with a matching inner class override, or all unqualified ones when the
// class is the file's own.
func (g *Generator) nativesForClass(className string) []*java.NativeMethod {
	var natives []*java.NativeMethod
	for i := range g.file.Natives {
		n := &g.file.Natives[i]
		if n.JavaClassName == className ||
			(n.JavaClassName == "" && className == g.className) {
			natives = append(natives, n)
		}
	}
	return natives
}

// forEachRegisteredClass runs emit once per referenced class that has
// registration entries, in deterministic class order.
func (g *Generator) forEachRegisteredClass(emit func(className string, natives []*java.NativeMethod) error) error {
	var overrides []string
	for _, n := range g.file.Natives {
		overrides = append(overrides, n.JavaClassName)
	}
	for _, cls := range g.uniqueClasses(overrides) {
		natives := g.nativesForClass(cls.name)
		if len(natives) == 0 {
			continue
		}
		if err := emit(cls.name, natives); err != nil {
			return err
		}
	}
	return nil
}

// jniNativeMethodsArrays emits one static registration table per enclosing
// class, or nothing when registration is by symbol naming convention.
func (g *Generator) jniNativeMethodsArrays() (string, error) {
	if !g.opts.NativeExportsOptional {
		return "", nil
	}
	var blocks []string
	err := g.forEachRegisteredClass(func(className string, natives []*java.NativeMethod) error {
		var entries []string
		for _, n := range natives {
			entry, err := g.kMethodEntry(n)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		blocks = append(blocks, fmt.Sprintf(
			"static const JNINativeMethod kMethods%s[] = {\n%s\n};\n",
			className, strings.Join(entries, "\n")))
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(blocks) == 0 {
		return "", nil
	}
	return "\n" + strings.Join(blocks, "\n"), nil
}

// registerNativesRoutine emits RegisterNativesImpl, which installs every
// table and stops at the first class whose registration fails.
func (g *Generator) registerNativesRoutine() (string, error) {
	if !g.opts.NativeExportsOptional {
		return "", nil
	}
	var installs []string
	err := g.forEachRegisteredClass(func(className string, natives []*java.NativeMethod) error {
		var b strings.Builder
		fmt.Fprintf(&b, "  const int kMethods%sSize = arraysize(kMethods%s);\n\n",
			className, className)
		fmt.Fprintf(&b, "  if (env->RegisterNatives(%s_clazz(env),\n", className)
		fmt.Fprintf(&b, "                           kMethods%s,\n", className)
		fmt.Fprintf(&b, "                           kMethods%sSize) < 0) {\n", className)
		fmt.Fprintf(&b, "    jni_generator::HandleRegistrationError(\n")
		fmt.Fprintf(&b, "        env, %s_clazz(env), __FILE__);\n", className)
		fmt.Fprintf(&b, "    return false;\n")
		fmt.Fprintf(&b, "  }\n")
		installs = append(installs, b.String())
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(installs) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("static bool RegisterNativesImpl(JNIEnv* env) {\n")
	b.WriteString("  if (base::android::IsManualJniRegistrationDisabled()) return true;\n")
	b.WriteString("\n")
	b.WriteString(strings.Join(installs, "\n"))
	b.WriteString("\n  return true;\n}\n")
	return b.String(), nil
}
