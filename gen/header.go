package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jnigen/java"
)

// Options configures header synthesis.
type Options struct {
	// ScriptName is printed in the generated-file banner.
	ScriptName string
	// Includes lists extra header files to #include after <jni.h>.
	Includes []string
	// NativeExportsOptional also emits explicit registration tables and a
	// RegisterNativesImpl routine alongside the convention-named stubs.
	NativeExportsOptional bool
}

// Generator renders one binding header from one extracted file model.
type Generator struct {
	file      *java.File
	opts      Options
	className string
}

// New builds a Generator for the given model.
func New(file *java.File, opts Options) *Generator {
	return &Generator{
		file:      file,
		opts:      opts,
		className: file.ClassName(),
	}
}

// Generate renders the complete header, line-wrapped to 80 columns. The
// output is deterministic for a given model.
func (g *Generator) Generate() (string, error) {
	methodStubs, err := g.methodStubs()
	if err != nil {
		return "", err
	}
	kMethods, err := g.jniNativeMethodsArrays()
	if err != nil {
		return "", err
	}
	registerNatives, err := g.registerNativesRoutine()
	if err != nil {
		return "", err
	}
	// The registration table and the routine installing it are only
	// meaningful together; emitting one without the other would leave a
	// partially registered state.
	if (kMethods == "") != (registerNatives == "") {
		return "", fmt.Errorf("internal error: inconsistent registration sections for %s",
			g.file.FullyQualifiedClass)
	}

	headerGuard := strings.ReplaceAll(g.file.FullyQualifiedClass, "/", "_") + "_JNI"

	var b strings.Builder
	fmt.Fprintf(&b, "// This file is autogenerated by\n")
	fmt.Fprintf(&b, "//     %s\n", g.opts.ScriptName)
	fmt.Fprintf(&b, "// For\n")
	fmt.Fprintf(&b, "//     %s\n\n", g.file.FullyQualifiedClass)
	fmt.Fprintf(&b, "#ifndef %s\n", headerGuard)
	fmt.Fprintf(&b, "#define %s\n\n", headerGuard)
	b.WriteString("#include <jni.h>\n\n")
	for _, include := range g.opts.Includes {
		fmt.Fprintf(&b, "#include \"%s\"\n", include)
	}
	if len(g.opts.Includes) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("#include \"base/android/jni_int_wrapper.h\"\n\n")

	b.WriteString("// Step 1: forward declarations.\n")
	b.WriteString("namespace {\n")
	b.WriteString(g.classPathDefinitions())
	b.WriteString("\n}  // namespace\n\n")

	b.WriteString(g.openNamespace())

	if constants := g.constantFields(); constants != "" {
		b.WriteString(constants)
		b.WriteString("\n")
	}

	b.WriteString("// Step 2: method stubs.\n")
	b.WriteString(methodStubs)
	b.WriteString("\n")

	b.WriteString("// Step 3: RegisterNatives.\n")
	b.WriteString(kMethods)
	b.WriteString(registerNatives)
	b.WriteString(g.closeNamespace())

	fmt.Fprintf(&b, "\n#endif  // %s\n", headerGuard)

	return WrapOutput(b.String()), nil
}

// uniqueClasses maps every class referenced by the given declarations to
// its class path, in deterministic order: the file's own class first, then
// inner class overrides in declaration order.
type classEntry struct {
	name string
	path string
}

func (g *Generator) uniqueClasses(overrides []string) []classEntry {
	entries := []classEntry{{g.className, g.file.FullyQualifiedClass}}
	seen := map[string]bool{g.className: true}
	for _, name := range overrides {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, classEntry{
			name: name,
			path: g.file.FullyQualifiedClass + "$" + name,
		})
	}
	return entries
}

func (g *Generator) referencedClasses() []classEntry {
	var overrides []string
	for _, m := range g.file.CalledByNatives {
		overrides = append(overrides, m.JavaClassName)
	}
	if g.opts.NativeExportsOptional {
		for _, n := range g.file.Natives {
			overrides = append(overrides, n.JavaClassName)
		}
	}
	return g.uniqueClasses(overrides)
}

// classPathDefinitions emits exactly one class-path constant and one
// lazily-initialized class handle per referenced class. The handle cell is
// an AtomicWord because arbitrary native threads race to initialize it;
// the first successful FindClass wins and everyone observes the published
// value.
func (g *Generator) classPathDefinitions() string {
	classes := g.referencedClasses()
	var b strings.Builder
	for _, cls := range classes {
		fmt.Fprintf(&b, "const char k%sClassPath[] = \"%s\";\n", cls.name, cls.path)
	}
	for _, cls := range classes {
		b.WriteString("// Leaking this jclass as we cannot use LazyInstance from some threads.\n")
		fmt.Fprintf(&b, "base::subtle::AtomicWord g_%s_clazz __attribute__((unused)) = 0;\n", cls.name)
		fmt.Fprintf(&b, "#define %s_clazz(env) "+
			"base::android::LazyGetClass(env, k%sClassPath, &g_%s_clazz)\n",
			cls.name, cls.name, cls.name)
	}
	return b.String()
}

func (g *Generator) openNamespace() string {
	if g.file.Namespace == "" {
		return ""
	}
	var b strings.Builder
	for _, ns := range strings.Split(g.file.Namespace, "::") {
		fmt.Fprintf(&b, "namespace %s {\n", ns)
	}
	b.WriteString("\n")
	return b.String()
}

func (g *Generator) closeNamespace() string {
	if g.file.Namespace == "" {
		return ""
	}
	namespaces := strings.Split(g.file.Namespace, "::")
	var b strings.Builder
	b.WriteString("\n")
	for i := len(namespaces) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "}  // namespace %s\n", namespaces[i])
	}
	return b.String()
}

func (g *Generator) constantFields() string {
	if len(g.file.Constants) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "enum Java_%s_constant_fields {\n", g.className)
	for _, c := range g.file.Constants {
		fmt.Fprintf(&b, "  %s = %s,\n", c.Name, c.Value)
	}
	b.WriteString("};\n")
	return b.String()
}

func (g *Generator) methodStubs() (string, error) {
	var stubs []string
	for i := range g.file.Natives {
		stubs = append(stubs, g.nativeStub(&g.file.Natives[i]))
	}
	for _, m := range g.file.CalledByNatives {
		stub, err := g.calledByNativeStub(m)
		if err != nil {
			return "", err
		}
		stubs = append(stubs, stub)
	}
	return strings.Join(stubs, "\n"), nil
}
