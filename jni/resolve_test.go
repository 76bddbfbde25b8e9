package jni

import (
	"strings"
	"testing"
)

func TestResolvePrimitives(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int", "I"},
		{"boolean", "Z"},
		{"char", "C"},
		{"short", "S"},
		{"long", "J"},
		{"double", "D"},
		{"float", "F"},
		{"byte", "B"},
		{"void", "V"},
		{"int[]", "[I"},
		{"int[][]", "[[I"},
	}

	ctx := NewContext("org/chromium/base/Foo")
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ctx.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveImplicitObjectTypes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"String", "Ljava/lang/String;"},
		{"String[]", "[Ljava/lang/String;"},
		{"Object", "Ljava/lang/Object;"},
		{"Runnable", "Ljava/lang/Runnable;"},
		{"Throwable", "Ljava/lang/Throwable;"},
		{"CharSequence", "Ljava/lang/CharSequence;"},
		{"java/lang/String", "Ljava/lang/String;"},
	}

	ctx := NewContext("org/chromium/base/Foo")
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ctx.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveGenericsAreErased(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")
	ctx.AddImport("java.util.List")

	plain, err := ctx.Resolve("List")
	if err != nil {
		t.Fatalf("Resolve(List) returned error: %v", err)
	}
	generic, err := ctx.Resolve("List<String>")
	if err != nil {
		t.Fatalf("Resolve(List<String>) returned error: %v", err)
	}
	if plain != generic {
		t.Errorf("Resolve(List) = %q but Resolve(List<String>) = %q", plain, generic)
	}
	if generic != "Ljava/util/List;" {
		t.Errorf("Resolve(List<String>) = %q, want %q", generic, "Ljava/util/List;")
	}
}

func TestResolveOwnClassAndInnerClasses(t *testing.T) {
	ctx := NewContext("org/chromium/content/ContentViewCore")
	ctx.AddInnerClass("Listener")

	tests := []struct {
		input string
		want  string
	}{
		{"ContentViewCore", "Lorg/chromium/content/ContentViewCore;"},
		{"Listener", "Lorg/chromium/content/ContentViewCore$Listener;"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ctx.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveExplicitImports(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")
	ctx.AddImport("java.util.ArrayList")
	ctx.AddImport("org.chromium.components.Widget")

	tests := []struct {
		input string
		want  string
	}{
		{"ArrayList", "Ljava/util/ArrayList;"},
		{"Widget", "Lorg/chromium/components/Widget;"},
		{"Widget.Inner", "Lorg/chromium/components/Widget$Inner;"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ctx.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveDirectlyImportedInnerClassFails(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")
	ctx.AddImport("org.chromium.components.Widget.Inner")

	_, err := ctx.Resolve("Inner")
	if err == nil {
		t.Fatal("Resolve(Inner) succeeded, want error for directly imported inner class")
	}
	if !strings.Contains(err.Error(), "cannot be imported") {
		t.Errorf("error = %q, want mention of inner class import restriction", err)
	}
}

func TestResolveDottedNameWithoutImportFails(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")

	_, err := ctx.Resolve("Outer.Inner")
	if err == nil {
		t.Fatal("Resolve(Outer.Inner) succeeded, want error")
	}
	if !strings.Contains(err.Error(), "import org.chromium.base.Outer;") {
		t.Errorf("error = %q, want suggested outer-class import", err)
	}
}

func TestResolveImplicitImportAmbiguity(t *testing.T) {
	// View exists in the bundled class list; without an import, referring
	// to it bare must fail rather than silently resolving to this package.
	ctx := NewContext("org/chromium/content/Foo")
	_, err := ctx.Resolve("View")
	if err == nil {
		t.Fatal("Resolve(View) succeeded, want ambiguity error")
	}
	if !strings.Contains(err.Error(), "import android.view.View;") {
		t.Errorf("error = %q, want suggested import of android.view.View", err)
	}

	// The same name resolves once the import makes the choice explicit.
	imported := NewContext("org/chromium/content/Foo")
	imported.AddImport("android.view.View")
	got, err := imported.Resolve("View")
	if err != nil {
		t.Fatalf("Resolve(View) with import returned error: %v", err)
	}
	if got != "Landroid/view/View;" {
		t.Errorf("Resolve(View) = %q, want %q", got, "Landroid/view/View;")
	}
}

func TestResolveSamePackageFallback(t *testing.T) {
	ctx := NewContext("org/chromium/example/jni_generator/SampleForTests")
	got, err := ctx.Resolve("TestStruct")
	if err != nil {
		t.Fatalf("Resolve(TestStruct) returned error: %v", err)
	}
	want := "Lorg/chromium/example/jni_generator/TestStruct;"
	if got != want {
		t.Errorf("Resolve(TestStruct) = %q, want %q", got, want)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")
	ctx.AddImport("java.util.List")
	ctx.AddInnerClass("Callback")

	first, err := ctx.Resolve("Callback")
	if err != nil {
		t.Fatalf("Resolve(Callback) returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := ctx.Resolve("Callback")
		if err != nil {
			t.Fatalf("Resolve(Callback) returned error: %v", err)
		}
		if got != first {
			t.Errorf("Resolve(Callback) = %q on repeat, want %q", got, first)
		}
	}
}

func TestSignature(t *testing.T) {
	ctx := NewContext("org/chromium/base/Foo")
	tests := []struct {
		name       string
		params     []string
		returnType string
		want       string
	}{
		{"empty", nil, "void", "()V"},
		{"primitives", []string{"int", "boolean"}, "long", "(IZ)J"},
		{"objects", []string{"String", "int[]"}, "String", "(Ljava/lang/String;[I)Ljava/lang/String;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.Signature(tt.params, tt.returnType)
			if err != nil {
				t.Fatalf("Signature returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Signature = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddAdditionalImport(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctx := NewContext("org/chromium/base/Foo")
		if err := ctx.AddAdditionalImport("Bar.class"); err != nil {
			t.Fatalf("AddAdditionalImport returned error: %v", err)
		}
		got, err := ctx.Resolve("Bar")
		if err != nil {
			t.Fatalf("Resolve(Bar) returned error: %v", err)
		}
		if got != "Lorg/chromium/base/Bar;" {
			t.Errorf("Resolve(Bar) = %q, want %q", got, "Lorg/chromium/base/Bar;")
		}
	})
	t.Run("missing class suffix", func(t *testing.T) {
		ctx := NewContext("org/chromium/base/Foo")
		if err := ctx.AddAdditionalImport("Bar"); err == nil {
			t.Error("AddAdditionalImport(Bar) succeeded, want error")
		}
	})
	t.Run("qualified name", func(t *testing.T) {
		ctx := NewContext("org/chromium/base/Foo")
		if err := ctx.AddAdditionalImport("other.Bar.class"); err == nil {
			t.Error("AddAdditionalImport(other.Bar.class) succeeded, want error")
		}
	})
	t.Run("already imported", func(t *testing.T) {
		ctx := NewContext("org/chromium/base/Foo")
		ctx.AddImport("org.chromium.base.Bar")
		if err := ctx.AddAdditionalImport("Bar.class"); err == nil {
			t.Error("AddAdditionalImport on imported class succeeded, want error")
		}
	})
}
