package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	opts := &generateOptions{}
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "jnigen",
		Short: "Generate JNI binding headers from annotated Java sources",
		Long: `jnigen parses the native method declarations of a single Java source
file (or a javap listing of a compiled class) and writes a C++ header with
everything needed to call them: forward declarations, call stubs, optional
registration tables, and lazy stubs for methods called from native code.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runGenerate(opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.InputFile, "input-file", "",
		"Java source file or javap listing to process")
	flags.StringVar(&opts.JarFile, "jar-file", "",
		"jar file to extract --input-file from before processing")
	flags.StringVar(&opts.OutputDir, "output-dir", "",
		"directory for the generated header (stdout when empty)")
	flags.StringVarP(&opts.Namespace, "namespace", "n", "",
		"output namespace when the source carries no @JNINamespace")
	flags.StringVar(&opts.Includes, "includes", "",
		"comma-separated extra header files to include")
	flags.StringVar(&opts.PtrType, "ptr-type", "int",
		"Java type carrying native pointers: int (32-bit) or long (64-bit)")
	flags.StringVar(&opts.Javap, "javap", "javap",
		"path to the javap command")
	flags.BoolVar(&opts.NativeExportsOptional, "native-exports-optional", false,
		"emit explicit registration tables alongside the exported stubs")
	flags.BoolVar(&opts.Optimize, "optimize", false,
		"skip rewriting the output file when its content is unchanged")
	flags.StringVar(&opts.Depfile, "depfile", "",
		"write a Make-syntax dependency file after generation")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase log verbosity")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
