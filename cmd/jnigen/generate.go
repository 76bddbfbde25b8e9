package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnigen/gen"
	"github.com/dhamidi/jnigen/java"
)

var log = commonlog.GetLogger("jnigen")

type generateOptions struct {
	InputFile             string
	JarFile               string
	OutputDir             string
	Namespace             string
	Includes              string
	PtrType               string
	Javap                 string
	NativeExportsOptional bool
	Optimize              bool
	Depfile               string
}

func runGenerate(opts *generateOptions) error {
	if opts.InputFile == "" {
		return fmt.Errorf("--input-file is required")
	}
	if opts.PtrType != "int" && opts.PtrType != "long" {
		return fmt.Errorf("invalid --ptr-type %q (expected int or long)", opts.PtrType)
	}

	inputFile := opts.InputFile
	if opts.JarFile != "" {
		if opts.OutputDir == "" {
			return fmt.Errorf("--jar-file requires --output-dir")
		}
		extracted, err := extractJarInputFile(opts.JarFile, opts.InputFile, opts.OutputDir)
		if err != nil {
			return fmt.Errorf("extract from jar: %w", err)
		}
		inputFile = extracted
	}

	// The header is rendered completely before anything touches the
	// output path, so a failing input never leaves a partial file.
	content, err := generateContent(inputFile, opts)
	if err != nil {
		return err
	}

	if opts.OutputDir == "" {
		fmt.Print(content)
		return nil
	}

	rootName := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	outputFile := filepath.Join(opts.OutputDir, rootName+"_jni.h")
	if err := writeOutput(outputFile, content, opts.Optimize); err != nil {
		return err
	}

	if opts.Depfile != "" {
		depline := fmt.Sprintf("%s: %s\n", outputFile, opts.InputFile)
		if err := os.WriteFile(opts.Depfile, []byte(depline), 0o644); err != nil {
			return fmt.Errorf("write depfile: %w", err)
		}
	}
	return nil
}

func generateContent(inputFile string, opts *generateOptions) (string, error) {
	var (
		file *java.File
		err  error
	)
	parseOpts := java.Options{PtrType: opts.PtrType, Namespace: opts.Namespace}

	if filepath.Ext(inputFile) == ".class" {
		log.Infof("decompiling %s", inputFile)
		listing, javapErr := runJavap(opts.Javap, inputFile)
		if javapErr != nil {
			return "", javapErr
		}
		file, err = java.ParseJavap(listing, parseOpts)
	} else {
		contents, readErr := os.ReadFile(inputFile)
		if readErr != nil {
			return "", fmt.Errorf("read input: %w", readErr)
		}
		file, err = java.ParseSource(inputFile, contents, parseOpts)
	}
	if err != nil {
		return "", err
	}
	log.Infof("extracted %d natives, %d called-by-natives from %s",
		len(file.Natives), len(file.CalledByNatives), file.FullyQualifiedClass)

	genOpts := gen.Options{
		ScriptName:            "jnigen",
		NativeExportsOptional: opts.NativeExportsOptional,
	}
	if opts.Includes != "" {
		genOpts.Includes = strings.Split(opts.Includes, ",")
	}
	return gen.New(file, genOpts).Generate()
}

// runJavap shells out to javap for compiled input. The verbose listing
// carries the authoritative method descriptors.
func runJavap(javap, classFile string) (string, error) {
	className := strings.TrimSuffix(filepath.Base(classFile), filepath.Ext(classFile))
	cmd := exec.Command(javap, "-c", "-verbose", "-s", className)
	cmd.Dir = filepath.Dir(classFile)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("run %s on %s: %w", javap, classFile, err)
	}
	return string(out), nil
}

// writeOutput writes the header, creating the directory tree as needed.
// With skipUnchanged, an existing byte-identical file is left untouched
// so downstream build steps see no new timestamp.
func writeOutput(outputFile, content string, skipUnchanged bool) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if skipUnchanged {
		existing, err := os.ReadFile(outputFile)
		if err == nil && string(existing) == content {
			log.Infof("%s is up to date", outputFile)
			return nil
		}
	}
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Infof("wrote %s", outputFile)
	return nil
}

// extractJarInputFile copies one file out of a jar into the output
// directory tree, preserving its relative path, and returns the extracted
// path.
func extractJarInputFile(jarFile, inputFile, outDir string) (string, error) {
	r, err := zip.OpenReader(jarFile)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", jarFile, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != inputFile {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s in %s: %w", inputFile, jarFile, err)
		}
		defer rc.Close()

		extractedDir := filepath.Join(outDir, filepath.Dir(inputFile))
		if err := os.MkdirAll(extractedDir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", extractedDir, err)
		}
		extractedFile := filepath.Join(extractedDir, filepath.Base(inputFile))
		w, err := os.Create(extractedFile)
		if err != nil {
			return "", err
		}
		defer w.Close()
		if _, err := io.Copy(w, rc); err != nil {
			return "", fmt.Errorf("extract %s: %w", inputFile, err)
		}
		return extractedFile, nil
	}
	return "", fmt.Errorf("%s not found in %s", inputFile, jarFile)
}
