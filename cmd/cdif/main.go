package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/danderson/cdif/cborcdc"
	"github.com/danderson/cdif/internal/cdifgen"
	"github.com/danderson/cdif/jsoncdc"
	"github.com/kr/pretty"
)

var globalArgs struct {
	Format string `flag:"format,default=auto,Input format: json, cbor or auto"`
}

func main() {
	root := &command.C{
		Name:     "cdif",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "dump",
				Usage: "dump [file]",
				Help: `Print Cadence values as a tree.

Reads JSON-Cadence or CBOR encoded values from the given file, or
standard input if no file or "-" is given. CBOR input may hold a
sequence of values.
`,
				SetFlags: command.Flags(flax.MustBind, &dumpArgs),
				Run:      runDump,
			},
			{
				Name:  "convert",
				Usage: "convert [file]",
				Help: `Convert Cadence values between JSON-Cadence and CBOR.

The converted values are written to standard output, or the file named
by --out.
`,
				SetFlags: command.Flags(flax.MustBind, &convertArgs),
				Run:      runConvert,
			},
			{
				Name:     "generate",
				Usage:    "generate schema.jsonc",
				Help:     "Generate Go types and converters from a type schema.",
				SetFlags: command.Flags(flax.MustBind, &generateArgs),
				Run:      command.Adapt(runGenerate),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

var dumpArgs struct {
	Debug bool `flag:"debug,Print the raw structure of each value"`
	Diag  bool `flag:"diag,Print the CBOR diagnostic notation of each value"`
}

func runDump(env *command.Env) error {
	path, err := optionalArg(env)
	if err != nil {
		return err
	}
	fields, err := readFields(path, globalArgs.Format)
	if err != nil {
		return err
	}
	out := &indenter{out: os.Stdout}
	for _, f := range fields {
		switch {
		case dumpArgs.Debug:
			pretty.Println(f)
		case dumpArgs.Diag:
			bs, err := cborcdc.Encode(f)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", f.Kind(), err)
			}
			diag, err := cborcdc.Diagnose(bs)
			if err != nil {
				return err
			}
			fmt.Println(diag)
		default:
			printTree(out, 0, "", f)
		}
	}
	return nil
}

var convertArgs struct {
	To     string `flag:"to,default=json,Output format: json or cbor"`
	Indent string `flag:"indent,JSON indentation string"`
	Out    string `flag:"out,default=-,Output file path"`
}

func runConvert(env *command.Env) error {
	path, err := optionalArg(env)
	if err != nil {
		return err
	}
	if convertArgs.To != "json" && convertArgs.To != "cbor" {
		return env.Usagef("unknown output format %q", convertArgs.To)
	}
	fields, err := readFields(path, globalArgs.Format)
	if err != nil {
		return err
	}

	out := os.Stdout
	if convertArgs.Out != "-" {
		f, err := os.Create(convertArgs.Out)
		if err != nil {
			return fmt.Errorf("creating output %s: %w", convertArgs.Out, err)
		}
		defer f.Close()
		out = f
	}

	if convertArgs.To == "cbor" {
		enc := cborcdc.NewEncoder(out)
		for _, f := range fields {
			if err := enc.Encode(f); err != nil {
				return err
			}
		}
	} else {
		for _, f := range fields {
			bs, err := jsoncdc.EncodeIndent(f, convertArgs.Indent)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "%s\n", bs); err != nil {
				return err
			}
		}
	}
	if out != os.Stdout {
		return out.Close()
	}
	return nil
}

var generateArgs struct {
	PackageName string `flag:"package,Package name to output, overriding the schema's"`
	OutFile     string `flag:"out,default=gen.go,Output file path"`
}

func runGenerate(env *command.Env, schemaPath string) error {
	bs, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}
	schema, err := cdifgen.ParseSchema(bs)
	if err != nil {
		return fmt.Errorf("%s: %w", schemaPath, err)
	}
	if generateArgs.PackageName != "" {
		schema.Package = generateArgs.PackageName
	}
	code, err := cdifgen.Generate(schema)
	if err != nil {
		return fmt.Errorf("generating code for %s: %w", schemaPath, err)
	}
	if err := os.WriteFile(generateArgs.OutFile, []byte(code), 0644); err != nil {
		return fmt.Errorf("writing generated code: %w", err)
	}
	fmt.Printf("Wrote generated package %s to %s\n", schema.Package, generateArgs.OutFile)
	return nil
}
