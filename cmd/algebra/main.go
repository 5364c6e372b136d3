package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mveres/algebra/pkg/ast"
	"github.com/mveres/algebra/pkg/cipher"
	"github.com/mveres/algebra/pkg/eval"
	"github.com/mveres/algebra/pkg/expand"
	"github.com/mveres/algebra/pkg/intbig"
	"github.com/mveres/algebra/pkg/latex"
	"github.com/mveres/algebra/pkg/lexer"
	"github.com/mveres/algebra/pkg/multinode"
	"github.com/mveres/algebra/pkg/natbig"
	"github.com/mveres/algebra/pkg/parser"
	"github.com/mveres/algebra/pkg/ratbig"
	"github.com/mveres/algebra/pkg/store"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping the stages of the expression pipeline
var (
	dTokens bool
	dAst    bool
	dLatex  bool
	dMulti  bool
	dSorted bool
	dExpand bool
)

// Engine configuration flags
var (
	multiCharVars bool
	roundDecimals int
	degrees       bool
	evalBindings  string
)

// Bignum configuration flags
var (
	radix     int
	cipherKey int
	storePath string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash debug flags like -dast for convenience
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "algebra: %v\n", err)
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that accept single-dash style
var debugFlagNames = []string{"dtokens", "dast", "dlatex", "dmulti", "dsorted", "dexpand"}

// normalizeFlags converts single-dash debug flags like -dast to --dast
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func resetFlags() {
	dTokens, dAst, dLatex, dMulti, dSorted, dExpand = false, false, false, false, false, false
	multiCharVars, degrees = false, false
	roundDecimals = -1
	evalBindings = ""
	radix = 1000
	cipherKey = 317
	storePath = "objects.yaml"
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	resetFlags()

	rootCmd := &cobra.Command{
		Use:   "algebra [expression]",
		Short: "algebra is a computer-algebra substrate for exact bignums and expression rewriting",
		Long: `algebra parses mathematical expressions into a binary syntax tree
and can evaluate them, render them as LaTeX, normalize them into the
multinode form and apply distributive expansion. The bignum
subcommands do exact natural, integer and rational arithmetic in a
configurable power-of-ten radix.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			return runPipeline(args[0], out)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump the token stream")
	rootCmd.Flags().BoolVar(&dAst, "dast", false, "Dump the binary syntax tree")
	rootCmd.Flags().BoolVar(&dLatex, "dlatex", false, "Render the expression as LaTeX")
	rootCmd.Flags().BoolVar(&dMulti, "dmulti", false, "Render the multinode form as LaTeX")
	rootCmd.Flags().BoolVar(&dSorted, "dsorted", false, "Render the canonically sorted binary form as LaTeX")
	rootCmd.Flags().BoolVar(&dExpand, "dexpand", false, "Render the distributive expansion as LaTeX")

	rootCmd.PersistentFlags().BoolVar(&multiCharVars, "multichar", false, "Lowercase runs are whole variable names")
	rootCmd.PersistentFlags().IntVar(&roundDecimals, "round", -1, "Round numeric literals to this many decimals")
	rootCmd.PersistentFlags().BoolVar(&degrees, "degrees", false, "Trigonometric functions use degrees")
	rootCmd.Flags().StringVar(&evalBindings, "eval", "", "Evaluate with bindings, e.g. x=1,y=2.5")

	rootCmd.AddCommand(newNatCmd(out))
	rootCmd.AddCommand(newIntCmd(out))
	rootCmd.AddCommand(newRatCmd(out))
	rootCmd.AddCommand(newCipherCmd(out))
	rootCmd.AddCommand(newStoreCmd(out))

	return rootCmd
}

func lexerConfig() lexer.Config {
	return lexer.Config{MultiCharVars: multiCharVars, RoundDecimals: roundDecimals}
}

// runPipeline parses the expression once and prints whatever stages
// the debug flags ask for. With no flags it evaluates when bindings
// were given or the expression has no variables, and otherwise prints
// the LaTeX rendering.
func runPipeline(input string, out io.Writer) error {
	if dTokens {
		toks, err := lexer.New(input, lexerConfig()).Tokens()
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Fprintf(out, "%d\t%s\t%s\n", tok.Pos, tok.Type, tok.Literal)
		}
		return nil
	}

	root, vars, err := parser.New(lexerConfig()).Parse(input)
	if err != nil {
		return err
	}

	if dAst {
		ast.Fprint(out, root)
		return nil
	}

	if dMulti || dSorted || dExpand {
		m, err := multinode.FromBinary(root)
		if err != nil {
			return err
		}
		switch {
		case dExpand:
			m, err = expand.Expand(m)
			if err != nil {
				return err
			}
			s, err := latex.EmitMulti(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		case dSorted:
			bin, err := multinode.ToBinary(m)
			if err != nil {
				return err
			}
			s, err := latex.Emit(bin)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		default:
			s, err := latex.EmitMulti(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		}
		return nil
	}

	if dLatex {
		return emitLatex(root, out)
	}

	// Evaluate when bindings were given or the expression is closed;
	// otherwise fall back to the LaTeX rendering.
	if evalBindings != "" || len(vars) == 0 {
		binds, err := parseBindings(evalBindings)
		if err != nil {
			return err
		}
		if err := eval.ValidateBindings(vars, binds); err != nil {
			return err
		}
		ev := eval.Evaluator{Degrees: degrees}
		v, err := ev.Eval(root, binds)
		if err != nil {
			return err
		}
		if v.IsBool {
			fmt.Fprintln(out, v.Bool)
		} else {
			fmt.Fprintln(out, strconv.FormatFloat(v.Num, 'g', -1, 64))
		}
		return nil
	}

	return emitLatex(root, out)
}

func emitLatex(root ast.Expr, out io.Writer) error {
	s, err := latex.Emit(root)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	return nil
}

// parseBindings reads a "name=value,name=value" list.
func parseBindings(s string) (map[string]any, error) {
	binds := make(map[string]any)
	if s == "" {
		return binds, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("binding %q is not name=value", part)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("binding %q has a non-numeric value", part)
		}
		binds[strings.TrimSpace(name)] = f
	}
	return binds, nil
}

func newNatCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nat <add|sub|mul|div|gcd> <a> <b>",
		Short: "Exact natural-number arithmetic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := natbig.New(radix)
			if err != nil {
				return err
			}
			u, err := a.Parse(args[1])
			if err != nil {
				return err
			}
			v, err := a.Parse(args[2])
			if err != nil {
				return err
			}
			switch args[0] {
			case "add":
				fmt.Fprintln(out, a.Render(a.Add(u, v)))
			case "sub":
				if a.Cmp(u, v) < 0 {
					return errors.New("nat sub: minuend is smaller than subtrahend")
				}
				fmt.Fprintln(out, a.Render(a.Sub(u, v)))
			case "mul":
				fmt.Fprintln(out, a.Render(a.Mul(u, v)))
			case "div":
				if v.IsZero() {
					return errors.New("nat div: division by zero")
				}
				q, r := a.DivMod(u, v)
				fmt.Fprintf(out, "%s %s\n", a.Render(q), a.Render(r))
			case "gcd":
				fmt.Fprintln(out, a.Render(a.GCD(u, v)))
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&radix, "radix", 1000, "Power-of-ten radix for digit storage")
	return cmd
}

func newIntCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "int <add|sub|mul|div> <a> <b>",
		Short: "Exact signed-integer arithmetic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := intbig.New(radix)
			if err != nil {
				return err
			}
			u, err := a.Parse(args[1])
			if err != nil {
				return err
			}
			v, err := a.Parse(args[2])
			if err != nil {
				return err
			}
			switch args[0] {
			case "add":
				fmt.Fprintln(out, a.Render(a.Add(u, v)))
			case "sub":
				fmt.Fprintln(out, a.Render(a.Sub(u, v)))
			case "mul":
				fmt.Fprintln(out, a.Render(a.Mul(u, v)))
			case "div":
				if v.IsZero() {
					return errors.New("int div: division by zero")
				}
				q, r := a.DivMod(u, v)
				fmt.Fprintf(out, "%s %s\n", a.Render(q), a.Render(r))
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&radix, "radix", 1000, "Power-of-ten radix for digit storage")
	return cmd
}

func newRatCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rat <add|sub|mul|div|pow> <a> <b>",
		Short: "Exact rational arithmetic on Z/N literals",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ratbig.New(radix)
			if err != nil {
				return err
			}
			u, err := a.Parse(args[1])
			if err != nil {
				return err
			}
			if args[0] == "pow" {
				n, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("pow exponent %q is not an integer", args[2])
				}
				r, err := a.Pow(u, n)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, a.Render(r))
				return nil
			}
			v, err := a.Parse(args[2])
			if err != nil {
				return err
			}
			switch args[0] {
			case "add":
				fmt.Fprintln(out, a.Render(a.Add(u, v)))
			case "sub":
				fmt.Fprintln(out, a.Render(a.Sub(u, v)))
			case "mul":
				fmt.Fprintln(out, a.Render(a.Mul(u, v)))
			case "div":
				r, err := a.Div(u, v)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, a.Render(r))
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&radix, "radix", 1000, "Power-of-ten radix for digit storage")
	return cmd
}

func newCipherCmd(out io.Writer) *cobra.Command {
	encCmd := &cobra.Command{
		Use:   "encrypt <text>",
		Short: "Encrypt a short text with the digit-packing cipher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cipher.New(radix, cipherKey)
			if err != nil {
				return err
			}
			enc, err := c.Encrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, enc)
			return nil
		},
	}
	decCmd := &cobra.Command{
		Use:   "decrypt <ciphertext>",
		Short: "Decrypt a digit-packing ciphertext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cipher.New(radix, cipherKey)
			if err != nil {
				return err
			}
			dec, err := c.Decrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, dec)
			return nil
		},
	}
	group := &cobra.Command{
		Use:   "cipher",
		Short: "Digit-packing text encryption toy",
	}
	group.PersistentFlags().IntVar(&radix, "radix", 1000, "Power-of-ten radix, above 255")
	group.PersistentFlags().IntVar(&cipherKey, "key", 317, "Single-digit integer key")
	group.AddCommand(encCmd)
	group.AddCommand(decCmd)
	return group
}

func newStoreCmd(out io.Writer) *cobra.Command {
	group := &cobra.Command{
		Use:   "store",
		Short: "Persist named expressions and bignums",
	}
	group.PersistentFlags().StringVar(&storePath, "file", "objects.yaml", "Store file path")

	group.AddCommand(&cobra.Command{
		Use:   "set <name> <kind> <value>",
		Short: "Store an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(storePath)
			if err != nil {
				return err
			}
			return s.Put(args[0], store.Entry{Kind: args[1], Value: args[2]})
		},
	})
	group.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(storePath)
			if err != nil {
				return err
			}
			e, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", e.Kind, e.Value)
			return nil
		},
	})
	group.AddCommand(&cobra.Command{
		Use:   "del <name>",
		Short: "Delete a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(storePath)
			if err != nil {
				return err
			}
			return s.Delete(args[0])
		},
	})
	group.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored object names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(storePath)
			if err != nil {
				return err
			}
			for _, name := range s.Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	})
	return group
}
