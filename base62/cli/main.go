package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/presbrey/base62kit/base62"
	"github.com/presbrey/base62kit/tokens"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "base62",
		Short:         "Base62 encoding and decoding utility",
		Long:          `A command-line utility for encoding and decoding integers and data using the URL-safe Base62 encoding scheme.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)

	encodeCmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode data to Base62",
		Long:  `Encode data from stdin or a file to Base62 format.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base62.EncodeBytes(input))
			return nil
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode Base62 data",
		Long:  `Decode Base62 data from stdin or a file to its original format.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			decoded, err := base62.DecodeBytes(trimNewlines(string(input)))
			if err != nil {
				return fmt.Errorf("error decoding Base62 data: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(decoded)
			return err
		},
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, newIntCmd(), newTokenCmd())
	return rootCmd
}

func newIntCmd() *cobra.Command {
	intCmd := &cobra.Command{
		Use:   "int",
		Short: "Encode and decode unsigned 64-bit integers",
	}

	intCmd.AddCommand(&cobra.Command{
		Use:   "encode <n>...",
		Short: "Encode decimal integers to Base62",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				v, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid integer %q: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), base62.EncodeUint64(v))
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "decode <text>...",
		Short: "Decode Base62 integers to decimal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				v, err := base62.DecodeUint64(arg)
				if err != nil {
					return fmt.Errorf("error decoding %q: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	})

	return intCmd
}

func newTokenCmd() *cobra.Command {
	var (
		uuidv7    bool
		random    int
		sequence  int64
		prefix    string
		suffix    string
		delimiter string
		count     int
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Generate Base62 identifier tokens",
		Long:  `Generate URL-safe tokens from UUIDv4 (default), UUIDv7, random bytes or a counter.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := tokens.New().
				Delimiter(delimiter).
				WithPrefix(prefix).
				WithSuffix(suffix)

			switch {
			case cmd.Flags().Changed("sequence"):
				if sequence < 0 {
					return fmt.Errorf("sequence start must not be negative")
				}
				gen.Sequence(uint64(sequence))
			case random > 0:
				gen.Random(random)
			case uuidv7:
				gen.UUIDv7()
			}

			for i := 0; i < count; i++ {
				token, err := gen.Generate()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}

	flags := tokenCmd.Flags()
	flags.BoolVar(&uuidv7, "uuid7", false, "encode time-ordered UUIDv7 values")
	flags.IntVarP(&random, "random", "r", 0, "encode this many random bytes")
	flags.Int64Var(&sequence, "sequence", 0, "encode a counter starting at this value")
	flags.StringVar(&prefix, "prefix", "", "prefix to add to each token")
	flags.StringVar(&suffix, "suffix", "", "suffix to add to each token")
	flags.StringVar(&delimiter, "delim", "_", "separator between prefix, token and suffix")
	flags.IntVarP(&count, "count", "c", 1, "number of tokens to generate")

	return tokenCmd
}

// readInput reads the named file, or stdin when no file is given
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
		return input, nil
	}

	input, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", args[0], err)
	}
	return input, nil
}

// trimNewlines removes trailing newlines from a string
func trimNewlines(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
