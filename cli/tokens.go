package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/heathj/htmltok/parser"
)

var (
	tokensOutput   string
	tokensComments bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of an HTML document",
	Long: `Print one line per token: text runs, tags and entities, in source order.
Comments and processing instructions are only shown with --comments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", "text", "output format: text or json")
	tokensCmd.Flags().BoolVar(&tokensComments, "comments", false, "include comments and processing instructions")
	rootCmd.AddCommand(tokensCmd)
}

type jsonToken struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Full        string `json:"full"`
	Closing     bool   `json:"closing,omitempty"`
	SelfClosing bool   `json:"selfClosing,omitempty"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	var write func(io.Writer, parser.Token) error
	switch tokensOutput {
	case "text":
		write = writeTokenText
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		write = func(_ io.Writer, t parser.Token) error {
			return enc.Encode(jsonToken{
				Type:        t.Type.String(),
				Name:        t.Name,
				Full:        t.Full,
				Closing:     t.Closing,
				SelfClosing: t.SelfClosing,
			})
		}
	default:
		return errors.Errorf("unknown output format %q, expected text or json", tokensOutput)
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	out := cmd.OutOrStdout()
	return parser.Tokenize(in, settings.ParserConfig(), func(t parser.Token) error {
		if t.Type == parser.CommentToken && !tokensComments {
			return nil
		}
		return write(out, t)
	})
}

func writeTokenText(w io.Writer, t parser.Token) error {
	var err error
	switch t.Type {
	case parser.TagToken:
		_, err = fmt.Fprintf(w, "%s\t%s\t%q\tclosing=%t\n", t.Type, t.Name, t.Full, t.Closing)
	case parser.EntityToken:
		_, err = fmt.Fprintf(w, "%s\t%s\t%q\n", t.Type, t.Name, t.Full)
	default:
		_, err = fmt.Fprintf(w, "%s\t%q\n", t.Type, t.Full)
	}
	return err
}
