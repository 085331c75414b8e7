// Command mdtohtml renders a Markdown file (or stdin) to HTML on stdout,
// exercising the markdown package end to end.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenmat-go/markdown"
)

type options struct {
	tables         bool
	fencedCode     bool
	autolink       bool
	strikethrough  bool
	superscript    bool
	noIntraEmph    bool
	laxHTMLBlocks  bool
	smartypants    bool
	toc            bool
	xhtml          bool
	hardWrap       bool
	safelink       bool
	skipHTML       bool
	skipImages     bool
	githubBlockcode bool
	title          string
	css            string
	verbose        bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mdtohtml [file]",
		Short: "Render Markdown to HTML",
		Long:  "mdtohtml renders a Markdown document to HTML. With no file argument it reads from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.tables, "tables", true, "parse pipe tables")
	flags.BoolVar(&opts.fencedCode, "fenced-code", true, "parse fenced code blocks")
	flags.BoolVar(&opts.autolink, "autolink", true, "autodetect bare URLs and emails")
	flags.BoolVar(&opts.strikethrough, "strikethrough", true, "parse ~~strikethrough~~")
	flags.BoolVar(&opts.superscript, "superscript", false, "parse ^superscript and ^(superscript text)")
	flags.BoolVar(&opts.noIntraEmph, "no-intra-emphasis", true, "ignore emphasis markers inside words")
	flags.BoolVar(&opts.laxHTMLBlocks, "lax-html-blocks", false, "loosen HTML block recognition")
	flags.BoolVar(&opts.smartypants, "smartypants", false, "typographic substitution (quotes, dashes, ellipses)")
	flags.BoolVar(&opts.toc, "toc", false, "emit a table of contents instead of the document body")
	flags.BoolVar(&opts.xhtml, "xhtml", false, "self-close void elements as XHTML")
	flags.BoolVar(&opts.hardWrap, "hard-wrap", false, "accepted for compatibility; no effect (a <br> needs two trailing spaces)")
	flags.BoolVar(&opts.safelink, "safelink", false, "leave links unrendered (as literal text) whose scheme isn't http(s)/ftp/mailto")
	flags.BoolVar(&opts.skipHTML, "skip-html", false, "strip raw HTML from the input")
	flags.BoolVar(&opts.skipImages, "skip-images", false, "leave images unrendered (their Markdown source prints as text)")
	flags.BoolVar(&opts.githubBlockcode, "github-blockcode", false, "render fenced code language as a GitHub-style class")
	flags.StringVar(&opts.title, "title", "", "wrap output in a standalone document with this title")
	flags.StringVar(&opts.css, "css", "", "stylesheet href for --title's document wrapper")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log a diagnostic line before rendering")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	input, err := readInput(args)
	if err != nil {
		return fmt.Errorf("mdtohtml: %w", err)
	}

	extensions := buildExtensions(opts)
	flags := buildHTMLFlags(opts)

	if opts.verbose {
		log.Printf("mdtohtml: %d bytes in, extensions=%#x, flags=%#x", len(input), extensions, flags)
	}

	var renderer *markdown.Renderer
	if opts.toc {
		renderer = markdown.NewTOCRenderer()
	} else {
		renderer = markdown.NewHTMLRenderer(markdown.HTMLRendererParameters{
			Flags: flags,
			Title: opts.title,
			CSS:   opts.css,
		})
	}

	output := markdown.Markdown(input, renderer, extensions)
	_, err = cmd.OutOrStdout().Write(output)
	return err
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func buildExtensions(opts *options) markdown.Extensions {
	var ext markdown.Extensions
	if opts.noIntraEmph {
		ext |= markdown.NoIntraEmphasis
	}
	if opts.tables {
		ext |= markdown.Tables
	}
	if opts.fencedCode {
		ext |= markdown.FencedCode
	}
	if opts.autolink {
		ext |= markdown.Autolink
	}
	if opts.strikethrough {
		ext |= markdown.Strikethrough
	}
	if opts.laxHTMLBlocks {
		ext |= markdown.LaxHTMLBlocks
	}
	if opts.superscript {
		ext |= markdown.Superscript
	}
	return ext
}

func buildHTMLFlags(opts *options) markdown.HTMLFlags {
	var flags markdown.HTMLFlags
	if opts.xhtml {
		flags |= markdown.UseXHTML
	}
	if opts.smartypants {
		flags |= markdown.Smartypants | markdown.SmartypantsFractions | markdown.SmartypantsLatexDashes
	}
	if opts.toc {
		flags |= markdown.TOC
	}
	if opts.hardWrap {
		flags |= markdown.HardWrap
	}
	if opts.safelink {
		flags |= markdown.Safelink
	}
	if opts.skipHTML {
		flags |= markdown.SkipHTML
	}
	if opts.skipImages {
		flags |= markdown.SkipImages
	}
	if opts.githubBlockcode {
		flags |= markdown.GithubBlockcode
	}
	return flags
}
