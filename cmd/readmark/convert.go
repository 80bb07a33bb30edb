package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/readmark"
	"github.com/gaurav-prasanna/readmark/core"
	"github.com/gaurav-prasanna/readmark/core/output"
	"github.com/gaurav-prasanna/readmark/core/render"
)

var (
	flagType    string
	flagToFile  string
	flagImages  string
	flagGFM     string
	flagDataURL bool
	flagTidy    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|html>",
	Short: "Convert a URL or raw HTML to Markdown",
	Long: `Convert fetches a web page (or takes raw HTML with --type html),
extracts the main content and renders it as Markdown with a metadata
header. The --toFile extension selects the output format: .md (default),
.pdf, or .json.

Examples:
  readmark convert https://example.com/post
  readmark convert https://example.com/post --toFile post.md
  readmark convert https://example.com/post --toFile post.pdf --images none
  readmark convert --type html '<article><p>hi</p></article>'`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagType, "type", "url", "Input type: url or html")
	convertCmd.Flags().StringVar(&flagToFile, "toFile", "", "Write output to this file or directory instead of stdout")
	convertCmd.Flags().StringVar(&flagImages, "images", "all", "Image retention: all, alt, alt-p, none")
	convertCmd.Flags().StringVar(&flagGFM, "gfm", "on", "GFM extensions: on, off, no-tables")
	convertCmd.Flags().BoolVar(&flagDataURL, "data-url-placeholders", false, "Replace data-URL images with stable placeholder references")
	convertCmd.Flags().BoolVar(&flagTidy, "tidy", false, "Apply the Markdown tidy pass to the rendered body")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	applyConfigDefaults(cmd)

	opts, err := buildOptions()
	if err != nil {
		return err
	}
	conv := readmark.New(opts)

	var result *readmark.Result
	switch flagType {
	case "url":
		parsed, perr := url.Parse(input)
		if perr != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", input)
		}
		result, err = conv.ConvertURL(cmd.Context(), input)
	case "html":
		result, err = conv.Convert(input, "")
	default:
		return fmt.Errorf("invalid --type %q: must be url or html", flagType)
	}
	if err != nil {
		return err
	}

	if flagTidy {
		result.Markdown = readmark.TidyMarkdown(result.Markdown)
	}

	if flagToFile == "" {
		fmt.Fprintln(os.Stdout, result.Output())
		return nil
	}

	data, ext, err := renderTarget(flagToFile, result)
	if err != nil {
		return err
	}
	path, err := output.Write(flagToFile, result.Metadata.SourceURL, data, ext)
	if err != nil {
		return err
	}
	color.Green("✓ Written: %s", path)
	return nil
}

// applyConfigDefaults lets .readmark.yaml override flag defaults without
// beating explicit command-line values.
func applyConfigDefaults(cmd *cobra.Command) {
	for _, key := range []string{"images", "gfm"} {
		if !cmd.Flags().Changed(key) && viper.IsSet(key) {
			_ = cmd.Flags().Set(key, viper.GetString(key))
		}
	}
	if !cmd.Flags().Changed("data-url-placeholders") && viper.IsSet("data-url-placeholders") {
		flagDataURL = viper.GetBool("data-url-placeholders")
	}
}

func buildOptions() (readmark.Options, error) {
	opts := readmark.Options{DataURLPlaceholders: flagDataURL}

	switch flagImages {
	case "all", "":
		opts.Images = core.ImagesAll
	case "none":
		opts.Images = core.ImagesNone
	case "alt":
		opts.Images = core.ImagesAlt
	case "alt-p":
		opts.Images = core.ImagesAltParen
	default:
		return opts, fmt.Errorf("invalid --images %q: must be all, alt, alt-p or none", flagImages)
	}

	switch flagGFM {
	case "on", "":
		opts.GFM = core.GFMEnabled
	case "off":
		opts.GFM = core.GFMDisabled
	case "no-tables":
		opts.GFM = core.GFMNoTables
	default:
		return opts, fmt.Errorf("invalid --gfm %q: must be on, off or no-tables", flagGFM)
	}

	return opts, nil
}

// renderTarget picks the output renderer from the target's extension.
// Directories (and anything without a known extension) get Markdown.
func renderTarget(target string, result *readmark.Result) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".pdf":
		data, err := render.RenderPDF(result.Markdown, result.Metadata)
		return data, ".pdf", err
	case ".json":
		data, err := render.RenderJSON(result.Markdown, result.Metadata)
		return data, ".json", err
	default:
		return []byte(result.Output()), ".md", nil
	}
}
