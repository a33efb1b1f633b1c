package main

import (
	"bytes"
	_ "embed"
	"fmt"
	stdhtml "html"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hesusruiz/navbox/navbox"
	"github.com/hesusruiz/navbox/pagestore"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var debug bool

//go:embed assets/output_template.html
var defaultTemplate []byte

const contentPlaceholder = "HERE_GOES_THE_CONTENT"

// newLogger sets up the logging system, with more verbose output in debug mode.
func newLogger() *zap.SugaredLogger {
	var z *zap.Logger
	var err error

	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	return z.Sugar()
}

// baseConfig returns the configuration from the file in the 'config' flag, if any.
func baseConfig(c *cli.Context) (navbox.Config, error) {
	cfg := navbox.DefaultConfig()

	configFile := c.String("config")
	if len(configFile) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	y, err := yaml.ParseYaml(string(data))
	if err != nil {
		return cfg, fmt.Errorf("malformed configuration %s: %w", configFile, err)
	}

	return cfg.Merge(y), nil
}

// applyFlags overrides the configuration with the flags set in the command line.
func applyFlags(c *cli.Context, cfg navbox.Config) navbox.Config {
	if c.IsSet("namespace") {
		cfg.Namespace = c.String("namespace")
	}
	if c.IsSet("pages") {
		cfg.Pages = c.String("pages")
	}
	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("template") {
		cfg.Template = c.String("template")
	}
	return cfg
}

// openLister returns the source of pages for namespace listings: the page index if
// there is one, or else the pages directory. The returned function releases it.
func openLister(cfg navbox.Config, sugar *zap.SugaredLogger) (navbox.PageLister, func(), error) {
	if len(cfg.DB) > 0 {
		s, err := pagestore.OpenBolt(cfg.DB, true)
		if err != nil {
			return nil, nil, err
		}
		sugar.Debugw("using page index", "db", cfg.DB)
		return s, func() { s.Close() }, nil
	}

	if len(cfg.Pages) > 0 {
		sugar.Debugw("using pages directory", "pages", cfg.Pages)
		return pagestore.NewDirStore(cfg.Pages), func() {}, nil
	}

	sugar.Debugw("no page source configured, namespace listings will be empty")
	return nil, func() {}, nil
}

// readPage reads an input file and separates its front matter, which is merged into cfg.
// It also returns the number of lines of the front matter.
func readPage(fileName string, cfg navbox.Config) (string, int, navbox.Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return "", 0, cfg, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", 0, cfg, navbox.ErrNoContent
	}

	meta, text, lineOffset, err := navbox.SplitFrontMatter(string(data))
	if err != nil {
		return "", 0, cfg, fmt.Errorf("%s: %w", fileName, err)
	}

	return text, lineOffset, cfg.Merge(meta), nil
}

// renderPage processes the navbox blocks of the input file and returns the whole HTML page.
func renderPage(c *cli.Context, inputFileName string, outputFileName string, sugar *zap.SugaredLogger) ([]byte, error) {
	ctx := c.Context

	cfg, err := baseConfig(c)
	if err != nil {
		return nil, err
	}

	text, lineOffset, cfg, err := readPage(inputFileName, cfg)
	if err != nil {
		return nil, err
	}
	cfg = applyFlags(c, cfg)

	lister, closeLister, err := openLister(cfg, sugar)
	if err != nil {
		return nil, err
	}
	defer closeLister()

	pr := &navbox.Processor{
		Lister:     lister,
		Links:      cfg.Links(),
		Log:        sugar,
		Filename:   inputFileName,
		LineOffset: lineOffset,
	}

	page := navbox.NewPage(cfg.Namespace)
	blocks := pr.Blocks(ctx, page, text)
	if len(blocks) == 0 {
		fmt.Printf("no navbox found in %v\n", inputFileName)
	}

	body := &bytes.Buffer{}
	body.WriteString(navbox.Substitute(text, blocks))

	title := path.Base(inputFileName)
	for i, b := range blocks {

		if debug {
			pp.Println(b.Doc)
		}

		if len(b.Doc.Title) > 0 && i == 0 {
			title = b.Doc.Title
		}

		// The source of each navbox, for reference
		if c.Bool("source") {
			src, err := navbox.HighlightSource(strings.TrimSpace(b.Source), cfg.CodeStyle)
			if err != nil {
				return nil, err
			}
			body.WriteString(src)
		}

		if c.Bool("outline") && !c.Bool("dryrun") {
			svg, err := navbox.OutlineSVG(ctx, b.Doc)
			if err != nil {
				return nil, fmt.Errorf("outline of navbox in line %d: %w", b.Line, err)
			}
			svgName := strings.TrimSuffix(outputFileName, path.Ext(outputFileName)) + fmt.Sprintf("_navbox%d.svg", i+1)
			if err := os.WriteFile(svgName, svg, 0664); err != nil {
				return nil, err
			}
			fmt.Printf("outline written to %v (%v)\n", svgName, humanize.Bytes(uint64(len(svg))))
		}
	}

	sugar.Debugw("page rendered", "file", inputFileName, "blocks", len(blocks), "cacheable", page.Cache)

	return applyTemplate(cfg.Template, title, body.Bytes())
}

// applyTemplate builds the full document with the template, or with the embedded one
// when templateName is empty.
func applyTemplate(templateName string, title string, content []byte) ([]byte, error) {
	tmpl := defaultTemplate
	if len(templateName) > 0 {
		var err error
		tmpl, err = os.ReadFile(templateName)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
	}

	html := bytes.Replace(tmpl, []byte(contentPlaceholder), content, 1)
	html = bytes.ReplaceAll(html, []byte("{#title}"), []byte(stdhtml.EscapeString(title)))

	return html, nil
}

func processWatch(c *cli.Context, inputFileName string, outputFileName string, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop until the user stops the program
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			fmt.Println("************Processing*************")
			html, err := renderPage(c, inputFileName, outputFileName, sugar)
			if err != nil {
				// Keep watching, the user may be fixing the file
				sugar.Errorw("processing failed", "file", inputFileName, "error", err)
			} else if err := os.WriteFile(outputFileName, html, 0664); err != nil {
				return err
			}
		}

		// Check again in one second
		select {
		case <-c.Context.Done():
			return c.Context.Err()
		case <-time.After(1 * time.Second):
		}
	}
}

// inputFile returns the input file name from the arguments, or the default one.
func inputFile(c *cli.Context) string {
	if c.Args().Present() {
		return c.Args().First()
	}

	var inputFileName = "index.txt"
	fmt.Printf("no input file provided, using \"%v\"\n", inputFileName)
	return inputFileName
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Output file name command line parameter
	outputFileName := c.String("output")

	// Dry run
	dryrun := c.Bool("dryrun")

	debug = c.Bool("debug")

	sugar := newLogger()
	defer sugar.Sync()

	inputFileName := inputFile(c)

	// Generate the output file name
	if len(outputFileName) == 0 {
		ext := path.Ext(inputFileName)
		if len(ext) == 0 {
			outputFileName = inputFileName + ".html"
		} else {
			outputFileName = strings.TrimSuffix(inputFileName, ext) + ".html"
		}
	}

	// Print a message
	if !dryrun {
		fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	} else {
		fmt.Printf("dry run: processing %v without writing output\n", inputFileName)
	}

	// This is useful for development.
	// If the user specified to watch, loop processing the input file when modified
	if c.Bool("watch") {
		return processWatch(c, inputFileName, outputFileName, sugar)
	}

	html, err := renderPage(c, inputFileName, outputFileName, sugar)
	if err != nil {
		return err
	}

	// Do nothing if flag dryrun was specified
	if dryrun {
		return nil
	}

	// Write the HTML to the output file
	err = os.WriteFile(outputFileName, html, 0664)
	if err != nil {
		return err
	}
	fmt.Printf("written %v\n", humanize.Bytes(uint64(len(html))))

	return nil
}

var sourceFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"ns"},
		Usage:   "namespace of the page, used by '!ns' without arguments",
	},
	&cli.StringFlag{
		Name:  "pages",
		Usage: "list namespaces from the wiki pages in `DIR`",
	},
	&cli.StringFlag{
		Name:  "db",
		Usage: "list namespaces from the page index in `FILE` (see the index command)",
	},
}

var renderFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write html to `FILE` (default is input file name with extension .html)",
	},
	&cli.StringFlag{
		Name:  "template",
		Usage: "use the HTML template in `FILE` (default is the embedded one)",
	},
	&cli.BoolFlag{
		Name:    "dryrun",
		Aliases: []string{"n"},
		Usage:   "do not generate output file, just process input file",
	},
	&cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "watch the file for changes",
	},
	&cli.BoolFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "add the highlighted source after each navbox",
	},
	&cli.BoolFlag{
		Name:  "outline",
		Usage: "write an SVG outline of each navbox next to the output file",
	},
}, sourceFlags...)

var globalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "run in debug mode",
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "read the configuration from the YAML `FILE`",
	},
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:     "navbox",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "render the navigation boxes of a wiki page as HTML",
		UsageText: "navbox [options] [INPUT_FILE] (default input file is index.txt)",
		Writer:    stdout,
		Action:    process,
		Flags:     append(globalFlags, renderFlags...),
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "process a page and write the HTML (the default)",
				ArgsUsage: "[INPUT_FILE]",
				Flags:     renderFlags,
				Action:    process,
			},
			{
				Name:      "dump",
				Usage:     "print the parsed navbox blocks of a page as YAML",
				ArgsUsage: "[INPUT_FILE]",
				Flags:     sourceFlags,
				Action:    dump,
			},
			{
				Name:      "list",
				Usage:     "print the pages of a namespace",
				ArgsUsage: "NAMESPACE",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:    "long",
						Aliases: []string{"l"},
						Usage:   "print the size of each page source (needs --db)",
					},
				}, sourceFlags...),
				Action: list,
			},
			{
				Name:      "index",
				Usage:     "build the page index from a pages directory",
				ArgsUsage: "PAGES_DIR DB_FILE",
				Action:    index,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "navbox:", err)
		os.Exit(1)
	}
}
