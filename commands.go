package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hesusruiz/navbox/navbox"
	"github.com/hesusruiz/navbox/pagestore"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// dumpedBlock is the YAML presentation of a parsed navbox block.
type dumpedBlock struct {
	Line     int              `yaml:"line"`
	Navbox   *navbox.Document `yaml:"navbox"`
	Warnings []string         `yaml:"warnings,omitempty"`
}

// isTerminal returns true when f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// dump prints the parsed navbox blocks of the input file as YAML.
func dump(c *cli.Context) error {
	debug = c.Bool("debug")

	sugar := newLogger()
	defer sugar.Sync()

	inputFileName := inputFile(c)

	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}
	text, lineOffset, cfg, err := readPage(inputFileName, cfg)
	if err != nil {
		return err
	}
	cfg = applyFlags(c, cfg)

	lister, closeLister, err := openLister(cfg, sugar)
	if err != nil {
		return err
	}
	defer closeLister()

	pr := &navbox.Processor{
		Lister:     lister,
		Links:      cfg.Links(),
		Log:        sugar,
		Filename:   inputFileName,
		LineOffset: lineOffset,
	}

	var dumped []dumpedBlock
	for _, b := range pr.Blocks(c.Context, navbox.NewPage(cfg.Namespace), text) {
		d := dumpedBlock{Line: b.Line, Navbox: b.Doc}
		for _, w := range b.Warnings {
			d.Warnings = append(d.Warnings, w.Error())
		}
		dumped = append(dumped, d)
	}

	out, err := yamlv3.Marshal(dumped)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return navbox.HighlightTo(w, string(out), "yaml", cfg.CodeStyle)
	}

	_, err = w.Write(out)
	return err
}

// list prints the pages of the namespace in the first argument.
func list(c *cli.Context) error {
	debug = c.Bool("debug")

	sugar := newLogger()
	defer sugar.Sync()

	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}
	cfg = applyFlags(c, cfg)

	namespace := cfg.Namespace
	if c.Args().Present() {
		namespace = c.Args().First()
	}

	lister, closeLister, err := openLister(cfg, sugar)
	if err != nil {
		return err
	}
	defer closeLister()

	if lister == nil {
		return fmt.Errorf("no page source, use --pages or --db")
	}

	pages, err := lister.ListPages(c.Context, namespace)
	if err != nil {
		return err
	}

	// Only the page index keeps the source of the pages
	sources, _ := lister.(pageSourcer)
	if c.Bool("long") && sources == nil {
		return fmt.Errorf("--long needs the page index, use --db")
	}

	prefix := strings.Trim(namespace, pagestore.Separator)
	if len(prefix) > 0 {
		prefix += pagestore.Separator
	}
	for _, p := range pages {
		if !c.Bool("long") {
			fmt.Fprintln(c.App.Writer, prefix+p)
			continue
		}

		source, err := sources.Source(namespace, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", prefix+p, humanize.Bytes(uint64(len(source))))
	}

	return nil
}

// pageSourcer is implemented by listers which keep the source of the pages.
type pageSourcer interface {
	Source(namespace string, page string) (string, error)
}

// index builds the page index in the second argument from the pages directory in the first.
func index(c *cli.Context) error {
	debug = c.Bool("debug")

	sugar := newLogger()
	defer sugar.Sync()

	if c.NArg() != 2 {
		return fmt.Errorf("index needs the pages directory and the database file")
	}
	pagesDir, dbFile := c.Args().Get(0), c.Args().Get(1)

	db, err := pagestore.OpenBolt(dbFile, false)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := pagestore.Index(c.Context, pagestore.NewDirStore(pagesDir), db)
	if err != nil {
		return err
	}
	sugar.Debugw("pages indexed", "pages", pagesDir, "db", dbFile, "count", n)

	// The database may hold pages from previous runs
	total, err := db.Count()
	if err != nil {
		return err
	}

	size := "unknown size"
	if info, err := os.Stat(dbFile); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	fmt.Fprintf(c.App.Writer, "indexed %s pages into %s (%s pages, %s)\n",
		humanize.Comma(int64(n)), dbFile, humanize.Comma(int64(total)), size)

	return nil
}
