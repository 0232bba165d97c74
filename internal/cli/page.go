package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/paginater/internal/exposure"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/render"
)

const rowType = "row"

type pageOptions struct {
	page     int
	per      int
	all      bool
	padding  int
	maxPer   int
	maxPages int
	expose   []string
	rename   []string
	format   string
}

func newPageCmd() *cobra.Command {
	var opts pageOptions
	cmd := &cobra.Command{
		Use:   "page FILE",
		Short: "Page a JSON or YAML array and print one page",
		Long: `Reads an array of objects from FILE (or stdin when FILE is "-"), pages it and prints
{items, meta} in the chosen format. Without --expose every key found in the input is exposed,
in alphabetical order.`,
		Example: `  paginater page people.yaml --per 5 --page 3
  paginater page people.json --all --expose id,name --rename name=full_name --format xml
  cat people.json | paginater page - --per 10 --padding 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.page, "page", 1, "1-based page number")
	f.IntVar(&opts.per, "per", 0, "rows per page (0 = default per page)")
	f.BoolVar(&opts.all, "all", false, "put every row on a single page")
	f.IntVar(&opts.padding, "padding", 0, "shift the page offset by N rows")
	f.IntVar(&opts.maxPer, "max-per", 0, "cap on --per (0 = no cap)")
	f.IntVar(&opts.maxPages, "max-pages", 0, "cap on the reported page count (0 = no cap)")
	f.StringSliceVar(&opts.expose, "expose", nil, "keys to expose, in output order")
	f.StringArrayVar(&opts.rename, "rename", nil, "rename an exposed key, as from=to (repeatable)")
	f.StringVarP(&opts.format, "format", "f", "json", "output format: json, yaml or xml")

	return cmd
}

func runPage(cmd *cobra.Command, path string, opts pageOptions) error {
	log := zerolog.Ctx(cmd.Context())

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.all && opts.per > 0 {
		return errors.New("--per and --all are mutually exclusive")
	}
	if opts.page < 1 {
		return fmt.Errorf("--page must be >= 1, got %d", opts.page)
	}
	if opts.per < 0 {
		return fmt.Errorf("--per must be >= 0, got %d", opts.per)
	}

	rows, err := readRows(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	log.Debug().Int("rows", len(rows)).Str("file", path).Msg("input loaded")

	typ, err := rowExposure(rows, opts)
	if err != nil {
		return err
	}

	cfg := typ.Paging()
	coll := pagination.New(rows,
		pagination.WithLimit(cfg.DefaultPerPage()),
		pagination.WithOffset(0),
		pagination.WithConfig(cfg),
	).Page(opts.page)
	switch {
	case opts.all:
		coll = coll.PerAll()
	case opts.per > 0:
		coll = coll.Per(opts.per)
	}
	coll = coll.Padding(opts.padding)
	log.Debug().Int("limit", coll.LimitValue()).Int("offset", coll.OffsetValue()).Msg("window")

	items := make([]any, 0, coll.Len())
	for _, row := range coll.Items() {
		items = append(items, typ.Represent(row, nil).Map(nil))
	}
	body := exposure.NewMap()
	body.Set("items", items)
	body.Set("meta", coll.Meta())
	return render.Encode(cmd.OutOrStdout(), format, body)
}

// readRows decodes an array of objects. JSON input goes through the YAML decoder too.
func readRows(stdin io.Reader, path string) ([]map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: input must be an array of objects: %w", path, err)
	}
	return rows, nil
}

// rowExposure declares a type exposing the chosen keys, renamed where asked.
func rowExposure(rows []map[string]any, opts pageOptions) (*exposure.Type, error) {
	root := pagination.NewConfig(nil, pagination.Settings{MaxPerPage: opts.maxPer, MaxPages: opts.maxPages})
	typ, err := exposure.NewRegistry(root).Register(rowType, nil, pagination.Settings{})
	if err != nil {
		return nil, err
	}

	keys := opts.expose
	if len(keys) == 0 {
		keys = allKeys(rows)
	}
	renames := make(map[string]string, len(opts.rename))
	for _, r := range opts.rename {
		from, to, ok := strings.Cut(r, "=")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("--rename %q: want from=to", r)
		}
		if !slices.Contains(keys, from) {
			return nil, fmt.Errorf("--rename %q: %q is not exposed", r, from)
		}
		renames[from] = to
	}

	for _, k := range keys {
		var xopts []exposure.Option
		if to, ok := renames[k]; ok {
			xopts = append(xopts, exposure.As(to))
		}
		if err := typ.Expose([]string{k}, xopts...); err != nil {
			return nil, fmt.Errorf("expose %q: %w", k, err)
		}
	}
	return typ, nil
}

func allKeys(rows []map[string]any) []string {
	var keys []string
	for _, row := range rows {
		for k := range row {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}
