package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/coursebook/internal/config"
	"github.com/vango-dev/coursebook/internal/errors"
	"github.com/vango-dev/coursebook/pkg/catalog"
	"github.com/vango-dev/coursebook/pkg/filters"
	"github.com/vango-dev/coursebook/pkg/search"
)

func queryCmd(configPath *string) *cobra.Command {
	var (
		page        int
		asJSON      bool
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "query [filter-query]",
		Short: "Run a filter query against the catalog",
		Long: `Decode a filter query string the way the browser's address bar is
decoded, run the search, and print the canonical query and the matches.

Unknown keys and unknown region or category codes are ignored, exactly as
they are for a live session.

Examples:
  coursebook query "regions=TPE,KHH&maxPoints=50"
  coursebook query "?keyword=yoga&sortBy=points-asc" --page=2
  coursebook query "categories=MUSIC" --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Catalog.Path = catalogPath
				cfg.Catalog.S3 = config.S3Config{}
			}

			raw := ""
			if len(args) == 1 {
				raw = strings.TrimPrefix(args[0], "?")
			}
			values, err := url.ParseQuery(raw)
			if err != nil {
				return errors.New("E300").WithDetail(err.Error())
			}

			store, _, err := openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			f := filters.DecodeValues(values)
			f.PageNum = max(page, filters.FirstPage)
			engine := search.NewEngine(store, search.WithNewCourseWindow(cfg.NewCourseWindow()))
			res, err := engine.Search(cmd.Context(), search.Request{Filters: f})
			if err != nil {
				return errors.FromError(err, "E302")
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"query":          filters.QueryString(f),
					"appliedFilters": filters.CountApplied(f),
					"results":        res,
				})
			}
			printQuery(cmd.OutOrStdout(), f, res)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Result page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Local JSON catalog file")

	return cmd
}

func printQuery(w io.Writer, f filters.SearchFilters, res search.Result) {
	canonical := filters.QueryString(f)
	if canonical == "" {
		canonical = "(defaults)"
	}
	fmt.Fprintf(w, "Query:    %s\n", canonical)
	fmt.Fprintf(w, "Applied:  %d filters\n", filters.CountApplied(f))
	fmt.Fprintf(w, "Matches:  %d (page %d of %d)\n\n", res.Total, res.PageNum, max(res.TotalPages, 1))
	printCourses(w, res.Items)
}

func printCourses(w io.Writer, courses []catalog.Course) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tREGION\tCATEGORY\tPOINTS\tJOINED\tSLOTS")
	for _, c := range courses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			c.ID, c.Title, c.Region, c.Category, c.PointsRequired, c.JoinCount, c.OpenSlots)
	}
	tw.Flush()
}
