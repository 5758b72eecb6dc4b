package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/coursebook/internal/config"
	"github.com/vango-dev/coursebook/pkg/catalog"
)

func highlightsCmd(configPath *string) *cobra.Command {
	var (
		asJSON bool
		path   string
	)

	cmd := &cobra.Command{
		Use:   "highlights",
		Short: "Print the popular, latest and recommended courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if path != "" {
				cfg.Catalog.Path = path
				cfg.Catalog.S3 = config.S3Config{}
			}

			store, source, err := openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			h := catalog.BuildHighlights(store.All())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(h)
			}

			fmt.Fprintf(out, "Catalog: %s (%d courses)\n", source, store.Len())
			for _, section := range []struct {
				title   string
				courses []catalog.Course
			}{
				{"Popular", h.Popular},
				{"Latest", h.Latest},
				{"Recommended", h.Recommended},
			} {
				fmt.Fprintf(out, "\n%s\n", section.title)
				printCourses(out, section.courses)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringVar(&path, "catalog", "", "Local JSON catalog file")

	return cmd
}
