package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tordrt/edmgen"
	"github.com/tordrt/edmgen/internal/typemap"
)

var (
	dbURL         string
	mysqlURL      string
	sqlitePath    string
	inputFile     string
	outputFile    string
	namespace     string
	serviceName   string
	edmSchema     string
	schemaAlias   string
	containerName string
	tables        string
	excludeTables string
	schemaName    string
	typemapFile   string
	dialect       string
)

var rootCmd = &cobra.Command{
	Use:   "edmgen",
	Short: "Generate OData EDMX metadata from a database schema",
	Long:  `EDMGen reads the catalog of a PostgreSQL, MySQL, or SQLite database (or a JSON catalog export) and generates an OData EDMX/CSDL 4.0 metadata document: one entity type and entity set per table, keys from primary keys, and navigation properties from foreign keys.`,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "JSON catalog file instead of a live database")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&namespace, "namespace", "n", "Default", "EDM model namespace")
	rootCmd.Flags().StringVar(&serviceName, "service", "", "Service name (default: the namespace)")
	rootCmd.Flags().StringVar(&edmSchema, "edm-schema", "", "EDM schema namespace (default: the model namespace)")
	rootCmd.Flags().StringVar(&schemaAlias, "alias", "", "EDM schema alias (optional)")
	rootCmd.Flags().StringVar(&containerName, "container", "Container", "Entity container name")
	rootCmd.Flags().StringVarP(&tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&excludeTables, "exclude", "x", "", "Tables to exclude (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL, the database name for MySQL)")
	rootCmd.Flags().StringVar(&typemapFile, "typemap", "", "YAML type-mapping file (default: built-in mappings)")
	rootCmd.Flags().StringVar(&dialect, "dialect", "", "Type-mapping dialect: sqlserver, postgres, mysql, or sqlite (default: derived from the database URL, sqlserver for --input)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Validate source flags
	srcCount := 0
	if dbURL != "" {
		srcCount++
	}
	if mysqlURL != "" {
		srcCount++
	}
	if sqlitePath != "" {
		srcCount++
	}
	if inputFile != "" {
		srcCount++
	}
	if srcCount == 0 {
		return fmt.Errorf("one of --db-url, --mysql-url, --sqlite, or --input must be specified")
	}
	if srcCount > 1 {
		return fmt.Errorf("only one of --db-url, --mysql-url, --sqlite, or --input can be specified")
	}

	databaseURL := ""
	switch {
	case dbURL != "":
		databaseURL = dbURL
	case mysqlURL != "":
		databaseURL = mysqlURL
		if !strings.HasPrefix(databaseURL, "mysql://") {
			databaseURL = "mysql://" + databaseURL
		}
	case sqlitePath != "":
		databaseURL = "sqlite://" + sqlitePath
	}

	mapper, err := buildMapper(databaseURL)
	if err != nil {
		return err
	}

	cfg := edmgen.Config{
		Namespace:     namespace,
		ServiceName:   serviceName,
		SchemaName:    edmSchema,
		SchemaAlias:   schemaAlias,
		ContainerName: containerName,
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = namespace
	}
	if cfg.SchemaName == "" {
		cfg.SchemaName = namespace
	}

	opts := &edmgen.Options{
		Tables:        splitList(tables),
		ExcludeTables: splitList(excludeTables),
		SchemaName:    schemaName,
	}

	var doc string
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		doc, err = edmgen.GenerateFromJSON(cfg, data, opts, mapper)
		if err != nil {
			return fmt.Errorf("failed to generate metadata: %w", err)
		}
	} else {
		doc, err = edmgen.Generate(ctx, databaseURL, cfg, opts, mapper)
		if err != nil {
			return fmt.Errorf("failed to generate metadata: %w", err)
		}
	}

	// Write output
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}
	if _, err := fmt.Fprintln(writer, doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// buildMapper resolves the type-mapping dialect and loads either the YAML
// mapping file or the built-in table for that dialect.
func buildMapper(databaseURL string) (*typemap.Mapper, error) {
	d := dialect
	if d == "" {
		if databaseURL == "" {
			// JSON input carries no URL to derive a dialect from.
			d = "sqlserver"
		} else {
			var err error
			d, err = edmgen.DialectForURL(databaseURL)
			if err != nil {
				return nil, err
			}
		}
	}

	if typemapFile != "" {
		mapper, err := typemap.New(typemapFile, d)
		if err != nil {
			return nil, fmt.Errorf("failed to load type mappings: %w", err)
		}
		return mapper, nil
	}

	mapper, err := typemap.Default(d)
	if err != nil {
		return nil, fmt.Errorf("failed to load type mappings: %w", err)
	}
	return mapper, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
