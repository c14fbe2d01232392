package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/restodesk/restodesk/internal/connection"
	"github.com/restodesk/restodesk/internal/docstore"
	"github.com/restodesk/restodesk/internal/entity"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision storage for every entity",
	Long: `Provision creates the tables, indexes and foreign keys for every entity
definition. The engine also does this lazily on first use; running it up
front is optional and idempotent.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd).WithPrefix("[provision]")
		dryRun := mustFlagBool(cmd, "dry-run", false)
		config, err := databaseConfig(cmd)
		if err != nil {
			log.Fatal("%s", err)
		}
		provider, err := connection.New(log, config)
		if err != nil {
			log.Fatal("%s", err)
		}
		defer provider.Close()

		if dryRun {
			for _, def := range entity.All() {
				for _, stmt := range docstore.Script(provider.Dialect(), def.Schema) {
					fmt.Println(color.CyanString(stmt))
				}
			}
			return
		}

		catalog, err := docstore.NewCatalog(log, mustFlagString(cmd, "data-dir", false))
		if err != nil {
			log.Fatal("%s", err)
		}
		defer catalog.Close()

		store := docstore.New(docstore.Config{
			Logger:     log,
			Connection: provider,
			Catalog:    catalog,
		})
		ctx := context.Background()
		for _, def := range entity.All() {
			if err := store.Ensure(ctx, def); err != nil {
				log.Fatal("error provisioning %s: %s", def.Schema.Table, err)
			}
			log.Info("provisioned %s", def.Schema.Table)
		}
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
	provisionCmd.Flags().Bool("dry-run", false, "print the DDL without executing it")
	provisionCmd.Flags().String("data-dir", "", "directory for the schema catalog database")
}
