package main

import (
	"fmt"

	"github.com/katalvlaran/dtwnn/dataio"
	"github.com/spf13/cobra"
)

func init() {
	storeCmd.AddCommand(storeImportCmd, storeExportCmd, storeListCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage datasets in the SQLite store",
	Long: `Import, export, list and delete datasets kept in the SQLite store
given by --store (or DTWNN_STORE). Stored datasets can be used wherever a
dataset path is expected as store:NAME.`,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Import a UCR file into the store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataio.ReadFile(args[1])
		if err != nil {
			return dataError(err)
		}
		if err := saveDataset(cmd.Context(), storePrefix+args[0], ds); err != nil {
			return err
		}
		return output(StoreResponse{Name: args[0], Series: ds.Len()}, func() {
			outputHuman("imported %d series as %s\n", ds.Len(), args[0])
		})
	},
}

var storeExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Export a stored dataset to a UCR file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), storePrefix+args[0])
		if err != nil {
			return err
		}
		if err := saveDataset(cmd.Context(), args[1], ds); err != nil {
			return err
		}
		return output(StoreResponse{Name: args[0], Series: ds.Len(), Path: args[1]}, func() {
			outputHuman("exported %d series to %s\n", ds.Len(), args[1])
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		names, err := st.List(cmd.Context())
		if err != nil {
			return dataError(err)
		}
		if names == nil {
			names = []string{}
		}
		return output(names, func() {
			for _, n := range names {
				outputHuman("%s\n", n)
			}
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(cmd.Context(), args[0]); err != nil {
			return dataError(fmt.Errorf("deleting %s: %w", args[0], err))
		}
		return output(StoreResponse{Name: args[0]}, func() {
			outputHuman("deleted %s\n", args[0])
		})
	},
}

// StoreResponse describes one stored dataset touched by a store command.
type StoreResponse struct {
	Name   string `json:"name"`
	Series int    `json:"series,omitempty"`
	Path   string `json:"path,omitempty"`
}
