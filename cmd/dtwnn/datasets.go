package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/dtwnn/dataio"
	"github.com/katalvlaran/dtwnn/series"
)

// storePrefix marks a dataset reference that names a store entry.
const storePrefix = "store:"

// openStore opens the configured SQLite store.
func openStore() (*dataio.Store, error) {
	if cfg.Store == "" {
		return nil, configError(errors.New("no dataset store configured (use --store or DTWNN_STORE)"))
	}
	st, err := dataio.OpenStore(cfg.Store)
	if err != nil {
		return nil, dataError(err)
	}
	return st, nil
}

// loadDataset reads a UCR file or, for store:NAME, a stored dataset.
func loadDataset(ctx context.Context, ref string) (*series.Dataset, error) {
	if name, ok := strings.CutPrefix(ref, storePrefix); ok {
		st, err := openStore()
		if err != nil {
			return nil, err
		}
		defer st.Close()

		ds, err := st.Load(ctx, name)
		if err != nil {
			return nil, dataError(err)
		}
		return ds, nil
	}

	ds, err := dataio.ReadFile(ref)
	if err != nil {
		return nil, dataError(err)
	}
	return ds, nil
}

// saveDataset writes ds to a UCR file or, for store:NAME, the store.
func saveDataset(ctx context.Context, ref string, ds *series.Dataset) error {
	if name, ok := strings.CutPrefix(ref, storePrefix); ok {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Save(ctx, name, ds); err != nil {
			return dataError(err)
		}
		return nil
	}

	if err := dataio.WriteFile(ref, ds); err != nil {
		return dataError(fmt.Errorf("writing dataset: %w", err))
	}
	return nil
}
