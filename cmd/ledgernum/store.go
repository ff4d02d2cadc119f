package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calebcase/ledgernum/decimal"
	"github.com/calebcase/ledgernum/hexbytes"
	"github.com/calebcase/ledgernum/integer"
	"github.com/calebcase/ledgernum/manifest"
	"github.com/calebcase/ledgernum/store"
)

func (a *app) withStore(fn func(s *store.Store) error) (err error) {
	s, err := a.openStore()
	if err != nil {
		return err
	}

	defer func() {
		cerr := s.Close()
		if err == nil {
			err = cerr
		}
	}()

	return fn(s)
}

func newDeploymentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployment",
		Short: "Manage deployments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <id>",
		Short: "Create a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *store.Store) error {
				return s.CreateDeployment(cmd.Context(), args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "latest <id>",
		Short: "Print the latest processed block of a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *store.Store) error {
				block, ok, err := s.LatestBlock(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "none")
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), block)

				return nil
			})
		},
	})

	return cmd
}

func newEntryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Store and fetch ledger entries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "put <deployment> <id> <block> <amount> [payload]",
		Short: "Store an entry",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e := store.Entry{ID: args[1]}

			e.Block, err = integer.Parse(args[2])
			if err != nil {
				return err
			}

			e.Amount, err = decimal.Parse(args[3])
			if err != nil {
				return err
			}

			if len(args) == 5 {
				e.Payload, err = hexbytes.Parse(args[4])
				if err != nil {
					return err
				}
			}

			return a.withStore(func(s *store.Store) error {
				inserted, err := s.Put(cmd.Context(), args[0], e)
				if err != nil {
					return err
				}

				status := "stored"
				if !inserted {
					status = "unchanged"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status, e.Key())

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <deployment> <id>",
		Short: "Print an entry as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *store.Store) error {
				e, err := s.Get(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}

				data, err := json.Marshal(e)
				if err != nil {
					return Error.Wrap(err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(data))

				return nil
			})
		},
	})

	return cmd
}

// fileResolver resolves links as paths below root.
type fileResolver struct {
	root string
}

func (r fileResolver) Cat(ctx context.Context, link string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.root, filepath.FromSlash(link)))
}

func newGraftCmd(a *app) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "graft",
		Short: "Check manifest grafts",
	}

	validate := &cobra.Command{
		Use:   "validate <manifest link>",
		Short: "Validate a manifest against the stored deployments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Resolve(cmd.Context(), manifest.Link{Link: args[0]}, fileResolver{root: root})
			if err != nil {
				return err
			}

			return a.withStore(func(s *store.Store) error {
				problems := m.Validate(cmd.Context(), s)
				for _, p := range problems {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}

				if len(problems) > 0 {
					return Error.New("%s has %d problems", m.ID, len(problems))
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", m.ID)

				return nil
			})
		},
	}

	validate.Flags().StringVar(&root, "root", ".", "directory links are resolved against")

	cmd.AddCommand(validate)

	return cmd
}
