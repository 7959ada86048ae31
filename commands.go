package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rle"
)

// readDocument decodes the RLE document at path, or stdin for "-"
func readDocument(cmd *cobra.Command, path string) (*rle.Document, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "[readDocument] failed to open pattern: %+v", path)
		}
		defer f.Close()
		r = f
	}

	doc, err := rle.DecodeReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "[readDocument] failed to decode pattern: %+v", path)
	}
	return doc, nil
}

type stepOptions struct {
	generations int
	adjacency   string
	extract     bool
	workers     int
}

func newStepCmd(root *rootOptions) *cobra.Command {
	opts := &stepOptions{}
	cmd := &cobra.Command{
		Use:   "step FILE",
		Short: "Advance an RLE pattern by N generations and print the result as RLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if opts.generations < 0 {
				return errors.Errorf("generations must not be negative, got %d", opts.generations)
			}
			mode, err := model.ParseAdjacency(opts.adjacency)
			if err != nil {
				return err
			}
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			game := engine.NewGame(doc.Grid,
				engine.WithAdjacency(mode),
				engine.WithWorkers(opts.workers),
				engine.WithLogger(logger))
			for range opts.generations {
				if game.Step() {
					logger.Debug("pattern is stuck", "generation", game.Generation())
					break
				}
			}

			grid := game.Snapshot()
			if opts.extract {
				grid = game.ExtractAlive()
			}
			out := &rle.Document{Header: doc.Header, Name: doc.Name, Comments: doc.Comments, Grid: grid}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rle.EncodeDocument(out))
			return err
		},
	}
	cmd.Flags().IntVarP(&opts.generations, "generations", "n", 1, "number of generations to advance")
	cmd.Flags().StringVar(&opts.adjacency, "adjacency", model.Cycled.String(), "neighbor policy: cycled or bounded")
	cmd.Flags().BoolVar(&opts.extract, "extract", false, "crop the result to its alive bounding box")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "row bands stepped in parallel; 0 uses one per CPU")
	return cmd
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Crop an RLE pattern to the bounding box of its alive cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := root.loadConfig(cmd); err != nil {
				return err
			}
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			doc.Grid = doc.Grid.ExtractBoundingBox(model.CellState.IsAlive)
			_, err = fmt.Fprint(cmd.OutOrStdout(), rle.EncodeDocument(doc))
			return err
		},
	}
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite an RLE pattern in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := root.loadConfig(cmd); err != nil {
				return err
			}
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rle.EncodeDocument(doc))
			return err
		},
	}
}
