package cli

import (
	"context"
	"fmt"

	"github.com/gabapcia/localhistory/internal/historysync"
	"github.com/gabapcia/localhistory/internal/localhistory"

	"github.com/urfave/cli/v3"
)

// batchFailure describes a batch that could not be applied.
type batchFailure struct {
	Seq   int    `json:"seq"`
	Error string `json:"error"`
}

// reconcileSummary is the output of the reconcile command.
type reconcileSummary struct {
	Batches  int            `json:"batches"`
	Requests int            `json:"requests"`
	Failed   []batchFailure `json:"failed"`
}

// reconcileCommand feeds a JSON-lines stream of reconcile batches through the
// sync service.
//
// Usage example:
//
//	localhistory reconcile --file batches.jsonl
func reconcileCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:        "reconcile",
		Description: "Each line of the input is a JSON array of reconcile requests applied as one batch.",
		Usage:       "Applies reconcile batches read from a JSON-lines file.",
		Flags:       []cli.Flag{fileFlag("JSON-lines file with one batch per line")},
		Before:      svc.open,
		Action: func(ctx context.Context, c *cli.Command) error {
			in, err := openInput(c)
			if err != nil {
				return err
			}
			defer in.Close()

			batches := make(chan []localhistory.ReconcileRequest)

			results, err := svc.sync.Start(ctx, batches)
			if err != nil {
				return err
			}
			defer svc.sync.Close()

			decodeErr := make(chan error, 1)
			go func() {
				decodeErr <- historysync.DecodeBatches(ctx, in, batches)
			}()

			summary := reconcileSummary{Failed: []batchFailure{}}
			for result := range results {
				summary.Batches++
				summary.Requests += result.Requests
				if result.Err != nil {
					summary.Failed = append(summary.Failed, batchFailure{Seq: result.Seq, Error: result.Err.Error()})
				}
			}

			if err := <-decodeErr; err != nil {
				return err
			}

			if err := writeJSON(c, summary); err != nil {
				return err
			}

			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d of %d reconcile batches failed", len(summary.Failed), summary.Batches)
			}
			return nil
		},
	}
}
