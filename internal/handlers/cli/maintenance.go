package cli

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
)

// errNotConfirmed is returned by destructive commands run without --yes.
var errNotConfirmed = errors.New("refusing to clear the history without --yes")

func confirmFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "yes",
		Usage: "Confirm the operation",
	}
}

// clearPendingCommand drops the pending records of every account.
func clearPendingCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:   "clear-pending",
		Usage:  "Removes the pending transactions of every account. Confirmed history is kept.",
		Flags:  []cli.Flag{confirmFlag()},
		Before: svc.open,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !c.Bool("yes") {
				return errNotConfirmed
			}
			return svc.history.ClearPending(ctx)
		},
	}
}

// clearCommand wipes the whole history.
func clearCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Removes every pending and confirmed transaction.",
		Flags:  []cli.Flag{confirmFlag()},
		Before: svc.open,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !c.Bool("yes") {
				return errNotConfirmed
			}
			return svc.history.ClearAll(ctx)
		},
	}
}
