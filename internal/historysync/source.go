package historysync

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gabapcia/localhistory/internal/localhistory"
	"github.com/gabapcia/localhistory/internal/pkg/x/chflow"
)

// maxLineSize bounds a single JSON line of the input stream.
const maxLineSize = 16 << 20

// DecodeBatches reads newline-delimited JSON from r, one array of reconcile
// requests per line, and sends each batch to out. Blank lines are skipped.
// out is closed when DecodeBatches returns.
//
// A malformed line stops decoding; batches already sent are not recalled.
func DecodeBatches(ctx context.Context, r io.Reader, out chan<- []localhistory.ReconcileRequest) error {
	defer close(out)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var batch []localhistory.ReconcileRequest
		if err := json.Unmarshal(raw, &batch); err != nil {
			return fmt.Errorf("decode batch on line %d: %w", line, err)
		}

		if !chflow.Send(ctx, out, batch) {
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batches: %w", err)
	}

	return nil
}
