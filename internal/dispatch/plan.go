package dispatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eridani8/MassEmailSender/internal/storage"
)

// PlanOptions controls how raw loader output becomes the dispatch queue.
type PlanOptions struct {
	Subject string
	Dedup   bool
	Shuffle bool
}

// Plan turns the raw candidate list into the final ordered dispatch queue.
//
// Steps, in order: drop invalid addresses, drop in-batch duplicates (first
// occurrence wins; the loaders make no uniqueness promise, so this is the one
// place it holds for every source), exclude recipients the history store has
// already seen for this subject, then optionally shuffle.
//
// The history exclusion uses a single bulk snapshot read rather than one
// lookup per recipient. Excluded recipients come back in skipped; they are
// dropped, not retried later. The only error is a failed snapshot read, which
// is fatal: planning without it would break the dedup guarantee.
func Plan(ctx context.Context, raw []string, opts PlanOptions, history storage.Store, log zerolog.Logger) (queue, skipped []string, err error) {
	queue = make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, email := range raw {
		if !IsValidEmail(email) {
			log.Debug().Str("email", email).Msg("dropping invalid address")
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		queue = append(queue, email)
	}

	if opts.Dedup {
		records, err := history.FindAll(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("history snapshot: %w", err)
		}
		sent := make(map[string]struct{}, len(records))
		for _, r := range records {
			for _, s := range r.Subjects {
				if s == opts.Subject {
					sent[r.Email] = struct{}{}
					break
				}
			}
		}

		kept := make([]string, 0, len(queue))
		for _, email := range queue {
			if _, done := sent[email]; done {
				skipped = append(skipped, email)
				continue
			}
			kept = append(kept, email)
		}
		queue = kept
	}

	if opts.Shuffle {
		Shuffle(queue)
	}
	return queue, skipped, nil
}
