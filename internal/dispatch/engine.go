package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/eridani8/MassEmailSender/internal/mail"
	"github.com/eridani8/MassEmailSender/internal/storage"
)

// Pre-flight failures. Any of these aborts a run before the transport is
// dialed and before any store mutation.
var (
	ErrZeroLimit = errors.New("send limit is 0; use a positive limit or -1 for unlimited")
	ErrNoSubject = errors.New("subject is empty")
	ErrEmptyBody = errors.New("message body is empty")
)

type state int

const (
	stateIdle state = iota
	stateAuthenticating
	stateAwaitingStart
	stateSending
	stateFinished
)

// Engine drains a planned queue through a single transport session, strictly
// in queue order, recording every outcome in the history store. One bad
// recipient never aborts the run; only pre-flight and authentication failures
// are fatal.
type Engine struct {
	cfg       Config
	transport mail.Transport
	history   storage.Store

	confirm  Confirm
	progress Progress
	log      zerolog.Logger

	state state
}

type Option func(*Engine)

// WithConfirm installs the AwaitingStart gate. Without it the engine starts
// sending immediately after authentication.
func WithConfirm(fn Confirm) Option {
	return func(e *Engine) { e.confirm = fn }
}

func WithProgress(fn Progress) Option {
	return func(e *Engine) { e.progress = fn }
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func NewEngine(cfg Config, transport mail.Transport, history storage.Store, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		transport: transport,
		history:   history,
		log:       zerolog.Nop(),
		state:     stateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one campaign over the planned queue. skipped is the count the
// planner filtered out, carried through into the summary for reporting.
//
// The returned error is fatal-only (pre-flight or session setup); once the
// sending loop starts, Run always returns a Summary and a nil error.
func (e *Engine) Run(ctx context.Context, queue []string, skipped int) (Summary, error) {
	sum := Summary{Skipped: skipped}

	if err := e.preflight(); err != nil {
		e.state = stateFinished
		return sum, err
	}

	e.state = stateAuthenticating
	if err := e.transport.Dial(ctx); err != nil {
		e.state = stateFinished
		return sum, fmt.Errorf("smtp session: %w", err)
	}
	defer func() {
		if err := e.transport.Close(); err != nil {
			e.log.Warn().Err(err).Msg("closing smtp session")
		}
	}()

	e.state = stateAwaitingStart
	if e.confirm != nil {
		ok := e.confirm(PlanInfo{
			Recipients: len(queue),
			Skipped:    skipped,
			Subject:    e.cfg.Subject,
			Limit:      e.cfg.Limit,
		})
		if !ok {
			e.state = stateFinished
			e.log.Info().Msg("start declined, nothing sent")
			return sum, nil
		}
	}

	var limiter *rate.Limiter
	if e.cfg.PerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(e.cfg.PerSecond), 1)
	}

	e.state = stateSending
	remaining := e.cfg.Limit
	for _, rcpt := range queue {
		// Cancellation is checked before every pop, not just at loop entry,
		// so a long Sending state reacts within one iteration.
		if ctx.Err() != nil {
			sum.Canceled = true
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				sum.Canceled = true
				break
			}
		}

		err := e.transport.Send(ctx, mail.Message{
			FromName: e.cfg.FromName,
			FromAddr: e.cfg.FromAddr,
			ToName:   localPart(rcpt),
			ToAddr:   rcpt,
			Subject:  e.cfg.Subject,
			HTMLBody: e.cfg.HTMLBody,
		})
		if err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil) {
			// Operator cancel surfaced through the send path. Not a
			// per-recipient failure; the address stays eligible for a re-run.
			sum.Canceled = true
			break
		}
		if e.progress != nil {
			e.progress(rcpt, err)
		}
		if err != nil {
			sum.Failed++
			e.log.Error().Err(err).Str("email", rcpt).Msg("send failed")
			if herr := e.history.AppendFailure(ctx, rcpt, time.Now()); herr != nil {
				e.log.Warn().Err(herr).Str("email", rcpt).Msg("recording failure")
			}
			continue
		}

		sum.Sent++
		if herr := e.history.AddSubject(ctx, rcpt, e.cfg.Subject); herr != nil {
			e.log.Warn().Err(herr).Str("email", rcpt).Msg("recording sent subject")
		}
		// The limit counts successful sends only; failures never consume it.
		if remaining > 0 {
			remaining--
			if remaining == 0 {
				sum.LimitReached = true
				break
			}
		}
	}

	e.state = stateFinished
	e.log.Info().
		Int("sent", sum.Sent).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Bool("limit_reached", sum.LimitReached).
		Bool("canceled", sum.Canceled).
		Msg("dispatch finished")
	return sum, nil
}

func (e *Engine) preflight() error {
	if e.cfg.Limit == 0 {
		return ErrZeroLimit
	}
	if strings.TrimSpace(e.cfg.Subject) == "" {
		return ErrNoSubject
	}
	if strings.TrimSpace(e.cfg.HTMLBody) == "" {
		return ErrEmptyBody
	}
	return nil
}

// localPart is used as the recipient display name, matching how the message
// is addressed: "user" for user@example.com.
func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
