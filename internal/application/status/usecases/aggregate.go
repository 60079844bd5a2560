package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/resinfo/internal/domain/status"
	"github.com/orris-inc/resinfo/internal/shared/goroutine"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// AggregateStatusUseCase builds the status document for one request.
type AggregateStatusUseCase struct {
	sources   Sources
	opts      Options
	resolvers map[status.Topic]resolver
	logger    logger.Interface
}

// resolver answers one requested topic.
type resolver func(ctx context.Context, q status.Query) outcome

// outcome is a resolver's envelope plus, for answers that are successes
// only by convention, the envelope to report instead in strict mode.
type outcome struct {
	env    status.Envelope
	strict *status.Envelope
}

func result(env status.Envelope) outcome {
	return outcome{env: env}
}

func degraded(env, strict status.Envelope) outcome {
	return outcome{env: env, strict: &strict}
}

func NewAggregateStatusUseCase(sources Sources, opts Options, log logger.Interface) *AggregateStatusUseCase {
	uc := &AggregateStatusUseCase{
		sources: sources,
		opts:    opts.withDefaults(),
		logger:  log,
	}
	uc.resolvers = map[status.Topic]resolver{
		status.TopicNetwork:    uc.network,
		status.TopicSystem:     uc.system,
		status.TopicLuci:       uc.luci,
		status.TopicVnstat:     uc.vnstat,
		status.TopicUsers:      uc.users,
		status.TopicConnection: uc.connection,
		status.TopicPublicIP:   uc.publicIP,
		status.TopicPing:       uc.ping,
		status.TopicServices:   uc.services,
		status.TopicLogs:       uc.logs,
		status.TopicNetdata:    uc.netdata,
	}
	return uc
}

// Execute resolves every requested topic. It never fails: unrequested
// topics report "no data" and failures are carried inside envelopes.
func (uc *AggregateStatusUseCase) Execute(ctx context.Context, q status.Query) *status.Document {
	doc := status.NewDocument()
	selected := q.Selected()
	if len(selected) == 0 {
		return doc
	}

	start := time.Now()
	if uc.opts.Parallel && len(selected) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for _, topic := range selected {
			g.Go(func() error {
				doc.Set(topic, uc.resolve(gctx, topic, q))
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, topic := range selected {
			doc.Set(topic, uc.resolve(ctx, topic, q))
		}
	}

	uc.logger.Debugw("status document assembled",
		"topics", len(selected),
		"parallel", uc.opts.Parallel,
		"duration", time.Since(start),
	)
	return doc
}

func (uc *AggregateStatusUseCase) resolve(ctx context.Context, topic status.Topic, q status.Query) status.Envelope {
	var out outcome
	err := goroutine.Run(string(topic), func() error {
		out = uc.resolvers[topic](ctx, q)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("topic resolver panicked", "topic", topic, "error", err)
		return status.Fail(status.ReasonQueryError)
	}

	if !uc.opts.StrictEnvelopes {
		return out.env
	}
	if out.strict != nil {
		return out.strict.Strict()
	}
	return out.env.Strict()
}
