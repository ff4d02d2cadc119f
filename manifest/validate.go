package manifest

import (
	"context"
	"strings"

	"github.com/zeebo/errs"

	"github.com/calebcase/ledgernum/integer"
)

// Validation error kinds.
var (
	ErrNoDataSources    = errs.Class("subgraph has no data sources")
	ErrSchemaMissing    = errs.Class("subgraph schema is missing")
	ErrGraftBaseInvalid = errs.Class("the graft base is invalid")
)

// BlockSource reports the progress of existing deployments.
type BlockSource interface {
	Exists(ctx context.Context, deployment string) (bool, error)
	LatestBlock(ctx context.Context, deployment string) (block integer.Int, ok bool, err error)
}

// Validate checks m and returns every problem found. A nil result means the
// manifest is valid.
func (m *Manifest) Validate(ctx context.Context, src BlockSource) (problems []error) {
	if len(m.DataSources) == 0 {
		problems = append(problems, ErrNoDataSources.New("%s", m.ID))
	}

	if strings.TrimSpace(m.Schema.Document) == "" {
		problems = append(problems, ErrSchemaMissing.New("%s", m.Schema.File.Link))
	}

	if m.Graft != nil {
		err := m.Graft.validate(ctx, src)
		if err != nil {
			problems = append(problems, err)
		}
	}

	return problems
}

func (g *Graft) validate(ctx context.Context, src BlockSource) error {
	exists, err := src.Exists(ctx, g.Base)
	if err != nil {
		return Error.Wrap(err)
	}

	if !exists {
		return ErrGraftBaseInvalid.New("can not graft onto `%s` since it does not exist", g.Base)
	}

	latest, ok, err := src.LatestBlock(ctx, g.Base)
	if err != nil {
		return Error.Wrap(err)
	}

	if !ok {
		return ErrGraftBaseInvalid.New("can not graft onto `%s` since it has not processed any blocks", g.Base)
	}

	if latest.Cmp(g.Block) < 0 {
		return ErrGraftBaseInvalid.New("can not graft onto `%s` at block %s since it has only processed block %s", g.Base, g.Block, latest)
	}

	return nil
}
