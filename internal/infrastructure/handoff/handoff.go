package handoff

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// LinkTarget — передача заказа через ссылку мессенджера. Ссылку открывает клиент,
// сервер только фиксирует её в логе.
type LinkTarget struct {
	logger logger.Logger
}

func NewLinkTarget(logger logger.Logger) *LinkTarget {
	return &LinkTarget{logger: logger}
}

func (t *LinkTarget) Handoff(_ context.Context, order *domain.Order) error {
	t.logger.Infof("Order %s ready for hand-off: %s", order.ID, order.Link)
	return nil
}

// Fanout передаёт заказ основному получателю и копиям.
// Ошибка основного получателя прерывает оформление, ошибки копий только логируются.
type Fanout struct {
	primary usecase.OrderHandoff
	mirrors []usecase.OrderHandoff
	logger  logger.Logger
}

func NewFanout(logger logger.Logger, primary usecase.OrderHandoff, mirrors ...usecase.OrderHandoff) *Fanout {
	return &Fanout{
		primary: primary,
		mirrors: mirrors,
		logger:  logger,
	}
}

func (f *Fanout) Handoff(ctx context.Context, order *domain.Order) error {
	const op = "Fanout.Handoff"

	if err := f.primary.Handoff(ctx, order); err != nil {
		return e.Wrap(op, err)
	}

	for _, mirror := range f.mirrors {
		if err := mirror.Handoff(ctx, order); err != nil {
			f.logger.Warnf("Order %s mirror hand-off failed: %v", order.ID, e.Wrap(op, err))
		}
	}

	return nil
}
