package trading

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Scalars is the keyed store the net figures are written to.
type Scalars interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

const (
	netProfitPrefix = "NET_PROFIT_"
	netLossPrefix   = "NET_LOSS_"
)

// NetProfitKey is the scalar key holding a company's net profit.
func NetProfitKey(companyID string) string {
	return netProfitPrefix + companyID
}

// NetLossKey is the scalar key holding a company's net loss.
func NetLossKey(companyID string) string {
	return netLossPrefix + companyID
}

// Publisher writes a statement's net profit and loss for the Balance Sheet.
type Publisher struct {
	scalars Scalars
	logger  *zap.Logger
}

// NewPublisher creates a Publisher. A nil logger is replaced with a no-op.
func NewPublisher(scalars Scalars, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{scalars: scalars, logger: logger}
}

// Publish overwrites NET_PROFIT_<company> and NET_LOSS_<company>. Exactly one
// of them is non-zero unless the result breaks even.
func (p *Publisher) Publish(ctx context.Context, tenant model.Tenant, st Statement) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	profit := decimal.Max(decimal.Zero, st.NetProfit).StringFixed(2)
	loss := st.NetLoss().StringFixed(2)

	if err := p.scalars.Set(ctx, NetProfitKey(tenant.CompanyID), profit); err != nil {
		return fmt.Errorf("publishing net profit: %w", err)
	}
	if err := p.scalars.Set(ctx, NetLossKey(tenant.CompanyID), loss); err != nil {
		return fmt.Errorf("publishing net loss: %w", err)
	}
	p.logger.Debug("published net result",
		zap.String("company", tenant.CompanyID),
		zap.String("net_profit", profit),
		zap.String("net_loss", loss),
	)
	return nil
}

// Net is the pair of published scalars.
type Net struct {
	Profit decimal.Decimal
	Loss   decimal.Decimal
}

// Read returns the published scalars. ok is false when neither key is set.
// Unparseable values read as zero.
func (p *Publisher) Read(ctx context.Context, tenant model.Tenant) (Net, bool, error) {
	if err := tenant.Validate(); err != nil {
		return Net{}, false, err
	}
	out := Net{Profit: decimal.Zero, Loss: decimal.Zero}
	found := false
	for _, f := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{NetProfitKey(tenant.CompanyID), &out.Profit},
		{NetLossKey(tenant.CompanyID), &out.Loss},
	} {
		raw, ok, err := p.scalars.Get(ctx, f.key)
		if err != nil {
			return Net{}, false, fmt.Errorf("reading %s: %w", f.key, err)
		}
		if !ok {
			continue
		}
		found = true
		v, err := decimal.NewFromString(raw)
		if err != nil {
			p.logger.Warn("unparseable scalar", zap.String("key", f.key), zap.String("value", raw))
			continue
		}
		*f.dst = v
	}
	return out, found, nil
}

// Clear removes both scalars for the tenant.
func (p *Publisher) Clear(ctx context.Context, tenant model.Tenant) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := p.scalars.Delete(ctx, NetProfitKey(tenant.CompanyID), NetLossKey(tenant.CompanyID)); err != nil {
		return fmt.Errorf("clearing net scalars: %w", err)
	}
	return nil
}

// Published is one stored net figure.
type Published struct {
	Key   string
	Value string
}

// List returns every published net figure, for all companies, sorted by key.
func (p *Publisher) List(ctx context.Context) ([]Published, error) {
	keys, err := p.scalars.Keys(ctx, "NET_")
	if err != nil {
		return nil, fmt.Errorf("listing net scalars: %w", err)
	}
	var out []Published
	for _, k := range keys {
		if !strings.HasPrefix(k, netProfitPrefix) && !strings.HasPrefix(k, netLossPrefix) {
			continue
		}
		v, ok, err := p.scalars.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", k, err)
		}
		if ok {
			out = append(out, Published{Key: k, Value: v})
		}
	}
	return out, nil
}
