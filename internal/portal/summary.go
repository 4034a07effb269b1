package portal

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"customer-portal/internal/models"
	"customer-portal/internal/operations"
)

// Runner executes a catalog operation.
type Runner interface {
	Execute(ctx context.Context, name string, params map[string]string) (*operations.Result, error)
}

var summaryOperations = [...]string{"inquiries", "orders", "deliveries", "invoices"}

// Summarize counts the customer's inquiries, order lines, delivery lines and
// invoices. The four calls run concurrently; the first failure cancels the
// others and is returned.
func Summarize(ctx context.Context, r Runner, customerID string) (models.DashboardSummary, error) {
	var counts [len(summaryOperations)]int

	g, ctx := errgroup.WithContext(ctx)
	for i, op := range summaryOperations {
		i, op := i, op
		g.Go(func() error {
			res, err := r.Execute(ctx, op, map[string]string{"customerId": customerID})
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			counts[i] = res.Count()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DashboardSummary{}, err
	}

	return models.DashboardSummary{
		Inquiries:  counts[0],
		Orders:     counts[1],
		Deliveries: counts[2],
		Invoices:   counts[3],
	}, nil
}
