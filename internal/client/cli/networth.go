package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/valuation"
)

// NetWorth aggregates holdings locally, or with "remote" shows the
// backend's own figure. Either way the result lands in the journal. With
// the backend unreachable the last journaled snapshot is shown instead.
func (a *App) NetWorth(ctx context.Context, args []string) error {
	var (
		rep models.NetWorthReport
		err error
	)
	switch {
	case len(args) == 0:
		rep, err = a.netWorthService.Compute(ctx)
	case len(args) == 1 && args[0] == "remote":
		rep, err = a.netWorthService.Remote(ctx)
	default:
		return errUsage
	}
	if errors.Is(err, client.ErrUnavailable) {
		snap, ok, lerr := a.netWorthService.Latest(ctx)
		if lerr != nil || !ok {
			return err
		}
		fmt.Fprintf(a.out, "Backend unreachable, showing snapshot recorded %s\n", snap.AsOf().UTC().Format("2006-01-02 15:04"))
		return a.printSnapshot(snap)
	}
	if err != nil {
		return err
	}

	if err := a.printSnapshot(rep.Snapshot); err != nil {
		return err
	}
	if len(rep.TopAssets) > 0 {
		fmt.Fprintln(a.out, "Top holdings:")
		printHoldings(a, rep.TopAssets)
	}
	return nil
}

func (a *App) printSnapshot(snap models.NetWorthSnapshot) error {
	fmt.Fprintf(a.out, "Net worth:   %s\n", money(snap.NetWorth()))
	fmt.Fprintf(a.out, "Assets:      %s\n", money(snap.TotalAssets()))
	fmt.Fprintf(a.out, "Liabilities: %s\n", money(snap.TotalLiabilities()))

	alloc := valuation.Allocation(snap)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE\t")
	for _, c := range models.AssetCategories {
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t\n", c, money(snap.Amount(c)), alloc[c].StringFixed(1))
	}
	fmt.Fprintf(tw, "%s\t%s\t\t\n", models.CategoryLiabilities, money(snap.TotalLiabilities()))
	return tw.Flush()
}

func (a *App) Top(ctx context.Context, args []string) error {
	n := 5
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		n = v
	}
	hs, err := a.netWorthService.Top(ctx, n)
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		fmt.Fprintln(a.out, "No holdings yet")
		return nil
	}
	printHoldings(a, hs)
	return nil
}

// History prints the series for a period with growth and high/low. The
// backend is asked first; "local" or an unreachable backend uses the
// journal instead.
func (a *App) History(ctx context.Context, args []string) error {
	p := history.Named(history.DefaultPeriod)
	local := false
	for _, arg := range args {
		if arg == "local" {
			local = true
			continue
		}
		parsed, err := history.ParsePeriod(arg)
		if err != nil {
			return err
		}
		p = parsed
	}

	var (
		series history.Series
		err    error
	)
	if !local {
		series, err = a.netWorthService.History(ctx, p)
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Fprintln(a.out, "Backend unreachable, showing locally recorded snapshots")
			local = true
		} else if err != nil {
			return err
		}
	}
	if local {
		series, err = a.netWorthService.LocalHistory(ctx, p)
		if err != nil {
			return err
		}
	}

	if len(series) == 0 {
		fmt.Fprintf(a.out, "No history for %s\n", p)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tNET WORTH\tASSETS\tLIABILITIES\t")
	for _, pt := range series {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", pt.Date.Format(models.DateLayout), money(pt.NetWorth), money(pt.Assets), money(pt.Liabilities))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if sum, err := history.Summarize(series); err == nil {
		fmt.Fprintf(a.out, "Latest %s, high %s (%s), low %s (%s)\n",
			money(sum.Latest.NetWorth),
			money(sum.High.NetWorth), sum.High.Date.Format(models.DateLayout),
			money(sum.Low.NetWorth), sum.Low.Date.Format(models.DateLayout))
	}

	g, err := history.ComputeGrowth(series)
	if errors.Is(err, history.ErrInsufficientData) {
		fmt.Fprintln(a.out, "Growth: need at least two points")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Growth: %s (%s%%) over %d month(s), %s per month\n",
		money(g.Amount), g.Percentage.StringFixed(1), g.Months, money(g.AverageMonthly))
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	loc, err := a.netWorthService.Export(ctx, f, a.sink)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", loc)
	return nil
}
