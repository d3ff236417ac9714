package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/valuation"
	"github.com/dmitrijs2005/wealthwise/internal/common"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("wrong arguments, see 'help'")

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func (a *App) Portfolios(ctx context.Context, _ []string) error {
	ps, err := a.portfolioService.List(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(a.out, "No portfolios yet, create one with 'addportfolio'")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tCREATED")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Description, p.CreatedAt.Format(models.DateLayout))
	}
	return tw.Flush()
}

func (a *App) AddPortfolio(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Portfolio name", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	p, err := a.portfolioService.Create(ctx, models.PortfolioInput{Name: name, Description: desc})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created portfolio %s (%s)\n", p.Name, p.ID)
	return nil
}

// EditPortfolio renames a portfolio or changes its description. An empty
// answer keeps the current value.
func (a *App) EditPortfolio(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	cur, err := a.portfolioService.Get(ctx, args[0])
	if err != nil {
		return err
	}
	name, err := GetTextOr(a.reader, "Portfolio name", cur.Name, a.out)
	if err != nil {
		return err
	}
	desc, err := GetTextOr(a.reader, "Description", cur.Description, a.out)
	if err != nil {
		return err
	}
	p, err := a.portfolioService.Update(ctx, cur.ID, models.PortfolioInput{Name: name, Description: desc})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated portfolio %s (%s)\n", p.Name, p.ID)
	return nil
}

func (a *App) RemovePortfolio(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.portfolioService.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) Assets(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	hs, err := a.portfolioService.Assets(ctx, args[0])
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		fmt.Fprintln(a.out, "No holdings in this portfolio")
		return nil
	}
	printHoldings(a, hs)
	return nil
}

func printHoldings(a *App, hs []models.Holding) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tTYPE\tIDENTIFIER\tQUANTITY\tPRICE\tVALUE\t")
	for _, h := range hs {
		v := valuation.Contribution(h)
		if h.Kind.IsLiability() {
			v = v.Neg()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", h.ID, h.Kind, h.Identifier, h.Quantity, money(h.UnitPrice), money(v))
	}
	_ = tw.Flush()
}

// AddAsset walks through the fields of a new holding. Kind, quantity and
// price are checked by the service before anything is sent.
func (a *App) AddAsset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	kinds := make([]string, len(models.Kinds))
	for i, k := range models.Kinds {
		kinds[i] = string(k)
	}
	kind, err := getSimpleText(a.reader, "Type ("+strings.Join(kinds, ", ")+")", a.out)
	if err != nil {
		return err
	}
	ident, err := getSimpleText(a.reader, "Identifier (ticker, coin, address or lender)", a.out)
	if err != nil {
		return err
	}
	qty, err := a.readDecimal("Quantity", "1")
	if err != nil {
		return err
	}
	price, err := a.readDecimal("Unit price", "")
	if err != nil {
		return err
	}
	purchased, err := GetTextOr(a.reader, "Purchase date (YYYY-MM-DD)", time.Now().Format(models.DateLayout), a.out)
	if err != nil {
		return err
	}
	date, err := models.ParseDate(purchased)
	if err != nil {
		return fmt.Errorf("purchase date: %w", err)
	}
	md, err := GetMetadata(a.reader, a.out)
	if err != nil {
		return err
	}

	h, err := a.portfolioService.AddAsset(ctx, args[0], models.AssetInput{
		Kind:         models.HoldingKind(strings.ToLower(kind)),
		Identifier:   ident,
		Quantity:     qty,
		UnitPrice:    price,
		PurchaseDate: date,
		Metadata:     md,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s (%s)\n", h.Kind, h.Identifier, h.ID)
	return nil
}

// EditAsset updates identifier, quantity, price and purchase date of a
// holding. Kind and metadata are kept.
func (a *App) EditAsset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	hs, err := a.portfolioService.Assets(ctx, args[0])
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(hs, func(h models.Holding) bool { return h.ID == args[1] })
	if idx < 0 {
		return fmt.Errorf("asset %s: %w", args[1], common.ErrorNotFound)
	}
	cur := hs[idx]

	ident, err := GetTextOr(a.reader, "Identifier", cur.Identifier, a.out)
	if err != nil {
		return err
	}
	qty, err := a.readDecimal("Quantity", cur.Quantity.String())
	if err != nil {
		return err
	}
	price, err := a.readDecimal("Unit price", cur.UnitPrice.String())
	if err != nil {
		return err
	}
	purchased, err := GetTextOr(a.reader, "Purchase date (YYYY-MM-DD)", cur.PurchaseDate.Format(models.DateLayout), a.out)
	if err != nil {
		return err
	}
	date, err := models.ParseDate(purchased)
	if err != nil {
		return fmt.Errorf("purchase date: %w", err)
	}

	h, err := a.portfolioService.UpdateAsset(ctx, args[0], cur.ID, models.AssetInput{
		Kind:         cur.Kind,
		Identifier:   ident,
		Quantity:     qty,
		UnitPrice:    price,
		PurchaseDate: date,
		Metadata:     cur.Metadata,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %s (%s)\n", h.Kind, h.Identifier, h.ID)
	return nil
}

// Valuations lists the recorded values of one portfolio. Named periods
// count back from today.
func (a *App) Valuations(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	p := history.Named(history.DefaultPeriod)
	if len(args) == 2 {
		parsed, err := history.ParsePeriod(args[1])
		if err != nil {
			return err
		}
		p = parsed
	}
	start, end := p.Bounds(models.Day(time.Now()))

	vs, err := a.portfolioService.Valuations(ctx, args[0], start, end)
	if err != nil {
		return err
	}
	if len(vs) == 0 {
		fmt.Fprintf(a.out, "No valuations for %s\n", p)
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tVALUE\t")
	for _, v := range vs {
		fmt.Fprintf(tw, "%s\t%s\t\n", v.Date.Format(models.DateLayout), money(v.Value))
	}
	return tw.Flush()
}

func (a *App) readDecimal(prompt, def string) (decimal.Decimal, error) {
	s, err := GetTextOr(a.reader, prompt, def, a.out)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %q is not a number", strings.ToLower(prompt), s)
	}
	return d, nil
}

func (a *App) RemoveAsset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := a.portfolioService.RemoveAsset(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
