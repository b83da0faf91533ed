package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/export"
	"github.com/target/marketplace-console/internal/service"
)

func runExport(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	preset := fs.String("preset", "", "column preset (defaults to the dataset's first preset)")
	search := fs.String("search", "", "only export rows matching this search")
	outPath := fs.String("out", "", "write CSV to this file instead of stdout")
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: export <%s> [flags]", strings.Join(datasetNames(), "|"))
	}
	dataset := export.Dataset(args[0])
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	presets, err := export.LoadPresets(cmdCtx.Config.Export.PresetsFile)
	if err != nil {
		return fmt.Errorf("load export presets: %w", err)
	}
	client, err := newAdminClient(cmdCtx)
	if err != nil {
		return err
	}
	svc := service.NewExportService(service.ExportServiceOptions{
		Backend:  client,
		Presets:  presets,
		PageSize: cmdCtx.Config.Export.PageSize,
	})

	var w io.Writer = cmdCtx.Out
	if *outPath != "" {
		f, createErr := os.Create(*outPath)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", *outPath, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				cmdCtx.Logger.Warn("close export file failed", "path", *outPath, "error", closeErr)
			}
		}()
		w = f
	}

	n, err := svc.Export(cmdCtx.Ctx, nil, service.ExportRequest{
		Dataset: dataset,
		Preset:  *preset,
		Search:  *search,
	}, w)
	if err != nil {
		return err
	}
	cmdCtx.Logger.InfoContext(cmdCtx.Ctx, "export complete", "dataset", dataset, "rows", n, "out", *outPath)
	return nil
}

func datasetNames() []string {
	out := make([]string, 0, len(export.Datasets))
	for _, d := range export.Datasets {
		out = append(out, string(d))
	}
	return out
}

func runDisputes(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("disputes", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	status := fs.String("status", "", "filter by status (OPEN, UNDER_REVIEW, AWAITING_EVIDENCE, RESOLVED, CLOSED)")
	limit := fs.Int("limit", 25, "maximum disputes to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newAdminClient(cmdCtx)
	if err != nil {
		return err
	}
	svc := service.NewDisputeService(service.DisputeServiceOptions{Backend: client})
	page, err := svc.List(cmdCtx.Ctx, nil, model.DisputeListOptions{
		ListOptions: model.ListOptions{Limit: *limit},
		Status:      model.DisputeStatus(strings.ToUpper(strings.TrimSpace(*status))),
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tSTATUS\tPRIORITY\tTYPE\tJOB\tRAISED\t"); err != nil {
		return err
	}
	for _, d := range page.Items {
		job := d.JobTitle
		if job == "" {
			job = d.JobID
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			d.ID, d.Status, d.Priority, d.Type, job, d.CreatedAt.Format(time.DateOnly)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%d of %d disputes\n", len(page.Items), page.Total)
}

func runRefund(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("refund", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Out)
	amount := fs.String("amount", "", "partial refund amount, e.g. 25.50 (default: full refund)")
	reason := fs.String("reason", "", "reason recorded with the refund (required)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: refund <invoice-id> -reason <text> [-amount 25.50] [-yes]")
	}
	invoiceID := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if strings.TrimSpace(*reason) == "" {
		return errors.New("-reason is required")
	}

	in := service.RefundInput{InvoiceID: invoiceID, Reason: *reason}
	if *amount != "" {
		m, err := model.ParseMoney(*amount)
		if err != nil {
			return fmt.Errorf("parse -amount: %w", err)
		}
		in.Amount = &m
	}

	client, err := newAdminClient(cmdCtx)
	if err != nil {
		return err
	}
	svc := service.NewInvoiceService(service.InvoiceServiceOptions{Backend: client})

	inv, err := svc.Get(cmdCtx.Ctx, nil, invoiceID)
	if err != nil {
		return err
	}
	if err := service.ValidateRefund(inv, in); err != nil {
		return err
	}

	what := "the full " + inv.Total.String()
	if in.Amount != nil {
		what = in.Amount.String() + " of " + inv.Total.String()
	}
	if err := confirm(cmdCtx, *yes, fmt.Sprintf("Refund %s on invoice %s?", what, inv.Number)); err != nil {
		return err
	}

	payment, err := svc.Refund(cmdCtx.Ctx, nil, in)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "payment %s is %s; refunded %s\n", payment.ID, payment.Status, payment.RefundedAmount)
}
