package main

import (
	"context"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/aria7-op/School-MIS-sub029/app/services"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (c *cli) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "balance <student-id>",
		Short:   "Show the balance of a student against the annual entitlement",
		Example: "  duesctl balance --school 7f1c... 2b9e...",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(func(svc *services.FeeService) error {
				report, err := svc.Balance(cmd.Context(), args[0], c.schoolID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func (c *cli) expectedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expected <student-id>",
		Short: "Show the monthly fee entitlement of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(func(svc *services.FeeService) error {
				fees, err := svc.ExpectedFees(cmd.Context(), args[0], c.schoolID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), fees)
			})
		},
	}
}

func (c *cli) duesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dues <student-id>",
		Short: "Classify every academic month of a student as paid, partial or unpaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(func(svc *services.FeeService) error {
				dues, err := svc.Dues(cmd.Context(), args[0], c.schoolID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dues)
			})
		},
	}
}

func (c *cli) scanCmd() *cobra.Command {
	var (
		classID string
		minDue  string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the students of a school with outstanding dues, largest first",
		Example: `  duesctl scan --school 7f1c... --min-due 5000
  duesctl scan --school 7f1c... --class 91aa... --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			minDueAmount, err := decimal.NewFromString(minDue)
			if err != nil {
				return err
			}
			return c.withService(func(svc *services.FeeService) error {
				scan, err := svc.StudentsWithDues(cmd.Context(), c.schoolID, models.DuesQuery{
					ClassID:      classID,
					MinDueAmount: minDueAmount,
					Limit:        limit,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), scan)
			})
		},
	}
	cmd.Flags().StringVar(&classID, "class", "", "restrict to a class id")
	cmd.Flags().StringVar(&minDue, "min-due", "0", "minimum amount due")
	cmd.Flags().IntVar(&limit, "limit", services.DefaultDuesScanLimit, "maximum students to scan")
	return cmd
}

func (c *cli) reconcileCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Re-derive and persist payment statuses for a school",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return c.withService(func(svc *services.FeeService) error {
				result, err := svc.ReconcilePaymentStatuses(ctx, c.schoolID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "abort the run after this long (0 disables)")
	return cmd
}
