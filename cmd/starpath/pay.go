package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/payment"
)

var (
	flagMemo         string
	flagPayTimeout   time.Duration
	flagPaymentLimit int
)

var payCmd = &cobra.Command{
	Use:   "pay <amount>",
	Short: "Make an in-game purchase",
	Long: `Create and complete a payment for the current player and record it.

Examples:
  starpath pay 1.5
  starpath pay 3 --memo "extra lives" --player alice`,
	Args: cobra.ExactArgs(1),
	RunE: runPay,
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List recorded purchases",
	Long:  `Show the current player's payments, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runPayments,
}

func init() {
	payCmd.Flags().StringVar(&flagMemo, "memo", "", "Purchase description (default from config)")
	payCmd.Flags().DurationVar(&flagPayTimeout, "timeout", 30*time.Second, "Give up on the payment after this long")
	paymentsCmd.Flags().IntVar(&flagPaymentLimit, "limit", 20, "Number of payments to show")
}

func runPay(_ *cobra.Command, args []string) error {
	amount, err := payment.ParseAmount(args[0])
	if err != nil {
		return err
	}

	env, err := loadEnv()
	if err != nil {
		return err
	}
	memo := flagMemo
	if memo == "" {
		memo = env.cfg.Payment.Memo
	}

	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc := payment.NewService(payment.NewLocalGateway(), env.logger)
	svc.SetRecorder(store)

	ctx, cancel := context.WithTimeout(context.Background(), flagPayTimeout)
	defer cancel()

	p, err := svc.Purchase(ctx, payment.Request{
		Player: env.cfg.Player.Name,
		Amount: amount,
		Memo:   memo,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Payment %s %s\n", p.ID, p.Status)
	fmt.Printf("  Amount: %g\n", p.Amount)
	fmt.Printf("  TxID:   %s\n", p.TxID)
	return nil
}

func runPayments(_ *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Payments(env.cfg.Player.Name, flagPaymentLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No payments recorded for %s.\n", env.cfg.Player.Name)
		return nil
	}

	fmt.Printf("  %-18s  %-10s  %-10s  %-16s  %s\n", "Payment", "Amount", "Status", "Date", "Memo")
	fmt.Printf("  %-18s  %-10s  %-10s  %-16s  %s\n", "-------", "------", "------", "----", "----")
	for _, e := range entries {
		fmt.Printf("  %-18s  %-10g  %-10s  %-16s  %s\n",
			e.PaymentID, e.Amount, e.Status, e.CreatedAt.Format("2006-01-02 15:04"), e.Memo)
	}
	return nil
}
