package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/store"
	"github.com/stash-cli/stash/internal/transfer"
	"github.com/stash-cli/stash/internal/vault"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Show and act on the smart transfer recommendation",
	RunE:  runTransferStatus,
}

var transferConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Accept the recommendation (\"move now\")",
	RunE:  runTransferConfirm,
}

var transferDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Record that the money actually moved",
	RunE:  runTransferDone,
}

var transferUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Return an unconfirmed transfer to the pending pool",
	RunE:  runTransferUndo,
}

var transferDismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Drop the pending recommendation without transferring",
	RunE:  runTransferDismiss,
}

func init() {
	transferCmd.AddCommand(transferConfirmCmd)
	transferCmd.AddCommand(transferDoneCmd)
	transferCmd.AddCommand(transferUndoCmd)
	transferCmd.AddCommand(transferDismissCmd)
	rootCmd.AddCommand(transferCmd)
}

func openAggregator(st *store.Store, cfg config.Config) (*transfer.Aggregator, error) {
	snap, err := st.TransferSnapshot()
	if err != nil {
		return nil, err
	}
	return transfer.New(snap, cfg.Transfer.MinTransferCents,
		time.Duration(cfg.Transfer.BatchWindowMinutes)*time.Minute), nil
}

// mutateAggregator runs fn against the stored accumulator inside one store
// transaction and returns the resulting snapshot plus whether fn applied.
func mutateAggregator(st *store.Store, cfg config.Config, fn func(*transfer.Aggregator) bool) (model.SmartTransferSnapshot, bool, error) {
	window := time.Duration(cfg.Transfer.BatchWindowMinutes) * time.Minute
	var applied bool
	snap, err := st.UpdateTransferSnapshot(func(snap model.SmartTransferSnapshot) model.SmartTransferSnapshot {
		agg := transfer.New(snap, cfg.Transfer.MinTransferCents, window)
		applied = fn(agg)
		return agg.Snapshot()
	})
	return snap, applied, err
}

func runTransferStatus(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	agg, err := openAggregator(st, cfg)
	if err != nil {
		return err
	}
	rec := agg.Recommendation()
	symbol := currencySymbol(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SMART TRANSFER"))
	fmt.Println()
	fmt.Printf("  Status: %s\n\n", cli.RenderTransferStatus(rec.Status))

	if rec.TotalCents == 0 {
		fmt.Println("  Nothing pending. Log expenses to build up a transfer.")
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Destination", "Amount"},
		Rows: [][]string{
			{"Emergency fund", cli.FormatMoney(rec.EmergencyCents, symbol)},
			{"Investments", cli.FormatMoney(rec.InvestmentCents, symbol)},
			{"---"},
			{"Total", cli.FormatMoney(rec.TotalCents, symbol)},
		},
	}))
	fmt.Printf("  Batched from %d expenses\n", rec.ActiveExpenseCount)

	switch rec.Status {
	case model.TransferReady:
		fmt.Println("  Run `stash transfer confirm` when you make the transfer.")
	case model.TransferAwaitingConfirmation:
		fmt.Println("  Run `stash transfer done` once the money has moved, or `undo` to return it.")
	case model.TransferAccumulating:
		fmt.Println("  Still batching recent expenses; check back in a few minutes.")
	}
	return nil
}

func runTransferConfirm(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, ok, err := mutateAggregator(st, cfg, func(agg *transfer.Aggregator) bool {
		return agg.Confirm()
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  Nothing pending to confirm.")
		return nil
	}
	total := snap.AwaitingEmergencyCents + snap.AwaitingInvestmentCents
	fmt.Printf("  Move %s now, then run `stash transfer done`.\n",
		cli.FormatMoney(total, currencySymbol(cfg)))
	return nil
}

// runTransferDone clears the awaiting bucket and records the moved amounts
// as reconciled contributions into the matching vaults.
func runTransferDone(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var emergency, invest int64
	_, ok, err := mutateAggregator(st, cfg, func(agg *transfer.Aggregator) bool {
		var done bool
		emergency, invest, done = agg.MarkDone()
		return done
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  No transfer awaiting confirmation.")
		return nil
	}

	if err := recordTransfer(st, emergency, invest); err != nil {
		return err
	}
	fmt.Printf("  Recorded transfer of %s.\n",
		cli.FormatMoney(emergency+invest, currencySymbol(cfg)))
	return nil
}

// recordTransfer lands the emergency share in emergency-looking vaults and
// the invest share in passive-investment vaults, falling back to the
// general distributor when no matching vault exists.
func recordTransfer(st *store.Store, emergencyCents, investCents int64) error {
	vaults, err := st.ListVaults(false)
	if err != nil {
		return err
	}

	now := time.Now()
	var contribs []model.VaultContribution

	pools := []struct {
		cents  int64
		vaults []model.SmartVault
	}{
		{emergencyCents, filterVaults(vaults, model.VaultShortTerm)},
		{investCents, filterVaults(vaults, model.VaultPassiveInvestment)},
	}
	for _, pool := range pools {
		if pool.cents <= 0 {
			continue
		}
		targets := pool.vaults
		if len(targets) == 0 {
			targets = vaults
		}
		dist := vault.Distribute(pool.cents, targets, now)
		for _, c := range vault.AsContributions(dist, model.SourceTransfer, now) {
			c.Reconciled = true
			contribs = append(contribs, c)
		}
	}
	return st.ApplyContributions(contribs)
}

func filterVaults(vaults []model.SmartVault, t model.VaultType) []model.SmartVault {
	var out []model.SmartVault
	for _, v := range vaults {
		if v.Type == t {
			out = append(out, v)
		}
	}
	return out
}

func runTransferUndo(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	_, ok, err := mutateAggregator(st, cfg, func(agg *transfer.Aggregator) bool {
		return agg.ReturnToPending()
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  No transfer awaiting confirmation.")
		return nil
	}
	fmt.Println("  Returned the transfer to the pending pool.")
	return nil
}

func runTransferDismiss(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	_, ok, err := mutateAggregator(st, cfg, func(agg *transfer.Aggregator) bool {
		return agg.Dismiss()
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  Nothing pending to dismiss.")
		return nil
	}
	fmt.Println("  Dismissed. The reserved money stays where it is.")
	return nil
}
