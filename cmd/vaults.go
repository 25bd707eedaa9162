package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/vault"
)

var (
	flagVaultTarget     string
	flagVaultPriority   string
	flagVaultType       string
	flagVaultManualPct  float64
	flagVaultTargetDate string
	flagVaultSchedule   string
	flagVaultAutoAmount string
	flagVaultArchived   bool
)

var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "Manage savings vaults",
	RunE:  runVaultsList,
}

var vaultsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a vault",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultsAdd,
}

var vaultsFundCmd = &cobra.Command{
	Use:   "fund <amount>",
	Short: "Distribute a manual deposit across vaults",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultsFund,
}

var vaultsArchiveCmd = &cobra.Command{
	Use:   "archive <vault-id>",
	Short: "Archive a vault (its ledger history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultsArchive,
}

func init() {
	vaultsCmd.Flags().BoolVarP(&flagVaultArchived, "all", "a", false, "Include archived vaults")

	vaultsAddCmd.Flags().StringVar(&flagVaultTarget, "target", "", "Target amount, e.g. 1500 or 1500.00")
	vaultsAddCmd.Flags().StringVar(&flagVaultPriority, "priority", "medium", "Priority: low, medium, high, critical")
	vaultsAddCmd.Flags().StringVar(&flagVaultType, "type", "short-term", "Type: short-term, long-term, passive-investment")
	vaultsAddCmd.Flags().Float64Var(&flagVaultManualPct, "manual-pct", 0, "Fixed pool share (0-1); 0 means dynamic allocation")
	vaultsAddCmd.Flags().StringVar(&flagVaultTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
	vaultsAddCmd.Flags().StringVar(&flagVaultSchedule, "schedule", "", "Auto-deposit cron schedule, e.g. \"0 9 1 * *\"")
	vaultsAddCmd.Flags().StringVar(&flagVaultAutoAmount, "auto-amount", "", "Auto-deposit amount per schedule tick")

	vaultsCmd.AddCommand(vaultsAddCmd)
	vaultsCmd.AddCommand(vaultsFundCmd)
	vaultsCmd.AddCommand(vaultsArchiveCmd)
	rootCmd.AddCommand(vaultsCmd)
}

func runVaultsList(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	vaults, err := st.ListVaults(flagVaultArchived)
	if err != nil {
		return err
	}
	if len(vaults) == 0 {
		fmt.Println("\n  No vaults yet. Create one with `stash vaults add <name>`.")
		return nil
	}

	symbol := currencySymbol(cfg)
	now := time.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS VAULTS"))
	fmt.Println()

	rows := make([][]string, 0, len(vaults))
	var totalCents int64
	for _, v := range vaults {
		totalCents += v.BalanceCents
		state := v.Priority.String()
		if v.Archived {
			state = "archived"
		} else if v.FullyFunded() {
			state = "funded"
		}
		next := ""
		if at, ok := vault.NextDeposit(v, now); ok {
			next = at.Format("Jan 2")
		}
		rows = append(rows, []string{
			v.ID[:8], v.Name,
			cli.FormatMoney(v.BalanceCents, symbol),
			cli.FormatMoney(v.TargetCents, symbol),
			cli.FormatPercent(v.Progress()),
			v.Mode.String(), state, next,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Balance", "Target", "Progress", "Mode", "State", "Next Deposit"},
		Rows:    rows,
	}))

	for _, v := range vaults {
		if v.TargetCents > 0 && !v.Archived {
			fmt.Printf("  %-14s %s\n", v.Name,
				cli.RenderProgressBar(v.BalanceCents, v.TargetCents, 24, symbol))
		}
	}
	fmt.Printf("\n  Total saved: %s\n", cli.FormatMoney(totalCents, symbol))
	return nil
}

func runVaultsAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("vault name must not be empty")
	}

	var targetCents int64
	if flagVaultTarget != "" {
		var err error
		targetCents, err = parseMoney(flagVaultTarget)
		if err != nil {
			return err
		}
	}
	var autoCents int64
	if flagVaultAutoAmount != "" {
		var err error
		autoCents, err = parseMoney(flagVaultAutoAmount)
		if err != nil {
			return err
		}
	}
	if err := vault.ValidateSchedule(flagVaultSchedule); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	mode := model.AllocationDynamicAuto
	if flagVaultManualPct > 0 {
		if flagVaultManualPct > 1 {
			return fmt.Errorf("manual-pct must be in (0,1]")
		}
		mode = model.AllocationManual
	}

	v := model.SmartVault{
		ID:                  uuid.NewString(),
		Name:                name,
		TargetCents:         targetCents,
		Priority:            parsePriority(flagVaultPriority),
		Type:                parseVaultType(flagVaultType),
		Mode:                mode,
		ManualAllocationPct: flagVaultManualPct,
		AutoDepositSchedule: flagVaultSchedule,
		AutoDepositCents:    autoCents,
		CreatedAt:           time.Now(),
	}
	if flagVaultTargetDate != "" {
		d, err := parseDate(flagVaultTargetDate)
		if err != nil {
			return err
		}
		v.TargetDate = &d
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveVault(v); err != nil {
		return fmt.Errorf("saving vault: %w", err)
	}
	fmt.Printf("  Created vault %q (%s, %s)\n", v.Name, v.ID[:8], v.Mode)
	return nil
}

func runVaultsFund(_ *cobra.Command, args []string) error {
	amountCents, err := parseMoney(args[0])
	if err != nil {
		return err
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	vaults, err := st.ListVaults(false)
	if err != nil {
		return err
	}

	now := time.Now()
	dist := vault.Distribute(amountCents, vaults, now)
	contribs := vault.AsContributions(dist, model.SourceManual, now)
	if err := st.ApplyContributions(contribs); err != nil {
		return fmt.Errorf("applying contributions: %w", err)
	}

	symbol := currencySymbol(cfg)
	byID := make(map[string]model.SmartVault, len(vaults))
	for _, v := range vaults {
		byID[v.ID] = v
	}
	for _, c := range contribs {
		fmt.Printf("  %-14s +%s\n", byID[c.VaultID].Name, cli.FormatMoney(c.AmountCents, symbol))
	}
	if dist.UnallocatedCents > 0 {
		fmt.Printf("  %s unallocated\n", cli.FormatMoney(dist.UnallocatedCents, symbol))
	}
	return nil
}

func runVaultsArchive(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := resolveVaultID(st, args[0])
	if err != nil {
		return err
	}
	if err := st.ArchiveVault(id); err != nil {
		return err
	}
	fmt.Printf("  Archived vault %s\n", id[:8])
	return nil
}

// resolveVaultID accepts a full id or an unambiguous prefix.
func resolveVaultID(st vaultLister, raw string) (string, error) {
	vaults, err := st.ListVaults(true)
	if err != nil {
		return "", err
	}
	var match string
	for _, v := range vaults {
		if v.ID == raw {
			return v.ID, nil
		}
		if strings.HasPrefix(v.ID, raw) {
			if match != "" {
				return "", fmt.Errorf("vault id %q is ambiguous", raw)
			}
			match = v.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no vault matching %q", raw)
	}
	return match, nil
}

type vaultLister interface {
	ListVaults(includeArchived bool) ([]model.SmartVault, error)
}

func parsePriority(s string) model.VaultPriority {
	switch strings.ToLower(s) {
	case "critical":
		return model.PriorityCritical
	case "high":
		return model.PriorityHigh
	case "low":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

func parseVaultType(s string) model.VaultType {
	switch strings.ToLower(s) {
	case "long-term":
		return model.VaultLongTerm
	case "passive-investment":
		return model.VaultPassiveInvestment
	default:
		return model.VaultShortTerm
	}
}
