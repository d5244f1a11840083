package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/loadmap"
)

func listCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List saved load maps, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			items, err := opts.controller().List(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to list load maps: %w", err)
			}
			if len(items) == 0 {
				fmt.Fprintln(opts.Out, "No load maps found.")
				return nil
			}

			w := tabwriter.NewWriter(opts.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tRUN\tTRAILER\tUPDATED")
			for _, s := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.RunNumber, s.TrailerNumber, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func showCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a load map with its pallet grid and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctrl := opts.controller()
			s, err := ctrl.Open(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to open load map: %w", err)
			}
			printSession(opts, s)
			return nil
		},
	}
}

func newCmd(opts *Options) *cobra.Command {
	var (
		fields  map[string]string
		pallets []string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a load map",
		Example: `  loadmapctl new --field title="Run 12" --field run_number=12 \
    --pallet 1=Frozen:204 --pallet 16=Eggs::B --pallet 15=Bread!`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := opts.controller()
			if _, err := ctrl.Open(cmd.Context(), 0); err != nil {
				return err
			}
			err := ctrl.Update(func(s *editor.Session) error {
				v := s.Form()
				for k, val := range fields {
					v.Set(k, val)
				}
				s.SetForm(v)
				for _, arg := range pallets {
					pos, edit, err := parsePalletArg(arg)
					if err != nil {
						return err
					}
					if err := s.EditPallet(pos, edit); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			return save(cmd, opts, ctrl, "Created")
		},
	}
	cmd.Flags().StringToStringVar(&fields, "field", nil, "form field as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&pallets, "pallet", nil, "pallet as pos=Type[:store[:zone]][!] where ! marks a bulkhead (repeatable)")
	return cmd
}

func palletCmd(opts *Options) *cobra.Command {
	var (
		palletType string
		store      string
		zone       string
		bulkhead   bool
	)
	cmd := &cobra.Command{
		Use:   "pallet <id> <pos>",
		Short: "Set one pallet slot of a saved load map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, pos, err := parseIDPos(args)
			if err != nil {
				return err
			}
			ctrl := opts.controller()
			if _, err := ctrl.Open(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to open load map: %w", err)
			}
			edit := loadmap.Edit{Type: loadmap.PalletType(palletType), Store: store, Zone: zone, Bulkhead: bulkhead}
			if err := ctrl.EditPallet(pos, edit); err != nil {
				return err
			}
			return save(cmd, opts, ctrl, "Updated")
		},
	}
	cmd.Flags().StringVar(&palletType, "type", "", "pallet type ("+typeList()+")")
	cmd.Flags().StringVar(&store, "store", "", "store number")
	cmd.Flags().StringVar(&zone, "zone", "", "zone")
	cmd.Flags().BoolVar(&bulkhead, "bulkhead", false, "mark the slot as a bulkhead")
	return cmd
}

func clearCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id> <pos>",
		Short: "Blank one pallet slot of a saved load map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, pos, err := parseIDPos(args)
			if err != nil {
				return err
			}
			ctrl := opts.controller()
			if _, err := ctrl.Open(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to open load map: %w", err)
			}
			if err := ctrl.ClearPallet(pos); err != nil {
				return err
			}
			return save(cmd, opts, ctrl, "Updated")
		},
	}
}

func deleteCmd(opts *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a load map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctrl := opts.controller()
			if _, err := ctrl.Open(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to open load map: %w", err)
			}

			confirm := opts.confirmer()
			if yes {
				confirm = editor.ConfirmFunc(func(string) bool { return true })
			}
			err = ctrl.Delete(cmd.Context(), confirm)
			if errors.Is(err, editor.ErrNotConfirmed) {
				fmt.Fprintln(opts.Out, "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.Out, "%s Deleted load map %d\n", color.GreenString("✓"), id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func exportCmd(opts *Options) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Download a load map as PDF or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if format != "pdf" && format != "xlsx" {
				return fmt.Errorf("invalid format %q: use pdf or xlsx", format)
			}
			if output == "" {
				output = fmt.Sprintf("loadmap-%d.%s", id, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			n, err := opts.client().DownloadExport(cmd.Context(), id, format, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(output)
				return fmt.Errorf("failed to export load map %d: %w", id, err)
			}
			fmt.Fprintf(opts.Out, "%s Wrote %s (%d bytes)\n", color.GreenString("✓"), output, n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "pdf or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default loadmap-<id>.<format>)")
	return cmd
}

func save(cmd *cobra.Command, opts *Options, ctrl *editor.Controller, verb string) error {
	saved, err := ctrl.Save(cmd.Context())
	if saved == nil {
		return err
	}
	fmt.Fprintf(opts.Out, "%s %s load map %d: %s\n", color.GreenString("✓"), verb, saved.ID, saved.Title)
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid load map id %q", s)
	}
	return uint(id), nil
}

func parseIDPos(args []string) (uint, int, error) {
	id, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil || !loadmap.ValidPosition(pos) {
		return 0, 0, fmt.Errorf("invalid pallet position %q: use 1-%d", args[1], loadmap.PalletCount)
	}
	return id, pos, nil
}

// parsePalletArg reads pos=Type[:store[:zone]][!].
func parsePalletArg(arg string) (int, loadmap.Edit, error) {
	posText, rest, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, loadmap.Edit{}, fmt.Errorf("invalid pallet %q: want pos=Type[:store[:zone]]", arg)
	}
	pos, err := strconv.Atoi(strings.TrimSpace(posText))
	if err != nil || !loadmap.ValidPosition(pos) {
		return 0, loadmap.Edit{}, fmt.Errorf("invalid pallet position in %q", arg)
	}

	var e loadmap.Edit
	if strings.HasSuffix(rest, "!") {
		e.Bulkhead = true
		rest = strings.TrimSuffix(rest, "!")
	}
	parts := strings.SplitN(rest, ":", 3)
	e.Type = loadmap.PalletType(parts[0])
	if len(parts) > 1 {
		e.Store = parts[1]
	}
	if len(parts) > 2 {
		e.Zone = parts[2]
	}
	return pos, e, nil
}

func typeList() string {
	names := make([]string, len(loadmap.PalletTypes))
	for i, t := range loadmap.PalletTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
