// Package cli implements loadmapctl, a terminal front end over the load map
// REST API driven by the same editor controller as the browser UI.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"warehouse/loadmap/internal/client"
	"warehouse/loadmap/internal/editor"
)

// Options carries the streams and API location shared by every command.
type Options struct {
	APIURL string
	Out    io.Writer
	In     io.Reader
}

func (o *Options) controller() *editor.Controller {
	return editor.NewController(o.client())
}

func (o *Options) client() *client.LoadMapClient {
	return client.NewLoadMapClient(o.APIURL)
}

// confirmer prompts on In and accepts y or yes.
func (o *Options) confirmer() editor.Confirmer {
	return editor.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(o.Out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(o.In).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

// RootCmd builds the loadmapctl command tree.
func RootCmd(opts *Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}

	root := &cobra.Command{
		Use:           "loadmapctl",
		Short:         "Inspect and edit trailer load maps",
		Long:          "loadmapctl lists, edits, deletes and exports load maps through the load map API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetIn(opts.In)
	root.PersistentFlags().StringVar(&opts.APIURL, "api", opts.APIURL, "API base URL (default $LOADMAP_API_URL or http://localhost:5501)")

	root.AddCommand(listCmd(opts))
	root.AddCommand(showCmd(opts))
	root.AddCommand(newCmd(opts))
	root.AddCommand(palletCmd(opts))
	root.AddCommand(clearCmd(opts))
	root.AddCommand(deleteCmd(opts))
	root.AddCommand(exportCmd(opts))
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, opts *Options, args []string) error {
	root := RootCmd(opts)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
