// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cmdtrie-cli/internal/issue"
	"cmdtrie-cli/internal/sshserver"
)

type serveOptions struct {
	host  string
	port  int
	ttl   time.Duration
	label string
}

// newServeCommand creates the `cmdtrie serve` command.
func newServeCommand(app *App) *cobra.Command {
	var opts serveOptions

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the declared commands over SSH",
		Long: `Serve the declared commands over SSH.

Each SSH session runs one declared command: the words of the session
command are resolved exactly like 'cmdtrie run'. A session without a
command lists the top-level command words. Clients authenticate with the
printed token as password; public keys are rejected.

Examples:
  cmdtrie serve --port 2222
  ssh -p 2222 cmdtrie@127.0.0.1 get thingy 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app, cmd, opts)
		},
	}

	serveCmd.Flags().StringVar(&opts.host, "host", "", "address to bind (default from config: server.host)")
	serveCmd.Flags().IntVar(&opts.port, "port", -1, "port to listen on, 0 picks a free port (default from config: server.port)")
	serveCmd.Flags().DurationVar(&opts.ttl, "token-ttl", 0, "lifetime of the printed token (default from config: server.token_ttl)")
	serveCmd.Flags().StringVar(&opts.label, "label", "operator", "name logged with sessions authenticated by the printed token")

	return serveCmd
}

// serverConfig merges the serve flags over the server config.
func (a *App) serverConfig(opts serveOptions) sshserver.Config {
	cfg := sshserver.DefaultConfig()
	cfg.Host = sshserver.HostAddress(a.cfg.Server.Host)
	cfg.Port = sshserver.ListenPort(a.cfg.Server.Port)
	cfg.TokenTTL = a.cfg.Server.TokenTTL
	if opts.host != "" {
		cfg.Host = sshserver.HostAddress(opts.host)
	}
	if opts.port >= 0 {
		cfg.Port = sshserver.ListenPort(opts.port)
	}
	if opts.ttl > 0 {
		cfg.TokenTTL = opts.ttl
	}

	logger := a.logger.WithPrefix("ssh-server")
	if logger.GetLevel() > log.InfoLevel {
		logger.SetLevel(log.InfoLevel)
	}
	cfg.Logger = logger
	return cfg
}

func runServe(ctx context.Context, app *App, cmd *cobra.Command, opts serveOptions) error {
	d, err := app.Dispatcher()
	if err != nil {
		return err
	}

	srv := sshserver.New(app.serverConfig(opts), d, app.Executor())
	if err := srv.Start(ctx); err != nil {
		return issue.NewErrorContext().
			WithOperation("start SSH server").
			WithResource(app.serverConfig(opts).Host.String()).
			WithIssue(issue.ServerStartFailedId).
			WithSuggestion("Pick another port with --port, or 0 for any free port").
			Wrap(err).
			BuildError()
	}

	info, err := srv.GetConnectionInfo(opts.label)
	if err != nil {
		_ = srv.Stop()
		return err
	}
	printConnectionInfo(cmd.OutOrStdout(), info)

	select {
	case <-ctx.Done():
	case err, ok := <-srv.Err():
		if ok && err != nil {
			_ = srv.Stop()
			return fmt.Errorf("SSH server failed: %w", err)
		}
	}
	return srv.Stop()
}

func printConnectionInfo(w io.Writer, info *sshserver.ConnectionInfo) {
	fmt.Fprintln(w, TitleStyle.Render("SSH server running"))
	fmt.Fprintf(w, "%s: %s:%d\n", CmdStyle.Render("address"), info.Host, info.Port)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("token"), info.Token)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("expires"), info.ExpireAt.Format(time.RFC3339))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Connect with: %s\n", CmdStyle.Render(fmt.Sprintf("ssh -p %d %s@%s <words...>", info.Port, info.User, info.Host)))
}
