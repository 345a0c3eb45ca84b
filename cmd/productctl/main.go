// Command productctl manages the product catalog from a terminal. It talks to
// the same backend as the product pages and shares their projection,
// formatting and validation.
package main

import (
	"io"
	"os"

	"productdesk/internal/config"
	"productdesk/internal/logging"
	"productdesk/internal/repositories"
	"productdesk/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// cli holds the state shared by every command.
type cli struct {
	v       *viper.Viper
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *zap.Logger
	cfg     config.Config
	service *services.ProductService
	styles  styles
	verbose bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{v: viper.New(), in: in, out: out, errOut: errOut}
	c.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "productctl",
		Short: "Manage the product catalog",
		Long: `productctl lists, inspects, creates, edits and deletes products in the
catalog backend, and can follow product change events.

The backend address is read from --backend or BACKEND_URL.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().String("backend", "", "backend base URL (default $BACKEND_URL or http://localhost:8081)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log backend calls")
	_ = c.v.BindPFlag("BACKEND_URL", rootCmd.PersistentFlags().Lookup("backend"))

	rootCmd.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.createCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.categoriesCmd(),
		c.eventsCmd(),
	)
	return rootCmd, c
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.logger == nil {
		logger, err := logging.NewConsole(c.verbose)
		if err != nil {
			return err
		}
		c.logger = logger
	}

	c.service = services.NewProductService(repositories.NewHTTPProductRepository(cfg.BackendURL), c.logger)
	c.styles = newStyles(c.out)
	return nil
}

func main() {
	rootCmd, c := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		c.printError(err)
		os.Exit(1)
	}
}
