package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"productdesk/internal/catalog"
	"productdesk/internal/models"
	"productdesk/internal/services"
	"productdesk/internal/validation"
	"productdesk/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (c *cli) listCmd() *cobra.Command {
	var search, category, sort string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long: `List products, optionally filtered by category, searched by name or
description, and sorted by name, price or stockQuantity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := string(catalog.Ascending)
			if desc {
				direction = string(catalog.Descending)
			}
			q, err := catalog.ParseQuery(search, strings.ToUpper(category), sort, direction)
			if err != nil {
				return err
			}

			view, err := c.service.ListProducts(q)
			if err != nil {
				return err
			}
			fmt.Fprint(c.out, renderList(c.styles, view))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match name or description, ignoring case")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")
	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortByName), "sort by name, price or stockQuantity")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := c.service.GetProduct(id)
			if err != nil {
				return err
			}
			fmt.Fprint(c.out, renderDetail(c.styles, view))
			return nil
		},
	}
}

// formFlags holds the product form as command line flags.
type formFlags struct {
	name, description, price, category string
	stock                              int
}

func (f *formFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.description, "description", "", "product description (at least 10 characters)")
	fs.StringVar(&f.price, "price", "0", "unit price, e.g. 19.99")
	fs.IntVar(&f.stock, "stock", 0, "units in stock")
	fs.StringVar(&f.category, "category", string(models.CategoryElectronics), "one of ELECTRONICS, CLOTHING, BOOKS, FURNITURE, ACCESSORIES")
}

// apply copies the flags onto form. With onlyChanged set, flags left at
// their defaults keep the form's value.
func (f *formFlags) apply(fs *pflag.FlagSet, form *models.ProductFormData, onlyChanged bool) error {
	set := func(name string) bool { return !onlyChanged || fs.Changed(name) }

	if set("name") {
		form.Name = f.name
	}
	if set("description") {
		form.Description = f.description
	}
	if set("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return fmt.Errorf("invalid price %q", f.price)
		}
		form.Price = price
	}
	if set("stock") {
		form.StockQuantity = f.stock
	}
	if set("category") {
		form.Category = models.Category(strings.ToUpper(f.category))
	}
	return nil
}

func (c *cli) createCmd() *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: `  productctl create --name "Desk Lamp" --description "Adjustable brass desk lamp" \
    --price 35.50 --stock 12 --category FURNITURE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := models.DefaultFormData()
			if err := flags.apply(cmd.Flags(), &form, false); err != nil {
				return err
			}
			product, err := c.service.CreateProduct(form)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, c.styles.Success.Render(fmt.Sprintf("Created product %d: %s", product.ID, product.Name)))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a product",
		Long:  `Edit a product. Fields without a flag keep their stored value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			form, err := c.service.EditForm(id)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), form, true); err != nil {
				return err
			}
			product, err := c.service.UpdateProduct(id, *form)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, c.styles.Success.Render(fmt.Sprintf("Updated product %d: %s", product.ID, product.Name)))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				view, err := c.service.GetProduct(id)
				if err != nil {
					return err
				}
				ok, err := confirm(c.in, c.out, deletePrompt(view.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, c.styles.Muted.Render("Cancelled."))
					return nil
				}
			}

			if err := c.service.DeleteProduct(id); err != nil {
				return err
			}
			fmt.Fprintln(c.out, c.styles.Success.Render(fmt.Sprintf("Product %d deleted successfully", id)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(c.out, renderCategories(c.styles, models.CategoryOptions()))
			return nil
		},
	}
}

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow product change events",
		Long: `Print product change events published by the catalog backend until
interrupted. Requires --amqp-url or RABBITMQ_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.EventsEnabled() {
				return errors.New("RABBITMQ_URL is not set")
			}

			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: c.cfg.RabbitMQURL, Queue: c.cfg.RabbitMQQueue}, c.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return client.ConsumeProductEvents(ctx, func(event models.ProductEvent) error {
				_, err := fmt.Fprintln(c.out, renderEvent(c.styles, event))
				return err
			})
		},
	}
	cmd.Flags().String("amqp-url", "", "RabbitMQ URL (default $RABBITMQ_URL)")
	_ = c.v.BindPFlag("RABBITMQ_URL", cmd.Flags().Lookup("amqp-url"))
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product ID %q", arg)
	}
	return id, nil
}

// printError reports err in the terms a user can act on.
func (c *cli) printError(err error) {
	s := newStyles(c.errOut)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fmt.Fprint(c.errOut, renderValidation(s, verrs))
		return
	}
	fmt.Fprintln(c.errOut, s.Error.Render(services.UserMessage(err)))
}
