package main

import (
	"github.com/spf13/cobra"

	"shopfront/internal/storefront/app/dto"
)

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cart, err := c.app.Cart.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cart)
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			resp, err := c.app.Cart.Add(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}

	var quantity int
	update := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set the quantity of a product in the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			resp, err := c.app.Cart.Update(cmd.Context(), id, quantity)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	update.Flags().IntVarP(&quantity, "quantity", "q", 1, "new quantity")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			resp, err := c.app.Cart.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}

	cmd.AddCommand(add, update, remove)
	return cmd
}

// addressFlags регистрирует флаги адреса доставки.
func addressFlags(cmd *cobra.Command, a *dto.ShippingAddress) {
	cmd.Flags().Int64Var(&a.ID, "saved-address", 0, "id of a saved address")
	cmd.Flags().StringVar(&a.FullName, "full-name", "", "recipient name")
	cmd.Flags().StringVar(&a.AddressLine1, "line1", "", "address line 1")
	cmd.Flags().StringVar(&a.AddressLine2, "line2", "", "address line 2")
	cmd.Flags().StringVar(&a.City, "city", "", "city")
	cmd.Flags().StringVar(&a.State, "state", "", "state")
	cmd.Flags().StringVar(&a.ZipCode, "zip", "", "zip code")
	cmd.Flags().StringVar(&a.Country, "country", "", "country")
}

func newCheckoutCmd(c *cli) *cobra.Command {
	var address dto.ShippingAddress
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			address.UseSavedAddress = address.ID > 0
			resp, err := c.app.Orders.Checkout(cmd.Context(), &address)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	addressFlags(cmd, &address)
	return cmd
}

func newBuyNowCmd(c *cli) *cobra.Command {
	var (
		address  dto.ShippingAddress
		quantity int
	)
	cmd := &cobra.Command{
		Use:   "buy-now <product-id>",
		Short: "Order a single product without touching the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			address.UseSavedAddress = address.ID > 0
			resp, err := c.app.Orders.BuyNow(cmd.Context(), id, quantity, &address)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")
	addressFlags(cmd, &address)
	return cmd
}

func newOrdersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "orders [order-id]",
		Short: "List orders or show one order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				orders, err := c.app.Orders.List(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(orders)
			}

			id, err := parseID("order id", args[0])
			if err != nil {
				return err
			}
			order, err := c.app.Orders.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(order)
		},
	}
}
