package main

import (
	"github.com/spf13/cobra"

	"shopfront/internal/storefront/app/dto"
)

// productCmd строит подкоманду, принимающую идентификатор товара.
func productCmd(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <product-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}

func newWishlistCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.Wishlist.List(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(items)
		},
	}

	cmd.AddCommand(
		productCmd("toggle", "Add a product to the wishlist or remove it", func(cmd *cobra.Command, id int64) error {
			added, err := c.app.Wishlist.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			status := dto.WishlistRemoved
			if added {
				status = dto.WishlistAdded
			}
			return c.print(dto.WishlistToggleResponse{Status: status})
		}),
		productCmd("remove", "Remove a product from the wishlist", func(cmd *cobra.Command, id int64) error {
			if err := c.app.Wishlist.Remove(cmd.Context(), id); err != nil {
				return err
			}
			return c.print(dto.WishlistToggleResponse{Status: dto.WishlistRemoved})
		}),
		productCmd("check", "Tell whether a product is in the wishlist", func(cmd *cobra.Command, id int64) error {
			in, err := c.app.Wishlist.Contains(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(dto.WishlistStatus{IsWishlisted: in})
		}),
	)
	return cmd
}

func newProfileCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.app.Profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(profile)
		},
	}

	var req dto.UpdateProfileRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Replace profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.app.Profile.Update(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return c.print(profile)
		},
	}
	update.Flags().StringVar(&req.Username, "username", "", "username")
	update.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	update.Flags().StringVar(&req.Email, "email", "", "email")
	update.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")

	addresses := &cobra.Command{
		Use:   "addresses",
		Short: "List saved addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.app.Profile.Addresses(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(list)
		},
	}

	var address dto.ShippingAddress
	addAddress := &cobra.Command{
		Use:   "add-address",
		Short: "Save a shipping address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.app.Profile.AddAddress(cmd.Context(), &address.Address)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	addressFlags(addAddress, &address)
	_ = addAddress.Flags().MarkHidden("saved-address")

	deleteAddress := &cobra.Command{
		Use:   "delete-address <address-id>",
		Short: "Delete a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("address id", args[0])
			if err != nil {
				return err
			}
			if err := c.app.Profile.DeleteAddress(cmd.Context(), id); err != nil {
				return err
			}
			return c.print(dto.StatusResponse{Message: "address deleted", Success: true})
		},
	}

	cmd.AddCommand(update, addresses, addAddress, deleteAddress)
	return cmd
}
