package main

import (
	"strings"

	"github.com/spf13/cobra"

	"shopfront/internal/storefront/app/dto"
)

func newProductCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product <product-id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			product, err := c.app.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(product)
		},
	}

	reviews := &cobra.Command{
		Use:   "reviews <product-id>",
		Short: "List product reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			list, err := c.app.Products.Reviews(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(list)
		},
	}

	var review dto.SubmitReviewRequest
	submit := &cobra.Command{
		Use:   "review <product-id>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			resp, err := c.app.Products.SubmitReview(cmd.Context(), id, &review)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	submit.Flags().IntVarP(&review.Rating, "rating", "r", 5, "rating from 1 to 5")
	submit.Flags().StringVarP(&review.Text, "text", "t", "", "review text")

	cmd.AddCommand(reviews, submit)
	return cmd
}

func newSearchCmd(c *cli) *cobra.Command {
	var suggest bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if suggest {
				suggestions, err := c.app.Products.Suggestions(cmd.Context(), query)
				if err != nil {
					return err
				}
				return c.print(suggestions)
			}
			resp, err := c.app.Products.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	cmd.Flags().BoolVarP(&suggest, "suggest", "s", false, "print name suggestions instead of results")
	return cmd
}
