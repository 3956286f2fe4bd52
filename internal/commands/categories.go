package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the closed category set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, cat := range model.AllCategories() {
				fmt.Println(cat)
			}
		},
	}
}
