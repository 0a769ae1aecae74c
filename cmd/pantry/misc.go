package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/names"
	"github.com/vnykmshr/pantry/pkg/vehicle"
)

func newNamesCmd(a *app) *cobra.Command {
	var desc bool

	cmd := &cobra.Command{
		Use:   "names <name...>",
		Short: "Print names in case-insensitive order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sorted := append([]string(nil), args...)
			if desc {
				names.SortFoldDesc(sorted)
			} else {
				names.SortFold(sorted)
			}
			for _, name := range sorted {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func newShoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shout [words...]",
		Short: "Print words in upper case",
		RunE: func(cmd *cobra.Command, args []string) error {
			words := strings.TrimSpace(strings.Join(args, " "))
			if err := validation.ValidateNotEmpty("shout", "words", words); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s!!!!\n", strings.ToUpper(words))
			return nil
		},
	}
}

func newCarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "car",
		Short: "Describe a car built from its parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, vehicle.NewCar().Describe())
			return nil
		},
	}
}
