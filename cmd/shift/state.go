package main

import (
	"fmt"

	"shift/internal/rec"
	"shift/internal/state"

	"github.com/spf13/cobra"
)

func newStateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset stored profile state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored profiles with their letter and number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer rec.Error(&err)

			return e.withStore(cmd.Context(), func(store *state.Store) error {
				for profile, st := range store.All() {
					if _, err := fmt.Fprintf(e.term.out, "%s\t%c\t%d\n", profile, st.Letter, st.Number); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset [profile]",
		Short: "Forget the stored state of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := e.profile()
			if len(args) == 1 {
				profile = args[0]
			}
			return e.withStore(cmd.Context(), func(store *state.Store) error {
				return store.Delete(profile)
			})
		},
	})

	return cmd
}
