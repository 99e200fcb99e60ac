package main

import (
	"fmt"
	"strconv"

	"shift/internal/ctxlog"
	"shift/internal/rec"
	"shift/internal/shift"
	"shift/internal/state"

	"github.com/spf13/cobra"
)

const defaultProfile = "default"

func (e *env) profile() string {
	if e.flags.profile == "" {
		return defaultProfile
	}
	return e.flags.profile
}

// newStepCmd builds the next and previous commands, which move the stored
// letter or number of a profile by one position.
func newStepCmd(e *env, name string, forward bool) *cobra.Command {
	dir := "forward"
	if !forward {
		dir = "backward"
	}

	return &cobra.Command{
		Use:       name + " letter|number",
		Short:     fmt.Sprintf("Shift the stored letter or number of a profile one position %s", dir),
		ValidArgs: []string{"letter", "number"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer rec.Wrap(&err, "%s: %w", name)

			ctx := cmd.Context()
			profile := e.profile()

			rng, err := e.cfg.NumericRange()
			if err != nil {
				return err
			}

			var result string
			err = e.withStore(ctx, func(store *state.Store) error {
				st, _, err := store.Load(profile)
				if err != nil {
					return err
				}

				s := shift.New(rng)
				if err := s.Restore(st); err != nil {
					return err
				}

				switch args[0] {
				case "letter":
					if forward {
						result = string(s.NextLetter())
					} else {
						result = string(s.PreviousLetter())
					}
				case "number":
					var n int
					if forward {
						n, err = s.NextNumber()
					} else {
						n, err = s.PreviousNumber()
					}
					if err != nil {
						return err
					}
					result = strconv.Itoa(n)
				}

				ctxlog.Get(ctx).Info("stepped", "profile", profile, "what", args[0], "result", result)
				return store.Save(profile, s.State())
			})
			if err != nil {
				return err
			}

			return e.term.write(result)
		},
	}
}
