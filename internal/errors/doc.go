// Package errors provides structured errors for the randomizer.
//
// Every error carries a Code, a user facing Message, an optional Cause and
// free form metadata:
//
//	err := errors.NotFoundf("rando %s not found", id).
//	    WithMeta("player", player)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to store results")
//	}
//
// # Backtracking
//
// The generation engine signals a dead end with CodeBacktrack:
//
//	if failsafe > maxSpanningRounds {
//	    return errors.Backtrackf("spanning tree failsafe on round %d", failsafe)
//	}
//
// Engine stages return it untouched. The generation orchestrator is the only
// place that checks errors.IsBacktrack; it drops the attempt and retries on
// the same random stream. Any other code ends generation.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("world", cfg.WorldPath, vb)
//	errors.ValidateRange("players", cfg.Players, 1, 16, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients convert back with
// errors.FromGRPCError. CodeBacktrack maps to codes.Aborted.
package errors
