// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/results"
	resultsmock "github.com/KirkDiggler/rpg-rando/internal/repositories/results/mock"
)

// ExpectResultLookup sets up a single lookup of a stored result. The result
// is returned for whichever player is asked for.
func ExpectResultLookup(ctx context.Context, mockRepo *resultsmock.MockRepository, result *rando.Result, player int) {
	mockRepo.EXPECT().
		Get(ctx, results.GetInput{RandoID: result.RandoID, PlayerID: player}).
		Return(&results.GetOutput{Result: result}, nil)
}

// ExpectResultMissing sets up a lookup that fails with NotFound
func ExpectResultMissing(ctx context.Context, mockRepo *resultsmock.MockRepository, randoID string) {
	mockRepo.EXPECT().
		Get(ctx, gomock.Any()).
		Return(nil, errors.NotFoundf("rando %s not found", randoID).WithMeta("rando_id", randoID))
}

// ExpectRunSaved sets up a save of a whole run and captures what was saved
func ExpectRunSaved(ctx context.Context, mockRepo *resultsmock.MockRepository, saved *[]*rando.Result) {
	mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input results.SaveInput) (*results.SaveOutput, error) {
			*saved = input.Results
			randoID := ""
			if len(input.Results) > 0 {
				randoID = input.Results[0].RandoID
			}
			return &results.SaveOutput{RandoID: randoID}, nil
		})
}
