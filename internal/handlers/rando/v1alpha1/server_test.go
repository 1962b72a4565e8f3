package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery"
	deliverymock "github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery/mock"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation/mock"
)

// dial serves both handlers on an in-memory listener and returns a client
// connection to it
func dial(t *testing.T, gen generation.Service, del delivery.Service) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()

	genHandler, err := v1alpha1.NewGenerationHandler(&v1alpha1.GenerationHandlerConfig{GenerationService: gen})
	require.NoError(t, err)
	delHandler, err := v1alpha1.NewDeliveryHandler(&v1alpha1.DeliveryHandlerConfig{DeliveryService: del})
	require.NoError(t, err)

	v1alpha1.RegisterGenerationServiceServer(srv, genHandler)
	v1alpha1.RegisterDeliveryServiceServer(srv, delHandler)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestGenerationOverTheWire(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := generationmock.NewMockService(ctrl)
	conn := dial(t, gen, deliverymock.NewMockService(ctrl))
	client := v1alpha1.NewGenerationServiceClient(conn)
	ctx := context.Background()

	settings := []rando.Settings{{Seed: 9, Pools: []string{"Skill"}, RandomizeAreas: true}}
	result := &rando.Result{
		RandoID:  "rando_1",
		Players:  1,
		Settings: settings[0],
		ItemPlacements: map[rando.Symbol]rando.Symbol{
			rando.NewSymbol(0, "Claw"): rando.NewSymbol(0, "Sly"),
		},
		ShopCosts:            map[rando.Symbol]int{rando.NewSymbol(0, "Claw"): 340},
		TransitionPlacements: map[string]string{"Town[right1]": "Green[left1]"},
	}

	gen.EXPECT().
		Generate(gomock.Any(), &generation.GenerateInput{Settings: settings}).
		Return(&generation.GenerateOutput{RandoID: "rando_1", Attempts: 1, Results: []*rando.Result{result}}, nil)

	resp, err := client.Generate(ctx, &v1alpha1.GenerateRequest{Settings: settings})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	got := resp.Results[0]
	assert.Equal(t, "rando_1", resp.RandoID)
	assert.Equal(t, settings[0], got.Settings)
	assert.Equal(t, result.ItemPlacements, got.ItemPlacements)
	assert.Equal(t, result.ShopCosts, got.ShopCosts)
	assert.Equal(t, result.TransitionPlacements, got.TransitionPlacements)
}

func TestErrorsKeepTheirCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	del := deliverymock.NewMockService(ctrl)
	conn := dial(t, generationmock.NewMockService(ctrl), del)
	client := v1alpha1.NewDeliveryServiceClient(conn)

	del.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("nothing placed at MW(1)_Sly").WithMeta("location", "Sly"))

	_, err := client.Send(context.Background(), &v1alpha1.SendRequest{RandoID: "rando_1", Location: "Sly"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
	back := errors.FromGRPCError(err)
	assert.True(t, errors.IsNotFound(back))
	assert.Equal(t, "Sly", errors.GetMeta(back)["location"])
}
