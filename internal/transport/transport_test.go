package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
	"github.com/danielpatrickdp/coaching-policy/internal/validity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// #region helpers

func serverConfig(t *testing.T) ServerConfig {
	t.Helper()
	tables, err := reward.CompileAll(reward.DefaultTable())
	require.NoError(t, err)
	prior, err := belief.Prior(codec.Sport, 2)
	require.NoError(t, err)
	return ServerConfig{
		Tables: tables,
		Prior:  prior,
		Policy: policy.DefaultConfig(),
		Seed:   11,
	}
}

// serve starts srv on an in-memory listener. Everything is torn down in
// t.Cleanup.
func serve(t *testing.T, srv *Server) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	RegisterPolicyServiceServer(gs, srv)
	go gs.Serve(lis)

	client, err := NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		gs.Stop()
	})
	return client
}

var sessionStart = interaction.Context{Goal: interaction.SessionGoal, Phase: interaction.PhaseStart, Performance: interaction.Met}

// #endregion helpers

// #region round-trip

func TestRoundTrip(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	id, err := client.OpenSession(ctx, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	state := codec.State(0)
	valid := validity.Valid(sessionStart)
	for i := 0; i < 20; i++ {
		res, err := client.GetBehaviour(ctx, id, state, sessionStart)
		require.NoError(t, err)
		require.True(t, valid.Has(res.Behaviour), "illegal behaviour %s", res.Behaviour)
		require.GreaterOrEqual(t, res.Draws, 1)
		require.Equal(t, string(policy.StepAccepted), res.Step)

		state, err = client.GetObservation(ctx, id, res.State, res.Behaviour)
		require.NoError(t, err)
		require.True(t, state.Valid())
	}
	require.Equal(t, 1, srv.Sessions())
}

func TestSeededSessionsMatchLocalPolicy(t *testing.T) {
	cfg := serverConfig(t)
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	bel, err := belief.Point(1)
	require.NoError(t, err)
	seed := uint64(5)
	id, err := client.OpenSession(ctx, &bel, &seed)
	require.NoError(t, err)

	local, err := policy.NewSeeded(cfg.Tables, bel, seed, cfg.Policy, nil)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		want, err := local.GetBehaviour(0, sessionStart)
		require.NoError(t, err)
		got, err := client.GetBehaviour(ctx, id, 0, sessionStart)
		require.NoError(t, err)
		require.Equal(t, want, got.Behaviour, "call %d", i)
	}
}

func TestImplicitSessionAndPersonEnd(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)
	client := serve(t, srv)

	res, err := client.GetBehaviour(context.Background(), "walk-in", 12,
		interaction.Context{Goal: interaction.PersonGoal, Phase: interaction.PhaseEnd, Performance: interaction.Steady})
	require.NoError(t, err)
	require.Equal(t, behaviour.End, res.Behaviour)
	require.Zero(t, res.Draws)
	require.Equal(t, 1, srv.Sessions())
}

func TestConcurrentSessions(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := client.OpenSession(ctx, nil, nil)
			if err != nil {
				errs <- err
				return
			}
			for i := 0; i < 25; i++ {
				if _, err := client.GetBehaviour(ctx, id, 0, sessionStart); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 8, srv.Sessions())
}

// #endregion round-trip

// #region errors

func TestInvalidArguments(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	_, err = client.GetBehaviour(ctx, "", 0, sessionStart)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetBehaviour(ctx, "s", 0, interaction.Context{Goal: interaction.GoalLevel(42)})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetObservation(ctx, "s", codec.StateCount, behaviour.Praise)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	bad := belief.Distribution{0.5}
	_, err = client.OpenSession(ctx, &bad, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestObservationAcceptsCode(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)

	req, err := structpb.NewStruct(map[string]any{
		fieldSessionID: "direct",
		fieldState:     44,
		fieldBehaviour: int(behaviour.End),
	})
	require.NoError(t, err)
	resp, err := srv.GetObservation(context.Background(), req)
	require.NoError(t, err)
	next, err := stateField(resp)
	require.NoError(t, err)
	d, err := codec.Decode(next)
	require.NoError(t, err)
	require.Equal(t, behaviour.End, d.Behaviour)
}

func TestMissingFieldIsInvalidArgument(t *testing.T) {
	srv, err := NewServer(serverConfig(t))
	require.NoError(t, err)
	req, err := structpb.NewStruct(map[string]any{fieldSessionID: "s", fieldGoal: "SESSION"})
	require.NoError(t, err)
	_, err = srv.GetBehaviour(context.Background(), req)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUnexpectedErrorIsInternal(t *testing.T) {
	require.Equal(t, codes.Internal, status.Code(toStatus(errors.New("disk on fire"))))
	require.Equal(t, codes.ResourceExhausted, status.Code(toStatus(fmt.Errorf("x: %w", policy.ErrValidityExhausted))))
}

func TestNewServerRequiresTables(t *testing.T) {
	cfg := serverConfig(t)
	cfg.Tables = nil
	_, err := NewServer(cfg)
	require.Error(t, err)
}

// #endregion errors

// #region eviction

func TestSessionsAreCapped(t *testing.T) {
	cfg := serverConfig(t)
	cfg.MaxSessions = 3
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := client.GetBehaviour(ctx, id, 0, sessionStart)
		require.NoError(t, err)
	}
	// touch "a" so "b" is the least recently used
	_, err = client.GetBehaviour(ctx, "a", 0, sessionStart)
	require.NoError(t, err)
	_, err = client.GetBehaviour(ctx, "d", 0, sessionStart)
	require.NoError(t, err)
	require.Equal(t, 3, srv.Sessions())

	srv.mu.Lock()
	_, hasA := srv.sessions["a"]
	_, hasB := srv.sessions["b"]
	srv.mu.Unlock()
	require.True(t, hasA)
	require.False(t, hasB)

	for i := 0; i < 10; i++ {
		_, err := client.OpenSession(ctx, nil, nil)
		require.NoError(t, err)
	}
	require.Equal(t, 3, srv.Sessions())
}

func TestEvictedSessionReopensReproducibly(t *testing.T) {
	cfg := serverConfig(t)
	cfg.MaxSessions = 1
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	first, err := client.GetBehaviour(ctx, "x", 0, sessionStart)
	require.NoError(t, err)
	_, err = client.GetBehaviour(ctx, "y", 0, sessionStart)
	require.NoError(t, err)
	again, err := client.GetBehaviour(ctx, "x", 0, sessionStart)
	require.NoError(t, err)
	require.Equal(t, first, again)
}

// #endregion eviction

// #region decision-log

func TestDecisionsAreLogged(t *testing.T) {
	st, err := store.NewStore(filepath.Join(t.TempDir(), "policy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := serverConfig(t)
	cfg.DB = st.DB()
	cfg.VersionID = ""
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	client := serve(t, srv)
	ctx := context.Background()

	id, err := client.OpenSession(ctx, nil, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := client.GetBehaviour(ctx, id, 0, sessionStart)
		require.NoError(t, err)
	}

	rows, err := st.Decisions(id, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		require.Equal(t, "SESSION", r.Goal)
		require.Equal(t, "START", r.Phase)
		require.Equal(t, "accepted", r.Step)
	}
}

// #endregion decision-log
