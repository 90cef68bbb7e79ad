package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
)

// #region client-struct
// Client calls a remote PolicyService.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}
// #endregion client-struct

// #region constructor
// NewClient connects to a policy server.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn wraps an existing connection. Close is then a no-op.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region open-session
// OpenSession starts a session. A nil belief uses the server's prior; a nil
// seed lets the server derive one.
func (c *Client) OpenSession(ctx context.Context, bel *belief.Distribution, seed *uint64) (string, error) {
	fields := map[string]any{}
	if bel != nil {
		list := make([]any, len(bel))
		for i, p := range bel {
			list[i] = p
		}
		fields[fieldBelief] = list
	}
	if seed != nil {
		fields[fieldSeed] = float64(*seed)
	}
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return "", fmt.Errorf("open session request: %w", err)
	}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodOpenSession, req, resp); err != nil {
		return "", fmt.Errorf("open session rpc: %w", err)
	}
	return stringField(resp, fieldSessionID)
}
// #endregion open-session

// #region get-behaviour
// GetBehaviour asks the server for the next behaviour.
func (c *Client) GetBehaviour(ctx context.Context, sessionID string, state codec.State, ictx interaction.Context) (BehaviourResult, error) {
	req, err := behaviourRequest(sessionID, state, ictx)
	if err != nil {
		return BehaviourResult{}, fmt.Errorf("get behaviour request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetBehaviour, req, resp); err != nil {
		return BehaviourResult{}, fmt.Errorf("get behaviour rpc: %w", err)
	}
	return decodeBehaviourResult(resp)
}
// #endregion get-behaviour

// #region get-observation
// GetObservation reports that b was performed and returns the next state.
func (c *Client) GetObservation(ctx context.Context, sessionID string, state codec.State, b behaviour.Behaviour) (codec.State, error) {
	req, err := structpb.NewStruct(map[string]any{
		fieldSessionID: sessionID,
		fieldState:     int(state),
		fieldBehaviour: b.String(),
	})
	if err != nil {
		return 0, fmt.Errorf("get observation request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetObservation, req, resp); err != nil {
		return 0, fmt.Errorf("get observation rpc: %w", err)
	}
	return stateField(resp)
}
// #endregion get-observation
