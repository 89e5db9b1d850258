// Package daemon implements the background restore daemon of a workspace.
// It provides the gRPC server and client for inter-process communication over
// Unix Domain Sockets.
package daemon

import (
	"context"
	"errors"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client implements ports.DaemonClient.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the daemon of root over UDS.
// grpc.NewClient returns immediately; the connection is made on the first RPC.
func Dial(root string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+SocketPath(root),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon client creation failed")
	}
	return &Client{conn: conn}, nil
}

// Nominate implements ports.DaemonClient.
func (c *Client) Nominate(ctx context.Context, nomination domain.NominationData) (bool, error) {
	req, err := nominationToStruct(nomination)
	if err != nil {
		return false, err
	}
	resp := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, fullMethod(methodNominate), req, resp); err != nil {
		return false, callError(err, methodNominate)
	}
	return resp.GetValue(), nil
}

// Restore implements ports.DaemonClient.
func (c *Client) Restore(ctx context.Context, force bool) (bool, error) {
	resp := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, fullMethod(methodRestore), wrapperspb.Bool(force), resp); err != nil {
		return false, callError(err, methodRestore)
	}
	return resp.GetValue(), nil
}

// Status implements ports.DaemonClient.
func (c *Client) Status(ctx context.Context) (*ports.DaemonStatus, error) {
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(methodStatus), &emptypb.Empty{}, resp); err != nil {
		return nil, callError(err, methodStatus)
	}
	return statusFromStruct(resp), nil
}

// Shutdown implements ports.DaemonClient.
func (c *Client) Shutdown(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, fullMethod(methodShutdown), &emptypb.Empty{}, new(emptypb.Empty)); err != nil {
		return callError(err, methodShutdown)
	}
	return nil
}

// Close implements ports.DaemonClient.
func (c *Client) Close() error {
	return c.conn.Close()
}

func callError(err error, method string) error {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable:
		return errors.Join(domain.ErrDaemonUnavailable, zerr.With(err, "method", method))
	case codes.Canceled, codes.DeadlineExceeded:
		return zerr.With(err, "method", method)
	default:
		return zerr.With(zerr.New(st.Message()), "method", method)
	}
}
