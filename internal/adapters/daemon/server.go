package daemon

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Restorer is the restore service the daemon serves.
type Restorer interface {
	NominateProject(ctx context.Context, n domain.NominationData) (bool, error)
	RestoreSolution(ctx context.Context, force bool, reason domain.ExplicitRestoreReason) (bool, error)
	IsBusy() bool
}

// ProjectCounter reports how many projects have been nominated.
type ProjectCounter interface {
	Count() int
}

// Server implements the gRPC daemon service of a workspace.
type Server struct {
	root       string
	lifecycle  *Lifecycle
	restorer   Restorer
	projects   ProjectCounter
	logger     ports.Logger
	grpcServer *grpc.Server
}

// NewServer creates a daemon server for the workspace at root.
func NewServer(
	root string,
	lifecycle *Lifecycle,
	restorer Restorer,
	projects ProjectCounter,
	logger ports.Logger,
) *Server {
	s := &Server{
		root:      root,
		lifecycle: lifecycle,
		restorer:  restorer,
		projects:  projects,
		logger:    logger,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.track))
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// SocketPath returns the unix socket the daemon of root listens on.
func SocketPath(root string) string {
	return filepath.Join(root, domain.DefaultDaemonSocketPath())
}

// PIDPath returns the pid file of the daemon of root.
func PIDPath(root string) string {
	return filepath.Join(root, domain.DefaultDaemonPIDPath())
}

// Serve listens on the workspace socket until ctx is done, the idle timeout
// expires or a client requests a shutdown.
func (s *Server) Serve(ctx context.Context) error {
	socketPath := SocketPath(s.root)

	if err := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return zerr.Wrap(err, "failed to listen on UDS")
	}

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	if err := s.writePIDFile(); err != nil {
		_ = lis.Close()
		return err
	}

	defer s.cleanup()

	s.logger.Info("daemon listening on " + socketPath)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return ctx.Err()
	case <-s.lifecycle.ShutdownChan():
		s.logger.Info("daemon shutting down")
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) cleanup() {
	_ = os.Remove(SocketPath(s.root))
	_ = os.Remove(PIDPath(s.root))
}

func (s *Server) writePIDFile() error {
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(PIDPath(s.root), []byte(pid), domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, "failed to write daemon pid file")
	}
	return nil
}

// track keeps the idle timer paused while a request is served. Status polls do not
// count as activity.
func (s *Server) track(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	if info.FullMethod == fullMethod(methodStatus) {
		return handler(ctx, req)
	}
	s.lifecycle.Begin()
	defer s.lifecycle.End()

	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Debug(info.FullMethod + " failed: " + err.Error())
	}
	return resp, err
}

// Nominate implements the Nominate RPC.
func (s *Server) Nominate(ctx context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error) {
	n, err := nominationFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ok, err := s.restorer.NominateProject(ctx, n)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.Bool(ok), nil
}

// Restore implements the Restore RPC.
func (s *Server) Restore(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	ok, err := s.restorer.RestoreSolution(ctx, req.GetValue(), domain.ReasonRestoreSolutionPackages)
	if err != nil {
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bool(ok), nil
}

// Status implements the Status RPC.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return statusToStruct(&ports.DaemonStatus{
		Running:       true,
		PID:           os.Getpid(),
		Uptime:        s.lifecycle.Uptime(),
		IdleRemaining: s.lifecycle.IdleRemaining(),
		Busy:          s.restorer.IsBusy(),
		Projects:      s.projects.Count(),
	}), nil
}

// Shutdown implements the Shutdown RPC.
func (s *Server) Shutdown(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.lifecycle.Shutdown()
	return &emptypb.Empty{}, nil
}
