// Package rpc exposes the compile pipeline as a single-method gRPC
// service whose wire schema is parsed from an embedded .proto string at
// startup instead of from protoc-generated Go types; the service is
// registered with a hand-built grpc.ServiceDesc whose handler works
// directly against dynamic.Message values.
package rpc

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/yangfawu/decaf-compiler/internal/analyzer"
	"github.com/yangfawu/decaf-compiler/internal/codegen"
	"github.com/yangfawu/decaf-compiler/internal/emitter"
	"github.com/yangfawu/decaf-compiler/internal/layout"
	"github.com/yangfawu/decaf-compiler/internal/parser"
	"github.com/yangfawu/decaf-compiler/internal/pipeline"
)

const schemaFileName = "decafc.proto"

// Server hosts the Compiler.Compile unary RPC over a dynamically parsed
// schema. Construct with New, then Serve on a listening address.
type Server struct {
	grpcServer *grpc.Server
	serviceDesc *desc.ServiceDescriptor
}

// New parses the embedded schema and builds a ready-to-serve Server.
func New() (*Server, error) {
	p := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFileName: schemaProto}),
	}
	fds, err := p.ParseFiles(schemaFileName)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded schema: %w", err)
	}
	fd := fds[0]
	sd := fd.FindService("decafc.Compiler")
	if sd == nil {
		return nil, fmt.Errorf("schema does not define decafc.Compiler")
	}

	s := &Server{serviceDesc: sd}

	gsd := &grpc.ServiceDesc{
		ServiceName: "decafc.Compiler",
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Compile",
				Handler:    compileHandler,
			},
		},
		Metadata: schemaFileName,
	}

	s.grpcServer = grpc.NewServer()
	s.grpcServer.RegisterService(gsd, s)
	return s, nil
}

// Serve blocks, accepting connections on addr until the listener or
// server errors out.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("decafc rpc: listening on %s", addr)
	return s.grpcServer.Serve(lis)
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

// compileHandler is the grpc.MethodDesc.Handler wired into the
// hand-built ServiceDesc above: it decodes the request into a
// dynamic.Message, runs it through Server.compile, and marshals a
// dynamic.Message response.
func compileHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	s := srv.(*Server)
	md := s.serviceDesc.FindMethodByName("Compile")

	reqMsg := dynamic.NewMessage(md.GetInputType())
	if err := dec(reqMsg); err != nil {
		return nil, err
	}

	filePath, _ := reqMsg.TryGetFieldByName("file_path")
	source, _ := reqMsg.TryGetFieldByName("source")

	ok, ami, diags := s.compile(toStr(filePath), toStr(source))

	respMsg := dynamic.NewMessage(md.GetOutputType())
	respMsg.SetFieldByName("ok", ok)
	respMsg.SetFieldByName("ami", ami)
	respMsg.SetFieldByName("diagnostics", diags)
	return respMsg, nil
}

func toStr(v interface{}) string {
	s, _ := v.(string)
	return s
}

// compile runs filePath's source through the same pipeline the CLI
// uses and renders AMI text on success, or a diagnostic list on
// failure. Each call is tagged with its own build id, matching the
// CLI's uuid.New() stamping (spec.md's DOMAIN STACK §3).
func (s *Server) compile(filePath, source string) (ok bool, ami string, diagnostics []string) {
	buildID := uuid.New().String()
	ctx := pipeline.NewContext(buildID, filePath, source)

	p := pipeline.New(
		&parser.Processor{},
		&analyzer.Processor{},
		&layout.Processor{},
		&codegen.Processor{},
	)
	ctx = p.Run(ctx)

	if !ctx.OK() {
		for _, e := range ctx.Errors {
			diagnostics = append(diagnostics, e.Error())
		}
		return false, "", diagnostics
	}

	body := fmt.Sprintf("# build %s\n", buildID)
	body += emitter.Write(ctx.AMI, false)
	body += emitter.StaticDataDirective(ctx.StaticSlots) + "\n"
	return true, body, nil
}
