package rpc

// schemaProto is the decaf compile service's wire schema, parsed at
// startup with protoparse.Parser{} rather than checked in as generated
// .pb.go code: no protoc invocation, no generated Go types, just a
// schema string and dynamic.Message request/response values.
const schemaProto = `
syntax = "proto3";

package decafc;

message CompileRequest {
  string file_path = 1;
  string source = 2;
}

message CompileResponse {
  bool ok = 1;
  string ami = 2;
  repeated string diagnostics = 3;
}

service Compiler {
  rpc Compile(CompileRequest) returns (CompileResponse);
}
`
