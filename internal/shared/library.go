// Package shared holds what the gRPC server, its stubs in internal/proto
// and its clients agree on: the service and method names, the request id
// header and the payload codec.
//
// Payloads are google.protobuf.Struct messages holding the JSON form of the
// typed messages.
package shared

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "library.LibraryService"

const (
	MethodGetBooks        = "GetBooks"
	MethodGetBook         = "GetBook"
	MethodCreateBook      = "CreateBook"
	MethodDeleteBook      = "DeleteBook"
	MethodGetAuthors      = "GetAuthors"
	MethodGetAuthor       = "GetAuthor"
	MethodCreateAuthor    = "CreateAuthor"
	MethodGetUsers        = "GetUsers"
	MethodCreateUser      = "CreateUser"
	MethodCreateBorrowing = "CreateBorrowing"
	MethodReturnBook      = "ReturnBook"
	MethodGetBorrowing    = "GetBorrowing"
)

// FullMethod is the path a client invokes, e.g. "/library.LibraryService/GetBook".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// RequestIDHeader is the metadata key carrying the correlation id.
const RequestIDHeader = "x-request-id"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToStruct encodes v through its JSON form. Times become RFC 3339 strings and
// numbers become doubles.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return s, nil
}

// FromStruct decodes s into v, the inverse of ToStruct.
func FromStruct(s *structpb.Struct, v any) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
