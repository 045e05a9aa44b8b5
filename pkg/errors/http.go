package errors

import (
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InternalMessage replaces the text of internal errors in responses.
const InternalMessage = "An internal error occurred"

// ToHTTP maps err to the HTTP status, error slug and message of the response.
// Errors without a gRPC code and internal errors become a 500 whose message
// does not carry their text.
func ToHTTP(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.Internal || st.Code() == codes.Unknown {
		return http.StatusInternalServerError, "internal_error", InternalMessage
	}

	return runtime.HTTPStatusFromCode(st.Code()), slug(st.Code()), st.Message()
}

func slug(code codes.Code) string {
	switch code {
	case codes.InvalidArgument:
		return "validation_error"
	case codes.NotFound:
		return "not_found"
	case codes.Aborted, codes.AlreadyExists:
		return "conflict"
	case codes.PermissionDenied:
		return "forbidden"
	case codes.ResourceExhausted:
		return "rate_limit_exceeded"
	default:
		return "internal_error"
	}
}
