package render

import (
	"strings"

	"github.com/erraggy/opgen/operation"
)

// RequestContentTypeParam is the type parameter that selects the request
// media type.
const RequestContentTypeParam = "TRequestContentType"

// RequestMapName is the request content-type map alias, e.g. CreateUserRequestMap.
func RequestMapName(md *operation.Metadata) string {
	return md.OperationName + "RequestMap"
}

// ResponseMapName is the response content-type map alias, e.g. GetReportResponseMap.
func ResponseMapName(md *operation.Metadata) string {
	return md.OperationName + "ResponseMap"
}

// ParamsName is the parameter object type, e.g. GetUserParams.
func ParamsName(md *operation.Metadata) string {
	return md.OperationName + "Params"
}

// ResultName is the alias of the discriminated union, e.g. GetUserResult.
func ResultName(md *operation.Metadata) string {
	return md.OperationName + "Result"
}

// commentText makes free text safe inside a block comment and folds it onto
// one line.
func commentText(s string) string {
	s = strings.ReplaceAll(s, "*/", "*\\/")
	return strings.Join(strings.Fields(s), " ")
}

// templateText escapes s for use inside a template literal.
func templateText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")
	return r.Replace(s)
}
