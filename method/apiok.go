package method

import "github.com/storpool/spschema/dsl"

// ApiOk is the reply of calls that only report success. It is the
// default return type of POST methods.
var ApiOk = dsl.Record("ApiOk").
	Doc(`
		ok: Always returns true. If something goes wrong, an ApiError is returned instead.
		generation: The cluster generation based on the number of configuration changes since the cluster was created.
		info: May contain additional information about the request.
	`).
	Field("ok", dsl.Const(true), "").
	Field("generation", dsl.Long(), "").
	Field("info", dsl.Optional(dsl.String()), "").
	MustBuild()
