// Package spschema provides the error model shared by the StorPool API
// schema engine:
//
// - ValidationError, a validation failure that may carry a best-effort
// partially built value (Partial)
// - Catch, which runs independent validation steps, keeps the most
// relevant error and collects every issue with its JSON Pointer path
// - Issues/PathRef for reporting and i18n
//
// Layout:
// - Type descriptors and records live under dsl/, documentation nodes under
// docs/, method declarations under method/, the HTTP transport under
// client/ and the StorPool declarations under storpool/.
// - The spreq CLI lives under cmd/spreq.
//
// Typical usage:
//
//	vol, err := storpool.VolumeSummary.New(raw)
//	if p, ok := spschema.PartialOf(err); ok {
//		vol = p.(*dsl.Object) // older or newer server, keep what parsed
//	}
package spschema
