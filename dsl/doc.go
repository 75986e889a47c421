// Package dsl declares the wire types of the StorPool API.
//
// Overview
//   - Type: a named validator with an optional default, a documentation
//     node and a JSON Schema export. Types are values; combinators build
//     new Types from existing ones.
//   - Primitives: Bool, Int, Long, Float, String, Any.
//   - Combinators: ListOf, SetOf, MapOf, Optional, Internal, Const, Either,
//     EitherOr, WithDefault.
//   - Named validators: IntRange, Regex, OneOf, NamedEnum, Name,
//     UnlimitedInt, VolumeSize, Func.
//   - Records: Record(name).Field(...).MustBuild() declares a RecordType
//     whose New builds *Object instances.
//
// # Partial results
//
// Containers and records validate every element independently. When some
// fail, the returned *spschema.ValidationError carries the elements that
// did validate in its Partial field, and Issues lists each failure with
// its JSON Pointer path:
//
//	obj, err := storpool.Disk.New(raw)
//	if p, ok := spschema.PartialOf(err); ok {
//		obj = p.(*dsl.Object) // best effort
//	}
//
// Either is the exception: it has nothing to offer when no alternative
// matches.
//
// File layout
//   - type.go: Type, Func, WithDefault.
//   - coerce.go: number and text coercion shared by the validators.
//   - primitives.go, constraints.go: leaf types.
//   - containers.go: ListOf, SetOf (and Set), MapOf.
//   - wrappers.go: Optional, Internal, Const, Either.
//   - record.go: RecordBuilder, RecordType, Object.
//   - plain.go: conversion to JSON-ready values and Object encoding.
package dsl
