// Package eval executes parsed UFO model sources.
//
// An [Interp] evaluates the modules of one model package, resolving
// sibling imports through an [io/fs.FS] and providing object_library, the
// math modules and a few standard library stubs natively. Evaluation
// builds [model.Value]s; the entities constructed through object_library
// accumulate in its all_* registries exactly as the generated sources
// expect.
package eval
