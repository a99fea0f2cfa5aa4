// Package spine exposes typed, lifetime-checked views over a native
// spine-c skeleton.
//
// A *Skeleton wraps the native spSkeleton pointer handed out by the runtime
// binding. Bones, slots, attachments and atlas regions reached from it are
// small value handles that hold a lease on the skeleton: once the skeleton is
// released or rebound, every handle derived earlier panics on use instead of
// reading freed memory.
//
// Attachments are classified from their native type tag into one of
// RegionAttachment, MeshAttachment or OtherAttachment. Buffer accessors such
// as MeshAttachment.UVs return slices that alias native memory directly; they
// are read-only by contract and are valid only while the skeleton is alive
// and the native engine is not mutating it.
//
// World-vertex projection is delegated to a Runtime. The unchecked
// ComputeWorldVertices methods perform no bounds checks on the output
// buffer; the Checked variants validate sizing first.
//
// Nothing in this package is safe for concurrent use. Readers must not run
// while the native pose update is in progress.
package spine
