// Package pools provides the memory allocators that back growable buffers.
//
// Every allocator satisfies the Allocator interface so that a buffer can be
// handed any allocation strategy without knowing its concrete type:
//
//   - Heap: plain make/copy, storage is reclaimed by the garbage collector
//   - BytePool: size-class based recycling of byte slices
//   - Arena: bump allocation out of large slabs, released all at once
//   - Limited: a byte budget wrapped around any other Allocator
package pools
