// Package store owns the persisted client list.
//
// The [Store] interface exposes create/read/update/delete by positional index.
// [SlotStore] implements it on top of a [kv.Backend] slot holding a JSON
// array. It never caches: each operation reads the slot, applies the change
// and writes the whole array back.
//
// Deleting a record shifts every later record down by one, so an index is
// only meaningful until the next mutation.
//
//	s := store.New(backend)
//	i, err := s.Create(ctx, model.Client{Name: "Ana", ...})
//	err = s.Update(ctx, i, updated)
//	err = s.Delete(ctx, i)
//
// Reading a missing, empty or malformed slot yields an empty list rather
// than an error. An index outside the list yields an [*IndexError].
package store
