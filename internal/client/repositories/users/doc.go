// Package users persists the registry of accounts under the "users" key
// as a single JSON array.
//
// Typical usage:
//
//	repo := users.NewKVRepository(store)
//	list, _ := repo.LoadAll(ctx)
//	list = append(list, u)
//	_ = repo.SaveAll(ctx, list)
package users
